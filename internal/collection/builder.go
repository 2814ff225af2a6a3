package collection

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"pkt.systems/brudoc/internal/parser"
	"pkt.systems/pslog"
)

const (
	brunoJSONFile   = "bruno.json"
	collectionFile  = "collection.bru"
	folderFile      = "folder.bru"
	environmentsDir = "environments"
	bruExtension    = ".bru"
)

// Matcher reports which exclude pattern, if any, matches a folder name.
type Matcher interface {
	Match(name string) (pattern string, ok bool)
}

// Options configure a parse run.
type Options struct {
	// Exclude prunes folders whose own directory name matches. Nil excludes nothing.
	Exclude Matcher
	Logger  pslog.Logger
	// FS overrides the filesystem; paths inside it are relative to the collection root.
	FS fs.FS
}

type builder struct {
	ctx     context.Context
	fsys    fs.FS
	root    string
	exclude Matcher
	log     pslog.Logger
}

// Parse reads the collection rooted at dir. Only an unreadable root is an
// error; problems below it are logged and the affected unit is skipped.
func Parse(ctx context.Context, dir string, opts Options) (Collection, error) {
	log := opts.Logger
	if log == nil {
		log = parser.Logger(ctx)
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = os.DirFS(dir)
	}
	b := &builder{
		ctx:     pslog.ContextWithLogger(ctx, log),
		fsys:    fsys,
		root:    dir,
		exclude: opts.Exclude,
		log:     log,
	}
	return b.collection()
}

func (b *builder) collection() (Collection, error) {
	entries, err := fs.ReadDir(b.fsys, ".")
	if err != nil {
		return Collection{}, fmt.Errorf("read collection %s: %w", b.root, err)
	}

	c := Collection{Name: baseName(b.root), Auth: AuthNone, Folders: []Folder{}}
	if name, ok := b.brunoName(); ok {
		c.Name = name
	}
	b.collectionAuth(&c)

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if e.Name() == environmentsDir {
			c.Environments = b.environments(e.Name())
			continue
		}
		if f, ok := b.folder(e.Name()); ok {
			c.Folders = append(c.Folders, f)
		}
	}
	sortFolders(c.Folders)

	if len(c.Folders) == 0 {
		b.log.Warn("collection.empty", "name", c.Name, "path", b.root)
	}
	return c, nil
}

// brunoName returns the name declared in bruno.json.
func (b *builder) brunoName() (string, bool) {
	data, err := fs.ReadFile(b.fsys, brunoJSONFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			b.log.Warn("collection.bruno-json.read", "path", b.display(brunoJSONFile), "err", err)
		}
		return "", false
	}
	var cfg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		b.log.Warn("collection.bruno-json.parse", "path", b.display(brunoJSONFile), "err", err)
		return "", false
	}
	return cfg.Name, cfg.Name != ""
}

// collectionAuth applies the first auth block of collection.bru in the order
// basic, bearer, digest.
func (b *builder) collectionAuth(c *Collection) {
	doc, err := parser.ParseFS(b.ctx, b.fsys, collectionFile, b.display(collectionFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			b.log.Warn("collection.collection-bru.read", "path", b.display(collectionFile), "err", err)
		}
		return
	}
	switch {
	case doc.Basic != nil:
		c.Auth, c.Basic = AuthBasic, doc.Basic
	case doc.Bearer != nil:
		c.Auth, c.Bearer = AuthBearer, doc.Bearer
	case doc.Digest != nil:
		c.Auth, c.Digest = AuthDigest, doc.Digest
	}
}

func (b *builder) environments(dir string) map[string]Environment {
	envs := map[string]Environment{}
	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		b.log.Warn("collection.environments.read", "path", b.display(dir), "err", err)
		return envs
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), bruExtension) {
			continue
		}
		rel := path.Join(dir, e.Name())
		doc, err := parser.ParseFS(b.ctx, b.fsys, rel, b.display(rel))
		if err != nil {
			b.log.Warn("collection.environment.parse", "path", b.display(rel), "err", err)
			continue
		}
		name := strings.TrimSuffix(e.Name(), bruExtension)
		vars := doc.Vars
		if vars == nil {
			vars = parser.KeyValues{}
		}
		envs[name] = Environment{Name: name, Variables: vars}
	}
	return envs
}

// folder parses dir recursively. It reports false when the folder is empty
// or its own name is excluded.
func (b *builder) folder(dir string) (Folder, bool) {
	base := path.Base(dir)
	f := Folder{Name: base, Files: []parser.Document{}, Folders: []Folder{}}

	metaPath := path.Join(dir, folderFile)
	if doc, err := parser.ParseFS(b.ctx, b.fsys, metaPath, b.display(metaPath)); err == nil {
		if doc.Meta.Name != "" {
			f.Name = doc.Meta.Name
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		b.log.Debug("collection.folder-bru.read", "path", b.display(metaPath), "err", err)
	}

	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		b.log.Warn("collection.folder.read", "path", b.display(dir), "err", err)
		return Folder{}, false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if sub, ok := b.folder(path.Join(dir, e.Name())); ok {
			f.Folders = append(f.Folders, sub)
		}
	}
	for _, e := range entries {
		if e.IsDir() || e.Name() == folderFile || !strings.HasSuffix(e.Name(), bruExtension) {
			continue
		}
		rel := path.Join(dir, e.Name())
		doc, err := parser.ParseFS(b.ctx, b.fsys, rel, b.display(rel))
		if err != nil {
			b.log.Warn("collection.file.parse", "path", b.display(rel), "err", err)
			continue
		}
		f.Files = append(f.Files, doc)
	}

	if len(f.Files) == 0 && len(f.Folders) == 0 {
		b.log.Warn("collection.folder.empty", "folder", base, "path", b.display(dir))
		return Folder{}, false
	}
	if pattern, ok := b.match(base); ok {
		b.log.Info("collection.folder.excluded", "folder", base, "pattern", pattern)
		return Folder{}, false
	}

	slices.SortStableFunc(f.Files, func(a, c parser.Document) int {
		return cmp.Compare(a.Meta.Seq, c.Meta.Seq)
	})
	sortFolders(f.Folders)
	return f, true
}

func (b *builder) match(name string) (string, bool) {
	if b.exclude == nil {
		return "", false
	}
	return b.exclude.Match(name)
}

func (b *builder) display(rel string) string {
	return filepath.Join(b.root, filepath.FromSlash(rel))
}

func sortFolders(folders []Folder) {
	slices.SortStableFunc(folders, func(a, c Folder) int {
		return strings.Compare(a.Name, c.Name)
	})
}

func baseName(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Base(dir)
}
