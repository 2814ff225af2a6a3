package brudoc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"pkt.systems/brudoc/internal/collection"
	"pkt.systems/brudoc/internal/exclude"
	"pkt.systems/brudoc/internal/highlight"
	"pkt.systems/brudoc/internal/parser"
	"pkt.systems/pslog"
)

// Public type aliases to internal packages

type (
	// Document is one parsed .bru file.
	Document = parser.Document
	// Collection is the root of a parsed tree.
	Collection = collection.Collection
	// Folder groups documents and subfolders.
	Folder = collection.Folder
	// Environment is one file of the environments directory.
	Environment = collection.Environment
	// KeyValues is an ordered key/value block.
	KeyValues = parser.KeyValues
	// Mode selects highlighter output.
	Mode = highlight.Mode
)

const (
	ModeHTML = highlight.HTML
	ModeText = highlight.Text
)

// ErrNotDirectory is returned when the collection path is not a directory.
var ErrNotDirectory = errors.New("brudoc: not a directory")

// ParseOptions configure ParseCollection.
type ParseOptions struct {
	// Exclude lists glob patterns matched against folder names.
	Exclude []string
	Logger  pslog.Logger
}

// ParseCollection parses the collection rooted at dir.
func ParseCollection(ctx context.Context, dir string, opts ParseOptions) (Collection, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Collection{}, fmt.Errorf("collection %s: %w", dir, err)
	}
	if !info.IsDir() {
		return Collection{}, fmt.Errorf("collection %s: %w", dir, ErrNotDirectory)
	}
	m, err := exclude.New(opts.Exclude...)
	if err != nil {
		return Collection{}, err
	}
	log := opts.Logger
	if log == nil {
		log = parser.Logger(ctx)
	}
	if patterns := m.Patterns(); len(patterns) > 0 {
		log.Debug("collection.exclude", "dir", dir, "patterns", patterns)
	}
	return collection.Parse(ctx, dir, collection.Options{Exclude: m, Logger: log})
}

// ParseFile parses a single .bru file.
func ParseFile(ctx context.Context, path string) (Document, error) {
	return parser.ParseFile(ctx, path)
}

// FormatJSON re-lays out a JSON body that may contain {{expressions}}. The
// input is returned unchanged when it cannot be rendered; the failure is
// logged to the logger in ctx, if any.
func FormatJSON(ctx context.Context, value string, mode Mode) string {
	return highlight.NewFormatter(parser.Logger(ctx)).Format(value, mode)
}

// Version returns the current module version (best effort).
func Version() string {
	return moduleVersion(modulePath)
}

const modulePath = "pkt.systems/brudoc"

var moduleVersion = func(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	if info.Main.Path == path && info.Main.Version != "" {
		return info.Main.Version
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			return dep.Version
		}
	}
	return "(devel)"
}
