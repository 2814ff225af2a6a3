package site

import (
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	texttemplate "text/template"

	"pkt.systems/pslog"
)

//go:embed templates
var builtin embed.FS

const (
	FormatHTML     = "html"
	FormatMarkdown = "md"

	defaultTemplate = "index"
	templateExt     = ".tmpl"
)

// ErrUnsupportedFormat is returned for formats that have no page templates.
var ErrUnsupportedFormat = errors.New("site: unsupported template format")

// Renderer executes page templates from the built-in set or a user template
// directory laid out as <format>/<name>.tmpl with optional
// <format>/partials/*.tmpl.
type Renderer struct {
	fsys fs.FS
	md   *Markdown
	log  pslog.Logger
}

// NewRenderer returns a Renderer reading templates from dir, or the built-in
// templates when dir is empty.
func NewRenderer(dir string, log pslog.Logger) *Renderer {
	if log == nil {
		log = discard()
	}
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(builtin, "templates")
		if err != nil {
			panic(err)
		}
		fsys = sub
	}
	return &Renderer{fsys: fsys, md: NewMarkdown(), log: log}
}

// NewRendererFS returns a Renderer reading templates from fsys.
func NewRendererFS(fsys fs.FS, log pslog.Logger) *Renderer {
	if log == nil {
		log = discard()
	}
	return &Renderer{fsys: fsys, md: NewMarkdown(), log: log}
}

// executor is the common surface of html/template and text/template.
type executor interface {
	Execute(w io.Writer, data any) error
}

// Render executes template name (index when empty) for format into w.
func (r *Renderer) Render(w io.Writer, format, name string, data TemplateData) error {
	if name == "" {
		name = defaultTemplate
	}
	if format != FormatHTML && format != FormatMarkdown {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	main := path.Join(format, name+templateExt)
	src, err := fs.ReadFile(r.fsys, main)
	if err != nil {
		return fmt.Errorf("load template %s: %w", main, err)
	}
	partials := r.partials(format)

	var tmpl executor
	if format == FormatHTML {
		tmpl, err = parseHTML(main, string(src), partials, funcs(r.md))
	} else {
		tmpl, err = parseText(main, string(src), partials, funcs(r.md))
	}
	if err != nil {
		return fmt.Errorf("parse template %s: %w", main, err)
	}
	r.log.Debug("site.render", "template", main, "partials", len(partials), "requests", len(data.AllRequests))
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render %s: %w", main, err)
	}
	return nil
}

type partial struct {
	name, path, src string
}

// partials loads <format>/partials/*.tmpl. Unreadable partials are skipped
// with a warning.
func (r *Renderer) partials(format string) []partial {
	matches, err := fs.Glob(r.fsys, path.Join(format, "partials", "*"+templateExt))
	if err != nil {
		r.log.Warn("site.partials.glob", "format", format, "err", err)
		return nil
	}
	var out []partial
	for _, m := range matches {
		data, err := fs.ReadFile(r.fsys, m)
		if err != nil {
			r.log.Warn("site.partial.unreadable", "path", m, "err", err)
			continue
		}
		out = append(out, partial{
			name: strings.TrimSuffix(path.Base(m), templateExt),
			path: m,
			src:  string(data),
		})
	}
	return out
}

func parseHTML(name, src string, partials []partial, fm map[string]any) (executor, error) {
	t, err := htmltemplate.New(name).Funcs(htmltemplate.FuncMap(fm)).Parse(src)
	if err != nil {
		return nil, err
	}
	for _, p := range partials {
		if _, err := t.New(p.name).Parse(p.src); err != nil {
			return nil, fmt.Errorf("partial %s: %w", p.path, err)
		}
	}
	return t, nil
}

func parseText(name, src string, partials []partial, fm map[string]any) (executor, error) {
	t, err := texttemplate.New(name).Funcs(texttemplate.FuncMap(fm)).Parse(src)
	if err != nil {
		return nil, err
	}
	for _, p := range partials {
		if _, err := t.New(p.name).Parse(p.src); err != nil {
			return nil, fmt.Errorf("partial %s: %w", p.path, err)
		}
	}
	return t, nil
}

func discard() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{MinLevel: pslog.InfoLevel})
}
