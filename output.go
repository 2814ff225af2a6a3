package brudoc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pkt.systems/brudoc/internal/highlight"
	"pkt.systems/brudoc/internal/openapi"
	"pkt.systems/brudoc/internal/parser"
	"pkt.systems/brudoc/internal/site"
	"pkt.systems/pslog"
)

// ErrUnknownFormat is returned for output formats brudoc cannot produce.
var ErrUnknownFormat = errors.New("brudoc: unknown format")

const (
	OutputHTML     = "html"
	OutputMarkdown = "md"
	OutputJSON     = "json"
	OutputOpenAPI  = "openapi"
)

// Format is an output format with an optional variant: the template name
// for html and md, or the encoding (json or yaml) for openapi.
type Format struct {
	Name    string
	Variant string
}

// ParseFormat parses "name" or "name:variant".
func ParseFormat(s string) (Format, error) {
	name, variant, _ := strings.Cut(strings.TrimSpace(s), ":")
	f := Format{Name: strings.ToLower(name), Variant: variant}
	switch f.Name {
	case OutputHTML, OutputMarkdown:
	case OutputJSON:
		if variant != "" {
			return Format{}, fmt.Errorf("%w: %s", ErrUnknownFormat, s)
		}
	case OutputOpenAPI:
		switch strings.ToLower(variant) {
		case "", "json", "yaml":
			f.Variant = strings.ToLower(variant)
		default:
			return Format{}, fmt.Errorf("%w: %s", ErrUnknownFormat, s)
		}
	default:
		return Format{}, fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
	return f, nil
}

func (f Format) String() string {
	if f.Variant == "" {
		return f.Name
	}
	return f.Name + ":" + f.Variant
}

// Ext returns the file extension, without the dot, for the format.
func (f Format) Ext() string {
	if f.Name == OutputOpenAPI {
		if f.Variant == "yaml" {
			return "yaml"
		}
		return "json"
	}
	return f.Name
}

// OutputPath resolves where output is written: inside output as index.<ext>
// when output is an existing directory or has no extension, else output
// itself.
func OutputPath(output string, f Format) string {
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, "index."+f.Ext())
	}
	if filepath.Ext(output) == "" {
		return filepath.Join(output, "index."+f.Ext())
	}
	return output
}

// BuildOptions configure Render and Build.
type BuildOptions struct {
	Format Format
	// Output is a file or directory; see OutputPath.
	Output string
	// Templates is a user template directory; empty uses the built-in set.
	Templates string
	// Title overrides the collection name on pages and in the OpenAPI info.
	Title  string
	Logger pslog.Logger
	Now    func() time.Time
}

// Render writes c to w in opts.Format.
func Render(ctx context.Context, w io.Writer, c Collection, opts BuildOptions) error {
	log := opts.Logger
	if log == nil {
		log = parser.Logger(ctx)
	}
	switch opts.Format.Name {
	case OutputHTML, OutputMarkdown:
		mode := highlight.HTML
		if opts.Format.Name == OutputMarkdown {
			mode = highlight.Text
		}
		data := site.Process(c, site.ProcessOptions{Mode: mode, Title: opts.Title, Logger: log, Now: opts.Now})
		return site.NewRenderer(opts.Templates, log).Render(w, opts.Format.Name, opts.Format.Variant, data)
	case OutputJSON:
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("encode collection: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case OutputOpenAPI:
		doc, err := openapi.Export(ctx, c, openapi.Options{Title: opts.Title, Logger: log})
		if err != nil {
			return err
		}
		return openapi.Encode(w, doc, opts.Format.Variant == "yaml")
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, opts.Format)
}

// Build renders c and writes it to the resolved output path, creating parent
// directories. It returns the path written.
func Build(ctx context.Context, c Collection, opts BuildOptions) (string, error) {
	var buf bytes.Buffer
	if err := Render(ctx, &buf, c, opts); err != nil {
		return "", err
	}
	path := OutputPath(opts.Output, opts.Format)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
