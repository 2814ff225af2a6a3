package parser

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"

	"pkt.systems/pslog"
)

// ParseFile reads and parses a single .bru file from disk.
func ParseFile(ctx context.Context, path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	return Parse(ctx, path, f)
}

// ParseFS reads and parses name from fsys. The document keeps displayPath as
// its FilePath.
func ParseFS(ctx context.Context, fsys fs.FS, name, displayPath string) (Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Document{}, err
	}
	return ParseString(ctx, displayPath, string(data)), nil
}

// Parse reads all of r and interprets it as a .bru file.
func Parse(ctx context.Context, path string, r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseString(ctx, path, string(data)), nil
}

// ParseString interprets text as a .bru file. Parsing is best effort and
// never fails; unknown blocks are logged and skipped.
func ParseString(ctx context.Context, path, text string) Document {
	b := newBuilder(path, Logger(ctx))
	for _, span := range Scan(text) {
		b.apply(span)
	}
	return b.finish()
}

// Logger returns the logger carried by ctx, or one that discards everything.
func Logger(ctx context.Context) pslog.Logger {
	if ctx != nil {
		if logger := pslog.LoggerFromContext(ctx); logger != nil {
			return logger
		}
	}
	return pslog.NewWithOptions(io.Discard, pslog.Options{MinLevel: pslog.InfoLevel})
}

// VarPattern matches {{var}} placeholders inside requests. The first group is
// the variable name without surrounding spaces.
var VarPattern = regexp.MustCompile(`\{\{\s*([^}]+?)\s*\}\}`)
