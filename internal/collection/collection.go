// Package collection assembles a Bruno collection directory into a tree of
// folders and parsed request documents.
package collection

import "pkt.systems/brudoc/internal/parser"

// AuthKind names the collection-level auth scheme.
type AuthKind string

const (
	AuthNone   AuthKind = "none"
	AuthBasic  AuthKind = "basic"
	AuthBearer AuthKind = "bearer"
	AuthDigest AuthKind = "digest"
)

// Collection is the root of a parsed tree.
type Collection struct {
	Name string   `json:"name"`
	Auth AuthKind `json:"auth"`
	// Only the record matching Auth is set.
	Basic        *parser.Credentials    `json:"auth:basic,omitempty"`
	Bearer       *parser.Token          `json:"auth:bearer,omitempty"`
	Digest       *parser.Credentials    `json:"auth:digest,omitempty"`
	Folders      []Folder               `json:"folders"`
	Environments map[string]Environment `json:"environments,omitempty"`
}

// Folder is a directory holding at least one request or non-empty subfolder.
type Folder struct {
	Name    string            `json:"name"`
	Files   []parser.Document `json:"files"`
	Folders []Folder          `json:"folders"`
}

// Environment is one file from the environments directory.
type Environment struct {
	Name      string           `json:"name"`
	Variables parser.KeyValues `json:"variables"`
}

// CountFiles returns the number of documents in the whole tree.
func (c Collection) CountFiles() int {
	n := 0
	c.Walk(func(f Folder, _ []string) { n += len(f.Files) })
	return n
}

// CountFolders returns the number of folders at every depth.
func (c Collection) CountFolders() int {
	n := 0
	c.Walk(func(Folder, []string) { n++ })
	return n
}

// Walk visits every folder depth-first, files before subfolders, passing the
// display names of its ancestors including itself.
func (c Collection) Walk(fn func(f Folder, path []string)) {
	for _, f := range c.Folders {
		walk(f, nil, fn)
	}
}

func walk(f Folder, parents []string, fn func(Folder, []string)) {
	path := append(append([]string(nil), parents...), f.Name)
	fn(f, path)
	for _, sub := range f.Folders {
		walk(sub, path, fn)
	}
}
