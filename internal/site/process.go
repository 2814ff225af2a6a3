// Package site prepares a parsed collection for templates and renders the
// documentation pages.
package site

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"pkt.systems/brudoc/internal/collection"
	"pkt.systems/brudoc/internal/highlight"
	"pkt.systems/brudoc/internal/parser"
	"pkt.systems/pslog"
)

// TemplateData is the root value handed to every page template.
type TemplateData struct {
	Title       string
	Collection  collection.Collection
	AllRequests []Request
	Stats       Stats
	GeneratedAt time.Time
}

// Stats summarize the collection.
type Stats struct {
	TotalRequests int
	TotalFolders  int
	// HTTPMethods are the distinct uppercased methods in lexical order.
	HTTPMethods []string
}

// Request is a document enriched with the values templates display.
type Request struct {
	parser.Document
	// Folder lists the display names from the top-level folder down.
	Folder []string
	Method string
	// URL is the request URL without its query string.
	URL  string
	Auth *Auth
	// Body is the first body variant present. BodyHighlighted is set when
	// Body holds highlighter markup rather than raw text.
	Body            string
	BodyHighlighted bool
	// Problems lists script syntax errors.
	Problems []string
}

// Auth is a display summary of a request's auth block.
type Auth struct {
	Type    string
	Details string
}

// HasScripts reports whether a pre-request or post-response script is set.
func (r Request) HasScripts() bool {
	return r.Scripts.PreRequest != "" || r.Scripts.PostResponse != ""
}

// ProcessOptions control Process.
type ProcessOptions struct {
	// Mode selects how JSON bodies are highlighted.
	Mode      highlight.Mode
	Title     string
	Logger    pslog.Logger
	Formatter *highlight.Formatter
	Now       func() time.Time
}

// Process flattens the collection into template data. Requests are listed
// depth-first and then stable-sorted by seq.
func Process(c collection.Collection, opts ProcessOptions) TemplateData {
	log := opts.Logger
	if log == nil {
		log = discard()
	}
	f := opts.Formatter
	if f == nil {
		f = highlight.NewFormatter(log)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	title := opts.Title
	if title == "" {
		title = c.Name
	}

	var reqs []Request
	c.Walk(func(folder collection.Folder, path []string) {
		for _, doc := range folder.Files {
			reqs = append(reqs, processRequest(doc, path, opts.Mode, f, log))
		}
	})
	slices.SortStableFunc(reqs, func(a, b Request) int {
		return cmp.Compare(a.Meta.Seq, b.Meta.Seq)
	})

	var methods []string
	for _, r := range reqs {
		if r.Method != "" && !slices.Contains(methods, r.Method) {
			methods = append(methods, r.Method)
		}
	}
	slices.Sort(methods)

	return TemplateData{
		Title:       title,
		Collection:  c,
		AllRequests: reqs,
		Stats: Stats{
			TotalRequests: len(reqs),
			TotalFolders:  c.CountFolders(),
			HTTPMethods:   methods,
		},
		GeneratedAt: now().UTC(),
	}
}

func processRequest(doc parser.Document, folder []string, mode highlight.Mode, f *highlight.Formatter, log pslog.Logger) Request {
	r := Request{Document: doc, Folder: folder}
	if doc.Request != nil {
		r.Method = strings.ToUpper(doc.Request.Method)
		r.URL, _, _ = strings.Cut(doc.Request.URL, "?")
	}

	switch {
	case doc.Basic != nil:
		r.Auth = &Auth{Type: "Basic Authentication", Details: "Username: " + doc.Basic.Username + "\nPassword: [HIDDEN]"}
	case doc.Bearer != nil:
		r.Auth = &Auth{Type: "Bearer Token", Details: "Token: " + doc.Bearer.Token}
	case doc.Digest != nil:
		r.Auth = &Auth{Type: "Digest Authentication", Details: "Username: " + doc.Digest.Username + "\nPassword: [HIDDEN]"}
	}

	switch {
	case doc.Bodies.JSON != "":
		r.Body = f.Format(doc.Bodies.JSON, mode)
		r.BodyHighlighted = mode == highlight.HTML && r.Body != doc.Bodies.JSON
	case doc.Bodies.Text != "":
		r.Body = doc.Bodies.Text
	case doc.Bodies.XML != "":
		r.Body = doc.Bodies.XML
	case doc.Bodies.Raw != "":
		r.Body = doc.Bodies.Raw
	}

	for _, s := range []struct{ kind, code string }{
		{"script:pre-request", doc.Scripts.PreRequest},
		{"script:post-response", doc.Scripts.PostResponse},
		{"tests", doc.Tests},
	} {
		if err := CheckScript(s.kind, s.code); err != nil {
			log.Warn("site.script.invalid", "file", doc.FilePath, "block", s.kind, "err", err)
			r.Problems = append(r.Problems, s.kind+": "+err.Error())
		}
	}
	return r
}
