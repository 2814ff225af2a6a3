package parser

import (
	"regexp"
	"strings"
)

// Span is one block found by the scanner: its header name and the raw
// content lines between the braces.
type Span struct {
	Name  string
	Lines []string
}

// Kind returns the block kind of the span header.
func (s Span) Kind() Kind { return ParseKind(s.Name) }

// blockStart allows a nameless header only when the brace is in column one.
var blockStart = regexp.MustCompile(`^(?:([a-zA-Z:\-]+)\s*)?\{`)

// scanner walks the lines of one file. It holds no state beyond a single
// Scan call.
type scanner struct {
	spans []Span
	name  string
	lines []string
	depth int
	open  bool
}

// Scan splits raw .bru text into blocks. A block still open at end of input
// is dropped.
func Scan(text string) []Span {
	s := &scanner{}
	for _, line := range splitLines(text) {
		s.feed(line)
	}
	return s.spans
}

func (s *scanner) feed(line string) {
	if !s.open {
		s.outside(line)
		return
	}
	s.depth += strings.Count(line, "{") - strings.Count(line, "}")
	// A stray close drives depth negative; the block then stays open until
	// the count returns to exactly zero or input ends.
	if s.depth != 0 {
		s.lines = append(s.lines, line)
		return
	}
	head := line
	if i := strings.LastIndex(line, "}"); i >= 0 {
		head = line[:i]
	}
	if strings.TrimSpace(head) != "" {
		s.lines = append(s.lines, head)
	}
	s.emit()
}

func (s *scanner) outside(line string) {
	if line == "" || strings.HasPrefix(line, "//") {
		return
	}
	m := blockStart.FindStringSubmatch(line)
	if m == nil {
		return
	}
	s.open = true
	s.name = m[1]
	s.depth = 1
	s.lines = nil
	rest := line[len(m[0]):]
	switch {
	case rest == "}":
		s.emit()
	case rest != "":
		s.lines = append(s.lines, rest)
	}
}

func (s *scanner) emit() {
	s.spans = append(s.spans, Span{Name: s.name, Lines: s.lines})
	s.open = false
	s.name = ""
	s.lines = nil
	s.depth = 0
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
