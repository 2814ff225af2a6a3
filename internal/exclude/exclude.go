// Package exclude matches folder names against glob patterns.
package exclude

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Matcher holds a compiled list of exclude patterns.
type Matcher struct {
	patterns []string
	globs    []glob.Glob
}

// New compiles patterns. An empty list yields a matcher that never matches.
func New(patterns ...string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, p)
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports the first pattern that matches name.
func (m *Matcher) Match(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	for i, g := range m.globs {
		if g.Match(name) {
			return m.patterns[i], true
		}
	}
	return "", false
}

// Patterns returns the compiled patterns in order.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.patterns...)
}
