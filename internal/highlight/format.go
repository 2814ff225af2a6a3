package highlight

import (
	"fmt"

	"pkt.systems/pslog"
)

// Mode selects the output style.
type Mode int

const (
	HTML Mode = iota
	Text
)

func (m Mode) String() string {
	if m == Text {
		return "text"
	}
	return "html"
}

// Highlight tokenizes and renders value in the given mode.
func Highlight(value string, mode Mode) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("highlight: %v", r)
		}
	}()
	tokens := Tokenize(value)
	if mode == Text {
		return RenderText(tokens)
	}
	return RenderHTML(tokens)
}

// Formatter renders body strings, returning the input unchanged when it
// cannot be rendered.
type Formatter struct {
	log pslog.Base
}

// NewFormatter returns a Formatter logging failures to log (may be nil).
func NewFormatter(log pslog.Base) *Formatter {
	return &Formatter{log: log}
}

// Format returns value highlighted in mode, or value itself on failure.
func (f *Formatter) Format(value string, mode Mode) string {
	out, err := Highlight(value, mode)
	if err != nil {
		if f != nil && f.log != nil {
			f.log.Warn("highlight.format.failed", "mode", mode.String(), "err", err)
		}
		return value
	}
	return out
}
