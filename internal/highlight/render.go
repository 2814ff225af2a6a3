package highlight

import (
	"errors"
	"strings"
)

// ErrUnbalanced is returned when a closing token has no open container.
var ErrUnbalanced = errors.New("highlight: unbalanced closing token")

const indentUnit = "  "

// backend supplies the text emitted for each token by one output style.
type backend interface {
	open(t Token) string
	close(t Token) string
	colon() string
	comma() string
	value(t Token) string
}

// RenderHTML renders tokens as HTML with semantic span classes.
func RenderHTML(tokens []Token) (string, error) {
	return render(tokens, &htmlBackend{})
}

// RenderText pretty-prints tokens as plain text.
func RenderText(tokens []Token) (string, error) {
	return render(tokens, textBackend{})
}

// render drops whitespace and rebuilds layout from structural tokens. A
// container whose next token is its own close stays inline.
func render(tokens []Token, b backend) (string, error) {
	toks := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != Whitespace {
			toks = append(toks, t)
		}
	}

	var sb strings.Builder
	level := 0
	newline := func() {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(indentUnit, level))
	}
	for i, t := range toks {
		switch t.Kind {
		case OpenBrace, OpenBracket:
			sb.WriteString(b.open(t))
			if i+1 >= len(toks) || toks[i+1].Kind != closer(t.Kind) {
				level++
				newline()
			}
		case CloseBrace, CloseBracket:
			if i == 0 || toks[i-1].Kind != opener(t.Kind) {
				level--
				if level < 0 {
					return "", ErrUnbalanced
				}
				newline()
			}
			sb.WriteString(b.close(t))
		case Colon:
			sb.WriteString(b.colon())
		case Comma:
			sb.WriteString(b.comma())
			newline()
		default:
			sb.WriteString(b.value(t))
		}
	}
	return sb.String(), nil
}

func closer(k Kind) Kind {
	if k == OpenBracket {
		return CloseBracket
	}
	return CloseBrace
}

func opener(k Kind) Kind {
	if k == CloseBracket {
		return OpenBracket
	}
	return OpenBrace
}

type textBackend struct{}

func (textBackend) open(t Token) string  { return t.Text }
func (textBackend) close(t Token) string { return t.Text }
func (textBackend) colon() string        { return ": " }
func (textBackend) comma() string        { return "," }
func (textBackend) value(t Token) string { return t.Text }

// htmlBackend tracks whether the next string is an object key: true after
// an open brace or a comma, false after a colon.
type htmlBackend struct {
	key bool
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

func (h *htmlBackend) open(t Token) string {
	if t.Kind == OpenBracket {
		return `<span class="json-bracket json-bracket-open">[</span><div class="json-array">`
	}
	h.key = true
	return `<span class="json-brace json-brace-open">{</span><div class="json-object">`
}

func (h *htmlBackend) close(t Token) string {
	if t.Kind == CloseBracket {
		return `</div><span class="json-bracket json-bracket-close">]</span>`
	}
	return `</div><span class="json-brace json-brace-close">}</span>`
}

func (h *htmlBackend) colon() string {
	h.key = false
	return `<span class="json-colon">:</span> `
}

func (h *htmlBackend) comma() string {
	h.key = true
	return `<span class="json-comma">,</span><br/>`
}

func (h *htmlBackend) value(t Token) string {
	switch t.Kind {
	case String:
		if h.key {
			return `<span class="json-key">` + htmlEscaper.Replace(t.Text) + `</span>`
		}
		return `<span class="json-string">` + htmlEscaper.Replace(t.Text) + `</span>`
	case Expression:
		return `<span class="json-handlebars">` + htmlEscaper.Replace(t.Text) + `</span>`
	case Number:
		return `<span class="json-number">` + htmlEscaper.Replace(t.Text) + `</span>`
	case Boolean:
		return `<span class="json-boolean">` + t.Text + `</span>`
	case Null:
		return `<span class="json-null">` + t.Text + `</span>`
	}
	return ""
}
