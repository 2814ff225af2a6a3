package highlight

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	exprOpen  = "{{"
	exprClose = "}}"
)

type lexer struct {
	in     string
	pos    int
	tokens []Token
}

// Tokenize lexes s in a single pass. Characters that start no token are
// skipped, and malformed input never fails.
func Tokenize(s string) []Token {
	l := &lexer{in: s}
	for l.pos < len(l.in) {
		l.next()
	}
	return l.tokens
}

func (l *lexer) emit(k Kind, text string) {
	l.tokens = append(l.tokens, Token{Kind: k, Text: text})
}

func (l *lexer) next() {
	r, size := utf8.DecodeRuneInString(l.in[l.pos:])
	if unicode.IsSpace(r) {
		l.whitespace()
		return
	}
	rest := l.in[l.pos:]
	switch r {
	case '{':
		if strings.HasPrefix(rest, exprOpen) {
			l.expression()
			return
		}
		l.single(OpenBrace, size)
	case '}':
		l.single(CloseBrace, size)
	case '[':
		l.single(OpenBracket, size)
	case ']':
		l.single(CloseBracket, size)
	case ':':
		l.single(Colon, size)
	case ',':
		l.single(Comma, size)
	case '"':
		l.str()
	default:
		switch {
		case r == '-' || (r >= '0' && r <= '9'):
			l.number()
		case strings.HasPrefix(rest, "true"):
			l.literal(Boolean, "true")
		case strings.HasPrefix(rest, "false"):
			l.literal(Boolean, "false")
		case strings.HasPrefix(rest, "null"):
			l.literal(Null, "null")
		default:
			l.pos += size
		}
	}
}

func (l *lexer) single(k Kind, size int) {
	l.emit(k, l.in[l.pos:l.pos+size])
	l.pos += size
}

func (l *lexer) literal(k Kind, text string) {
	l.emit(k, text)
	l.pos += len(text)
}

func (l *lexer) whitespace() {
	start := l.pos
	for l.pos < len(l.in) {
		r, size := utf8.DecodeRuneInString(l.in[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	l.emit(Whitespace, l.in[start:l.pos])
}

// expression scans from {{ to the first }}, or to end of input when the
// expression is unterminated.
func (l *lexer) expression() {
	start := l.pos
	if end := strings.Index(l.in[start+len(exprOpen):], exprClose); end >= 0 {
		l.pos = start + len(exprOpen) + end + len(exprClose)
	} else {
		l.pos = len(l.in)
	}
	l.emit(Expression, l.in[start:l.pos])
}

// str scans a quoted string. A complete {{ }} inside it splits the string:
// the text so far is emitted, then the expression, then scanning resumes
// with a new string token.
func (l *lexer) str() {
	var sb strings.Builder
	sb.WriteByte('"')
	l.pos++
	escaped := false
	for l.pos < len(l.in) {
		if !escaped && strings.HasPrefix(l.in[l.pos:], exprOpen) {
			if end := strings.Index(l.in[l.pos+len(exprOpen):], exprClose); end >= 0 {
				stop := l.pos + len(exprOpen) + end + len(exprClose)
				l.emit(String, sb.String())
				l.emit(Expression, l.in[l.pos:stop])
				sb.Reset()
				l.pos = stop
				continue
			}
		}
		c := l.in[l.pos]
		switch {
		case c == '\\' && !escaped:
			escaped = true
		case c == '"' && !escaped:
			sb.WriteByte(c)
			l.pos++
			l.emit(String, sb.String())
			return
		default:
			escaped = false
		}
		sb.WriteByte(c)
		l.pos++
	}
	if sb.Len() > 0 {
		l.emit(String, sb.String())
	}
}

func isNumberChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E'
}

func (l *lexer) number() {
	start := l.pos
	for l.pos < len(l.in) && isNumberChar(l.in[l.pos]) {
		l.pos++
	}
	l.emit(Number, l.in[start:l.pos])
}
