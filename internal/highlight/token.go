// Package highlight re-lexes JSON-shaped text that may embed {{ }} template
// expressions and pretty-prints it as HTML markup or plain text.
package highlight

// Kind is the type of a token.
type Kind int

const (
	OpenBrace Kind = iota
	CloseBrace
	OpenBracket
	CloseBracket
	Colon
	Comma
	String
	Number
	Boolean
	Null
	Expression
	Whitespace
)

var kindNames = [...]string{
	OpenBrace:    "open-brace",
	CloseBrace:   "close-brace",
	OpenBracket:  "open-bracket",
	CloseBracket: "close-bracket",
	Colon:        "colon",
	Comma:        "comma",
	String:       "string",
	Number:       "number",
	Boolean:      "boolean",
	Null:         "null",
	Expression:   "expression",
	Whitespace:   "whitespace",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is one lexeme with its verbatim text.
type Token struct {
	Kind Kind
	Text string
}
