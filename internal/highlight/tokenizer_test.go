package highlight

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenizeSplitsStringAroundExpression(t *testing.T) {
	got := Tokenize(`"hello {{name}}!"`)
	want := []Token{
		{Kind: String, Text: `"hello `},
		{Kind: Expression, Text: `{{name}}`},
		{Kind: String, Text: `!"`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeMultipleExpressionsInString(t *testing.T) {
	got := Tokenize(`"{{a}}-{{b}}"`)
	want := []Token{
		{Kind: String, Text: `"`},
		{Kind: Expression, Text: `{{a}}`},
		{Kind: String, Text: `-`},
		{Kind: Expression, Text: `{{b}}`},
		{Kind: String, Text: `"`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeUnterminatedExpression(t *testing.T) {
	got := Tokenize(`{{foo`)
	want := []Token{{Kind: Expression, Text: `{{foo`}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeTopLevelExpressionIgnoresNesting(t *testing.T) {
	got := Tokenize(`{{ {x} }} ,`)
	want := []Token{
		{Kind: Expression, Text: `{{ {x} }}`},
		{Kind: Whitespace, Text: " "},
		{Kind: Comma, Text: ","},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeEscapes(t *testing.T) {
	cases := map[string]string{
		"escaped quote":      `"a\"b"`,
		"escaped expression": `"\{{x}}"`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got := Tokenize(in)
			want := []Token{{Kind: String, Text: in}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	got := Tokenize(`"abc`)
	want := []Token{{Kind: String, Text: `"abc`}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeScalars(t *testing.T) {
	got := Tokenize(`[-1.5e+3,1.2.3,true,false,null]`)
	want := []Token{
		{Kind: OpenBracket, Text: "["},
		{Kind: Number, Text: "-1.5e+3"},
		{Kind: Comma, Text: ","},
		{Kind: Number, Text: "1.2.3"},
		{Kind: Comma, Text: ","},
		{Kind: Boolean, Text: "true"},
		{Kind: Comma, Text: ","},
		{Kind: Boolean, Text: "false"},
		{Kind: Comma, Text: ","},
		{Kind: Null, Text: "null"},
		{Kind: CloseBracket, Text: "]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeSkipsUnknownCharacters(t *testing.T) {
	if got := Tokenize(`abc`); len(got) != 0 {
		t.Fatalf("expected no tokens, got %+v", got)
	}
}
