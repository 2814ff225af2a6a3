package site

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"pkt.systems/brudoc/internal/parser"
)

func TestKebabCase(t *testing.T) {
	cases := map[string]string{
		"Get User (by ID)": "get-user-by-id",
		"  __Hello__ ":     "hello",
		"already-kebab":    "already-kebab",
	}
	for in, want := range cases {
		if got := kebabCase(in); got != want {
			t.Fatalf("kebabCase(%q) = %q want %q", in, got, want)
		}
	}
}

func TestFormatURL(t *testing.T) {
	got := string(formatURL("https://api.example.com/users/:id"))
	want := `<span class="protocol">https:</span>//<span class="host">api.example.com</span>` +
		`<span class="path">/users/<span class="param">:id</span></span>`
	if got != want {
		t.Fatalf("unexpected url markup:\n%s\nwant:\n%s", got, want)
	}
	got = string(formatURL("{{baseUrl}}/users/:id"))
	want = `<span class="path">{{baseUrl}}/users/<span class="param">:id</span></span>`
	if got != want {
		t.Fatalf("unexpected bare url markup:\n%s\nwant:\n%s", got, want)
	}
	if formatURL("") != "" {
		t.Fatalf("expected empty markup")
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "request"); got != "1 request" {
		t.Fatalf("got %q", got)
	}
	if got := pluralize(2, "request"); got != "2 requests" {
		t.Fatalf("got %q", got)
	}
	if got := pluralize(0, "child", "children"); got != "0 children" {
		t.Fatalf("got %q", got)
	}
}

func TestExists(t *testing.T) {
	cases := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{"", false},
		{"x", true},
		{[]string{}, false},
		{parser.KeyValues(nil), false},
		{(*Auth)(nil), false},
		{&Auth{}, true},
		{0, true},
	}
	for _, tc := range cases {
		if got := exists(tc.v); got != tc.want {
			t.Fatalf("exists(%#v) = %v want %v", tc.v, got, tc.want)
		}
	}
}

func TestKeys(t *testing.T) {
	kv := parser.KeyValues{{Key: "b", Value: parser.String("1")}, {Key: "a", Value: parser.String("2")}}
	if diff := cmp.Diff([]string{"b", "a"}, keys(kv)); diff != "" {
		t.Fatalf("ordered keys mismatch (-want +got):\n%s", diff)
	}
	m := map[string]int{"z": 1, "m": 2}
	if diff := cmp.Diff([]string{"m", "z"}, keys(m)); diff != "" {
		t.Fatalf("map keys mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatDate(t *testing.T) {
	want := "October 14, 2026 at 09:05 AM"
	if got := formatDate(fixedNow); got != want {
		t.Fatalf("formatDate(time) = %q", got)
	}
	if got := formatDate(fixedNow.Format(time.RFC3339)); got != want {
		t.Fatalf("formatDate(string) = %q", got)
	}
	if got := formatDate("yesterday"); got != "yesterday" {
		t.Fatalf("formatDate(invalid) = %q", got)
	}
}
