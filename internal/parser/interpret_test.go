package parser

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pkt.systems/pslog"
)

func parse(t *testing.T, text string) Document {
	t.Helper()
	return ParseString(context.Background(), "case.bru", text)
}

func TestGenericKeyValueCoercion(t *testing.T) {
	for _, block := range []string{"params:query", "params:path", "headers", "vars", "body:form-urlencoded", "body:multipart-form"} {
		doc := parse(t, block+" {\n  count: 5\n  ratio: 5.5\n  ~off: 5\n  name: five\n  version: 1.2.3\n}\n")
		var kv KeyValues
		switch block {
		case "params:query":
			kv = doc.Query
		case "params:path":
			kv = doc.Path
		case "headers":
			kv = doc.Headers
		case "vars":
			kv = doc.Vars
		case "body:form-urlencoded":
			kv = doc.Bodies.FormURLEncoded
		case "body:multipart-form":
			kv = doc.Bodies.MultipartForm
		}
		want := KeyValues{
			{Key: "count", Value: Int(5)},
			{Key: "ratio", Value: Float(5.5)},
			{Key: "off", Value: Disabled{Value: "5"}},
			{Key: "name", Value: String("five")},
			{Key: "version", Value: String("1.2.3")},
		}
		if diff := cmp.Diff(want, kv); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", block, diff)
		}
	}
}

func TestKeyValueSplitsOnFirstColon(t *testing.T) {
	doc := parse(t, "headers {\n  Authorization: Bearer a:b\n  no-colon-line\n\n}\n")
	v, ok := doc.Headers.Get("Authorization")
	if !ok || v != String("Bearer a:b") {
		t.Fatalf("unexpected header value %#v", v)
	}
	if doc.Headers.Len() != 1 {
		t.Fatalf("expected lines without colon skipped, got %+v", doc.Headers)
	}
}

func TestKeyValueRepeatedKeyKeepsPosition(t *testing.T) {
	doc := parse(t, "vars {\n  a: 1\n  b: 2\n  a: 3\n}\n")
	want := KeyValues{{Key: "a", Value: Int(3)}, {Key: "b", Value: Int(2)}}
	if diff := cmp.Diff(want, doc.Vars); diff != "" {
		t.Fatalf("vars mismatch (-want +got):\n%s", diff)
	}
}

func TestMetaDefaultsAndOverrides(t *testing.T) {
	doc := parse(t, "get {\n  url: http://x\n}\n")
	if doc.Meta != (Meta{Type: TypeHTTP, Seq: 1}) {
		t.Fatalf("unexpected defaults %+v", doc.Meta)
	}

	doc = parse(t, "meta {\n  name: Create User\n  type: graphql\n  seq: 7\n}\n")
	if doc.Meta != (Meta{Name: "Create User", Type: TypeGraphQL, Seq: 7}) {
		t.Fatalf("unexpected meta %+v", doc.Meta)
	}
}

func TestMetaInvalidTypeKeepsPrevious(t *testing.T) {
	doc := parse(t, "meta {\n  type: graphql\n  type: soap\n}\n")
	if doc.Meta.Type != TypeGraphQL {
		t.Fatalf("expected previous type kept, got %q", doc.Meta.Type)
	}
}

func TestMetaSeqFallback(t *testing.T) {
	cases := map[string]int{"abc": 1, "": 1, "0": 1, "3": 3, "4.5": 4, "12xyz": 12, "-2": -2}
	for in, want := range cases {
		doc := parse(t, "meta {\n  seq: "+in+"\n}\n")
		if doc.Meta.Seq != want {
			t.Fatalf("seq %q: expected %d, got %d", in, want, doc.Meta.Seq)
		}
	}
}

func TestVerbBlockLastWins(t *testing.T) {
	doc := parse(t, "get {\n  url: https://a.test/one\n  body: json\n  auth: bearer\n}\npost {\n  url: https://a.test/two\n}\n")
	if doc.Request == nil || doc.Request.Method != "post" || doc.Request.URL != "https://a.test/two" {
		t.Fatalf("expected last verb block, got %+v", doc.Request)
	}

	doc = parse(t, "options {\n  url: https://a.test\n  body: none\n  auth: inherit\n  extra: ignored\n}\n")
	want := &Request{Method: "options", URL: "https://a.test", Body: "none", Auth: "inherit"}
	if diff := cmp.Diff(want, doc.Request); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestAuthBlocks(t *testing.T) {
	doc := parse(t, `auth {
  mode: bearer
}
auth:basic {
  username: alice
  password: s3cret
  realm: ignored
}
auth:bearer {
  token: {{token}}
}
auth:digest {
  username: bob
  password: pw
}
`)
	if doc.AuthMode != "bearer" {
		t.Fatalf("auth mode %q", doc.AuthMode)
	}
	if *doc.Basic != (Credentials{Username: "alice", Password: "s3cret"}) {
		t.Fatalf("basic %+v", doc.Basic)
	}
	if doc.Bearer.Token != "{{token}}" {
		t.Fatalf("bearer %+v", doc.Bearer)
	}
	if *doc.Digest != (Credentials{Username: "bob", Password: "pw"}) {
		t.Fatalf("digest %+v", doc.Digest)
	}

	doc = parse(t, "auth {\n}\n")
	if doc.AuthMode != "none" {
		t.Fatalf("expected none for missing mode, got %q", doc.AuthMode)
	}

	doc = parse(t, "auth {\n  mode:\n}\n")
	if doc.AuthMode != "none" {
		t.Fatalf("expected none for empty mode, got %q", doc.AuthMode)
	}
}

func TestRawBlocks(t *testing.T) {
	doc := parse(t, `body:json {
  {
    "a": 1
  }
}
body:graphql {
  query { me { id } }
}
script:pre-request {
  const a = 1;
    const b = 2;
}
tests {
  test("ok", function() {
    expect(res.status).to.equal(200);
  });
}
`)
	if doc.Bodies.JSON != "{\n\"a\": 1\n}" {
		t.Fatalf("json body %q", doc.Bodies.JSON)
	}
	if doc.Bodies.GraphQL != "query { me { id } }" {
		t.Fatalf("graphql body %q", doc.Bodies.GraphQL)
	}
	if doc.Scripts.PreRequest != "const a = 1;\nconst b = 2;" {
		t.Fatalf("script %q", doc.Scripts.PreRequest)
	}
	if !strings.HasPrefix(doc.Tests, "test(\"ok\"") || !strings.HasSuffix(doc.Tests, "});") {
		t.Fatalf("tests %q", doc.Tests)
	}
}

func TestDocsStripsTwoSpaceIndent(t *testing.T) {
	doc := parse(t, "docs {\n  # Title\n    indented code\n no-indent\n}\n")
	want := "# Title\n  indented code\n no-indent"
	if doc.Docs != want {
		t.Fatalf("docs %q, want %q", doc.Docs, want)
	}
}

func TestUnknownBlockLogsWarning(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := pslog.ContextWithLogger(context.Background(), pslog.NewStructured(buf))
	doc := ParseString(ctx, "odd.bru", "assert {\n  res.status: eq 200\n}\nmeta {\n  name: Odd\n}\n")
	if doc.Meta.Name != "Odd" {
		t.Fatalf("known blocks should still parse, got %+v", doc.Meta)
	}
	out := buf.String()
	if !strings.Contains(out, "parser.block.unknown") || !strings.Contains(out, "assert") {
		t.Fatalf("expected unknown block warning, got %q", out)
	}
}
