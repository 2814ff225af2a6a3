package parser

import (
	"regexp"
	"strconv"
	"strings"

	"pkt.systems/pslog"
)

// builder accumulates blocks for one file and hands out the finished
// Document once.
type builder struct {
	doc Document
	log pslog.Base
}

func newBuilder(path string, log pslog.Base) *builder {
	return &builder{doc: newDocument(path), log: log}
}

func (b *builder) finish() Document { return b.doc }

// apply interprets one span. Unknown kinds are logged and dropped.
func (b *builder) apply(s Span) {
	kind := s.Kind()
	content := joinTrimmed(s.Lines)
	switch {
	case kind == KindMeta:
		b.meta(content)
	case kind.IsMethod():
		b.request(kind, content)
	case kind == KindAuth:
		b.doc.AuthMode = "none"
		if mode, ok := parseKeyValues(content).Get("mode"); ok && mode.Raw() != "" {
			b.doc.AuthMode = mode.Raw()
		}
	case kind == KindAuthBasic:
		b.doc.Basic = credentials(content)
	case kind == KindAuthDigest:
		b.doc.Digest = credentials(content)
	case kind == KindAuthBearer:
		tok := &Token{}
		eachField(content, func(key, val string) {
			if key == "token" {
				tok.Token = val
			}
		})
		b.doc.Bearer = tok
	case kind == KindParamsQuery:
		b.doc.Query = parseKeyValues(content)
	case kind == KindParamsPath:
		b.doc.Path = parseKeyValues(content)
	case kind == KindHeaders:
		b.doc.Headers = parseKeyValues(content)
	case kind == KindVars:
		b.doc.Vars = parseKeyValues(content)
	case kind == KindBodyFormURLEncoded:
		b.doc.Bodies.FormURLEncoded = parseKeyValues(content)
	case kind == KindBodyMultipartForm:
		b.doc.Bodies.MultipartForm = parseKeyValues(content)
	case kind == KindBody:
		b.doc.Bodies.Raw = content
	case kind == KindBodyJSON:
		b.doc.Bodies.JSON = content
	case kind == KindBodyText:
		b.doc.Bodies.Text = content
	case kind == KindBodyXML:
		b.doc.Bodies.XML = content
	case kind == KindBodyGraphQL:
		b.doc.Bodies.GraphQL = content
	case kind == KindBodyGraphQLVars:
		b.doc.Bodies.GraphQLVars = content
	case kind == KindScriptPreRequest:
		b.doc.Scripts.PreRequest = content
	case kind == KindScriptPostResponse:
		b.doc.Scripts.PostResponse = content
	case kind == KindTests:
		b.doc.Tests = content
	case kind == KindDocs:
		b.doc.Docs = dedentDocs(s.Lines)
	default:
		b.log.Warn("parser.block.unknown", "kind", s.Name, "file", b.doc.FilePath)
	}
}

func (b *builder) meta(content string) {
	eachField(content, func(key, val string) {
		switch key {
		case "name":
			b.doc.Meta.Name = val
		case "type":
			if val == TypeHTTP || val == TypeGraphQL {
				b.doc.Meta.Type = val
			}
		case "seq":
			b.doc.Meta.Seq = parseSeq(val)
		}
	})
}

func (b *builder) request(kind Kind, content string) {
	req := &Request{Method: kind.String()}
	eachField(content, func(key, val string) {
		switch key {
		case "url":
			req.URL = val
		case "body":
			req.Body = val
		case "auth":
			req.Auth = val
		}
	})
	b.doc.Request = req
}

func credentials(content string) *Credentials {
	c := &Credentials{}
	eachField(content, func(key, val string) {
		switch key {
		case "username":
			c.Username = val
		case "password":
			c.Password = val
		}
	})
	return c
}

var (
	intPattern   = regexp.MustCompile(`^\d+$`)
	floatPattern = regexp.MustCompile(`^\d+\.\d+$`)
)

// parseKeyValues is the shared parser behind params, headers, vars and form
// bodies. `~key` entries keep their raw string value; others are coerced to
// Int or Float when they look numeric.
func parseKeyValues(content string) KeyValues {
	kv := KeyValues{}
	eachField(content, func(key, val string) {
		if name, ok := strings.CutPrefix(key, "~"); ok {
			kv.Set(name, Disabled{Value: val})
			return
		}
		kv.Set(key, coerce(val))
	})
	return kv
}

func coerce(val string) Value {
	switch {
	case intPattern.MatchString(val):
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return Int(n)
		}
	case floatPattern.MatchString(val):
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return Float(f)
		}
	}
	return String(val)
}

// eachField calls fn for every non-blank line holding a colon, split on the
// first colon with both sides trimmed.
func eachField(content string, fn func(key, val string)) {
	for line := range strings.SplitSeq(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fn(strings.TrimSpace(key), strings.TrimSpace(val))
	}
}

// parseSeq reads a leading integer; anything unparsable, or zero, is 1.
func parseSeq(val string) int {
	end := 0
	if end < len(val) && (val[end] == '-' || val[end] == '+') {
		end++
	}
	digits := end
	for end < len(val) && val[end] >= '0' && val[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}
	n, err := strconv.Atoi(val[:end])
	if err != nil || n == 0 {
		return 1
	}
	return n
}

func joinTrimmed(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(l)
	}
	return strings.Join(out, "\n")
}

// dedentDocs strips exactly two leading spaces from each line that has them.
func dedentDocs(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimPrefix(l, "  ")
	}
	return strings.Join(out, "\n")
}
