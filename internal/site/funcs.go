package site

import (
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"pkt.systems/brudoc/internal/parser"
)

const dateLayout = "January 2, 2006 at 03:04 PM"

var (
	kebabStrip  = regexp.MustCompile(`[^\w\s-]`)
	kebabSpaces = regexp.MustCompile(`[\s_]+`)
	pathParam   = regexp.MustCompile(`(:[^/]+)`)
)

// funcs returns the helpers available to every template.
func funcs(md *Markdown) map[string]any {
	return map[string]any{
		"exists":     exists,
		"json":       toJSON,
		"keys":       keys,
		"lowercase":  strings.ToLower,
		"kebabCase":  kebabCase,
		"formatDate": formatDate,
		"formatURL":  formatURL,
		"subtract":   func(a, b int) int { return a - b },
		"pluralize":  pluralize,
		"markdown": func(s string) htmltemplate.HTML {
			out, err := md.Convert(s)
			if err != nil {
				return htmltemplate.HTML(htmltemplate.HTMLEscapeString(s))
			}
			return htmltemplate.HTML(out)
		},
		"safe": func(s string) htmltemplate.HTML { return htmltemplate.HTML(s) },
		"join": strings.Join,
	}
}

// exists reports whether v is set: not nil, not an empty string, and not an
// empty slice or map.
func exists(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

func toJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// keys returns ordered keys for KeyValues and sorted keys for string maps.
func keys(v any) []string {
	switch m := v.(type) {
	case parser.KeyValues:
		out := make([]string, len(m))
		for i, p := range m {
			out[i] = p.Key
		}
		return out
	case nil:
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	out := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		out = append(out, k.String())
	}
	slices.Sort(out)
	return out
}

func kebabCase(s string) string {
	s = kebabStrip.ReplaceAllString(strings.ToLower(s), "")
	s = kebabSpaces.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format(dateLayout)
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return t
		}
		return parsed.Format(dateLayout)
	}
	return fmt.Sprint(v)
}

// formatURL marks up the scheme, host and path of raw, wrapping :param path
// segments. URLs without a scheme, such as {{baseUrl}}/users, are treated as
// a bare path.
func formatURL(raw string) htmltemplate.HTML {
	if raw == "" {
		return ""
	}
	esc := htmltemplate.HTMLEscapeString
	path := raw
	var sb strings.Builder
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		sb.WriteString(`<span class="protocol">` + esc(u.Scheme) + `:</span>//`)
		sb.WriteString(`<span class="host">` + esc(u.Host) + `</span>`)
		path = u.Path
	}
	path = pathParam.ReplaceAllString(esc(path), `<span class="param">$1</span>`)
	sb.WriteString(`<span class="path">` + path + `</span>`)
	return htmltemplate.HTML(sb.String())
}

func pluralize(count int, singular string, plural ...string) string {
	word := singular
	if count != 1 {
		word = singular + "s"
		if len(plural) > 0 {
			word = plural[0]
		}
	}
	return fmt.Sprintf("%d %s", count, word)
}
