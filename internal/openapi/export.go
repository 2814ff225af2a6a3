// Package openapi exports a parsed collection as an OpenAPI 3 document.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oasdiff/yaml"

	"pkt.systems/brudoc/internal/collection"
	"pkt.systems/brudoc/internal/parser"
	"pkt.systems/pslog"
)

const (
	specVersion    = "3.0.3"
	defaultVersion = "1.0.0"

	schemeBasic  = "basicAuth"
	schemeBearer = "bearerAuth"
	schemeDigest = "digestAuth"
)

// Options configure Export.
type Options struct {
	// Title defaults to the collection name.
	Title   string
	Version string
	Logger  pslog.Logger
}

var (
	leadingVar = regexp.MustCompile(`^\{\{[^}]+\}\}`)
	colonParam = regexp.MustCompile(`:([A-Za-z0-9_\-]+)`)
	pathVar    = regexp.MustCompile(`\{([^}]+)\}`)
)

// serverVars are environment variables tried, in order, as the server URL.
var serverVars = []string{"baseUrl", "baseURL", "base_url", "host", "url"}

// skipHeaders are handled by OpenAPI itself and may not be declared as
// header parameters.
var skipHeaders = []string{"accept", "authorization", "content-type"}

// Export converts c into an OpenAPI document. Requests without a verb block
// are skipped. Validation problems are logged, not returned.
func Export(ctx context.Context, c collection.Collection, opts Options) (*openapi3.T, error) {
	log := opts.Logger
	if log == nil {
		log = parser.Logger(ctx)
	}
	log = log.With("fn", pslog.CurrentFn())

	title := opts.Title
	if title == "" {
		title = c.Name
	}
	version := opts.Version
	if version == "" {
		version = defaultVersion
	}

	doc := &openapi3.T{
		OpenAPI:    specVersion,
		Info:       &openapi3.Info{Title: title, Version: version},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{SecuritySchemes: openapi3.SecuritySchemes{}},
		Servers:    servers(c),
	}
	if req := collectionSecurity(doc, c); req != nil {
		doc.Security = openapi3.SecurityRequirements{req}
	}

	e := &exporter{doc: doc, log: log, ids: map[string]int{}}
	c.Walk(func(f collection.Folder, path []string) {
		for _, d := range f.Files {
			e.add(d, path)
		}
	})
	for _, name := range e.tags {
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: name})
	}
	if len(doc.Components.SecuritySchemes) == 0 {
		doc.Components = nil
	}

	if err := doc.Validate(ctx); err != nil {
		log.Warn("openapi.validate.warn", "err", err)
	}
	log.Debug("openapi.exported", "paths", len(doc.Paths.Map()), "servers", len(doc.Servers))
	return doc, nil
}

type exporter struct {
	doc  *openapi3.T
	log  pslog.Logger
	ids  map[string]int
	tags []string
}

func (e *exporter) add(d parser.Document, folders []string) {
	if d.Request == nil {
		e.log.Debug("openapi.request.skipped", "file", d.FilePath, "reason", "no verb block")
		return
	}
	method := strings.ToUpper(d.Request.Method)
	route := PathOf(d.Request.URL)

	op := openapi3.NewOperation()
	op.Summary = d.Meta.Name
	op.Description = d.Docs
	op.OperationID = e.operationID(append(slices.Clone(folders), d.Meta.Name))
	if len(folders) > 0 {
		op.Tags = []string{folders[0]}
		if !slices.Contains(e.tags, folders[0]) {
			e.tags = append(e.tags, folders[0])
		}
	}
	op.Parameters = parameters(route, d)
	if body := requestBody(d); body != nil {
		op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}
	if sec, ok := e.requestSecurity(d); ok {
		op.Security = &sec
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("OK")}),
	)

	item := e.doc.Paths.Value(route)
	if item == nil {
		item = &openapi3.PathItem{}
		e.doc.Paths.Set(route, item)
	}
	if item.GetOperation(method) != nil {
		e.log.Warn("openapi.operation.duplicate", "method", method, "path", route, "file", d.FilePath)
	}
	item.SetOperation(method, op)
}

func (e *exporter) operationID(parts []string) string {
	var words []string
	for _, p := range parts {
		words = append(words, strings.Fields(strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
				return r
			}
			return ' '
		}, p))...)
	}
	id := strings.ToLower(strings.Join(words, "-"))
	if id == "" {
		id = "operation"
	}
	e.ids[id]++
	if n := e.ids[id]; n > 1 {
		id = fmt.Sprintf("%s-%d", id, n)
	}
	return id
}

// PathOf turns a request URL into an OpenAPI path template: the query,
// scheme and host (or a leading {{var}}) are dropped and :name or {{name}}
// segments become {name}.
func PathOf(raw string) string {
	p, _, _ := strings.Cut(raw, "?")
	p, _, _ = strings.Cut(p, "#")
	if _, rest, ok := strings.Cut(p, "://"); ok {
		p = "/"
		if i := strings.Index(rest, "/"); i >= 0 {
			p = rest[i:]
		}
	} else if loc := leadingVar.FindStringIndex(p); loc != nil {
		p = p[loc[1]:]
	}
	p = colonParam.ReplaceAllString(p, "{$1}")
	p = parser.VarPattern.ReplaceAllString(p, "{$1}")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func parameters(route string, d parser.Document) openapi3.Parameters {
	var params openapi3.Parameters
	for _, m := range pathVar.FindAllStringSubmatch(route, -1) {
		p := openapi3.NewPathParameter(m[1]).WithSchema(openapi3.NewStringSchema())
		if v, ok := d.Path.Get(m[1]); ok {
			p.Schema = &openapi3.SchemaRef{Value: schemaFor(v)}
			p.Description = "Example: " + v.Raw()
		}
		params = append(params, &openapi3.ParameterRef{Value: p})
	}
	for _, kv := range d.Query {
		p := openapi3.NewQueryParameter(kv.Key).WithSchema(schemaFor(kv.Value))
		p.Description = describe(kv)
		params = append(params, &openapi3.ParameterRef{Value: p})
	}
	for _, kv := range d.Headers {
		if slices.Contains(skipHeaders, strings.ToLower(kv.Key)) {
			continue
		}
		p := openapi3.NewHeaderParameter(kv.Key).WithSchema(openapi3.NewStringSchema())
		p.Description = describe(kv)
		params = append(params, &openapi3.ParameterRef{Value: p})
	}
	return params
}

func describe(kv parser.Pair) string {
	if kv.Disabled() {
		return "Example: " + kv.Value.Raw() + " (disabled)"
	}
	return "Example: " + kv.Value.Raw()
}

func schemaFor(v parser.Value) *openapi3.Schema {
	switch v.(type) {
	case parser.Int:
		return openapi3.NewIntegerSchema()
	case parser.Float:
		return openapi3.NewFloat64Schema()
	}
	return openapi3.NewStringSchema()
}

func requestBody(d parser.Document) *openapi3.RequestBody {
	b := d.Bodies
	var content openapi3.Content
	switch {
	case b.JSON != "":
		mt := &openapi3.MediaType{Schema: &openapi3.SchemaRef{Value: openapi3.NewSchema()}}
		var example any
		if err := json.Unmarshal([]byte(b.JSON), &example); err == nil {
			mt.Example = example
		}
		content = openapi3.Content{"application/json": mt}
	case b.XML != "":
		content = openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"application/xml"})
	case b.Text != "":
		content = openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/plain"})
	case len(b.FormURLEncoded) > 0:
		content = openapi3.NewContentWithSchema(formSchema(b.FormURLEncoded), []string{"application/x-www-form-urlencoded"})
	case len(b.MultipartForm) > 0:
		content = openapi3.NewContentWithSchema(formSchema(b.MultipartForm), []string{"multipart/form-data"})
	case b.GraphQL != "":
		content = openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema().
			WithProperty("query", openapi3.NewStringSchema()).
			WithProperty("variables", openapi3.NewObjectSchema()))
	default:
		return nil
	}
	return openapi3.NewRequestBody().WithContent(content)
}

func formSchema(kv parser.KeyValues) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for _, p := range kv {
		s.WithProperty(p.Key, schemaFor(p.Value))
	}
	return s
}

func servers(c collection.Collection) openapi3.Servers {
	names := make([]string, 0, len(c.Environments))
	for name := range c.Environments {
		names = append(names, name)
	}
	slices.Sort(names)
	var out openapi3.Servers
	for _, name := range names {
		env := c.Environments[name]
		for _, key := range serverVars {
			if v, ok := env.Variables.Get(key); ok && strings.Contains(v.Raw(), "://") {
				out = append(out, &openapi3.Server{URL: v.Raw(), Description: name})
				break
			}
		}
	}
	return out
}

func httpScheme(scheme string) *openapi3.SecuritySchemeRef {
	return &openapi3.SecuritySchemeRef{Value: &openapi3.SecurityScheme{Type: "http", Scheme: scheme}}
}

func collectionSecurity(doc *openapi3.T, c collection.Collection) openapi3.SecurityRequirement {
	switch c.Auth {
	case collection.AuthBasic:
		doc.Components.SecuritySchemes[schemeBasic] = httpScheme("basic")
		return openapi3.NewSecurityRequirement().Authenticate(schemeBasic)
	case collection.AuthBearer:
		doc.Components.SecuritySchemes[schemeBearer] = httpScheme("bearer")
		return openapi3.NewSecurityRequirement().Authenticate(schemeBearer)
	case collection.AuthDigest:
		doc.Components.SecuritySchemes[schemeDigest] = httpScheme("digest")
		return openapi3.NewSecurityRequirement().Authenticate(schemeDigest)
	}
	return nil
}

// requestSecurity maps a request's own auth. An auth mode of none clears
// inherited security; no auth block keeps the document default.
func (e *exporter) requestSecurity(d parser.Document) (openapi3.SecurityRequirements, bool) {
	var name, scheme string
	switch {
	case d.Basic != nil:
		name, scheme = schemeBasic, "basic"
	case d.Bearer != nil:
		name, scheme = schemeBearer, "bearer"
	case d.Digest != nil:
		name, scheme = schemeDigest, "digest"
	case d.AuthMode == "none":
		return openapi3.SecurityRequirements{}, true
	default:
		return nil, false
	}
	if _, ok := e.doc.Components.SecuritySchemes[name]; !ok {
		e.doc.Components.SecuritySchemes[name] = httpScheme(scheme)
	}
	return openapi3.SecurityRequirements{openapi3.NewSecurityRequirement().Authenticate(name)}, true
}

// Encode writes doc as indented JSON, or YAML when asYAML is set.
func Encode(w io.Writer, doc *openapi3.T, asYAML bool) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode openapi: %w", err)
	}
	if asYAML {
		if data, err = yaml.JSONToYAML(data); err != nil {
			return fmt.Errorf("encode openapi yaml: %w", err)
		}
	} else {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}
