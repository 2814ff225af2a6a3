package parser

// Document captures a parsed .bru file.
type Document struct {
	FilePath string `json:"filename"`
	Meta     Meta   `json:"meta"`
	// AuthMode is the `mode` of the plain auth block, independent of the
	// structured auth:* blocks.
	AuthMode string `json:"auth,omitempty"`
	// Request holds the last HTTP verb block of the file.
	Request *Request     `json:"request,omitempty"`
	Basic   *Credentials `json:"auth:basic,omitempty"`
	Bearer  *Token       `json:"auth:bearer,omitempty"`
	Digest  *Credentials `json:"auth:digest,omitempty"`
	Query   KeyValues    `json:"params:query,omitempty"`
	Path    KeyValues    `json:"params:path,omitempty"`
	Headers KeyValues    `json:"headers,omitempty"`
	Vars    KeyValues    `json:"vars,omitempty"`
	Bodies  Bodies       `json:"bodies"`
	Scripts Scripts      `json:"scripts"`
	Tests   string       `json:"tests,omitempty"`
	Docs    string       `json:"docs,omitempty"`
}

// Meta stores the meta block of a file.
type Meta struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Seq  int    `json:"seq"`
}

// Request models an HTTP verb block.
type Request struct {
	Method string `json:"method"`
	URL    string `json:"url,omitempty"`
	Body   string `json:"body,omitempty"`
	Auth   string `json:"auth,omitempty"`
}

// Credentials is the content of an auth:basic or auth:digest block.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is the content of an auth:bearer block.
type Token struct {
	Token string `json:"token"`
}

// Bodies holds every body block variant found in a file.
type Bodies struct {
	Raw            string    `json:"body,omitempty"`
	JSON           string    `json:"json,omitempty"`
	Text           string    `json:"text,omitempty"`
	XML            string    `json:"xml,omitempty"`
	GraphQL        string    `json:"graphql,omitempty"`
	GraphQLVars    string    `json:"graphqlVars,omitempty"`
	FormURLEncoded KeyValues `json:"formUrlEncoded,omitempty"`
	MultipartForm  KeyValues `json:"multipartForm,omitempty"`
}

// Scripts holds the pre-request and post-response scripts.
type Scripts struct {
	PreRequest   string `json:"preRequest,omitempty"`
	PostResponse string `json:"postResponse,omitempty"`
}

const (
	TypeHTTP    = "http"
	TypeGraphQL = "graphql"
)

func newDocument(path string) Document {
	return Document{
		FilePath: path,
		Meta:     Meta{Type: TypeHTTP, Seq: 1},
	}
}
