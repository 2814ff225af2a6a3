package parser

// Kind identifies a block kind in a .bru file.
type Kind int

const (
	KindUnknown Kind = iota
	KindMeta
	KindGet
	KindPost
	KindPut
	KindDelete
	KindPatch
	KindHead
	KindOptions
	KindTrace
	KindConnect
	KindAuth
	KindAuthBasic
	KindAuthBearer
	KindAuthDigest
	KindParamsQuery
	KindParamsPath
	KindHeaders
	KindVars
	KindBody
	KindBodyJSON
	KindBodyText
	KindBodyXML
	KindBodyFormURLEncoded
	KindBodyMultipartForm
	KindBodyGraphQL
	KindBodyGraphQLVars
	KindScriptPreRequest
	KindScriptPostResponse
	KindTests
	KindDocs
)

var kindNames = map[Kind]string{
	KindMeta:               "meta",
	KindGet:                "get",
	KindPost:               "post",
	KindPut:                "put",
	KindDelete:             "delete",
	KindPatch:              "patch",
	KindHead:               "head",
	KindOptions:            "options",
	KindTrace:              "trace",
	KindConnect:            "connect",
	KindAuth:               "auth",
	KindAuthBasic:          "auth:basic",
	KindAuthBearer:         "auth:bearer",
	KindAuthDigest:         "auth:digest",
	KindParamsQuery:        "params:query",
	KindParamsPath:         "params:path",
	KindHeaders:            "headers",
	KindVars:               "vars",
	KindBody:               "body",
	KindBodyJSON:           "body:json",
	KindBodyText:           "body:text",
	KindBodyXML:            "body:xml",
	KindBodyFormURLEncoded: "body:form-urlencoded",
	KindBodyMultipartForm:  "body:multipart-form",
	KindBodyGraphQL:        "body:graphql",
	KindBodyGraphQLVars:    "body:graphql:vars",
	KindScriptPreRequest:   "script:pre-request",
	KindScriptPostResponse: "script:post-response",
	KindTests:              "tests",
	KindDocs:               "docs",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// ParseKind maps a block header name to its Kind. Names are case-sensitive.
func ParseKind(name string) Kind {
	if k, ok := kindsByName[name]; ok {
		return k
	}
	return KindUnknown
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsMethod reports whether k is one of the HTTP verb blocks.
func (k Kind) IsMethod() bool {
	return k >= KindGet && k <= KindConnect
}
