package api

import (
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// OpenAPISpec is the top-level OpenAPI 3.1 document.
type OpenAPISpec struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       OpenAPIInfo         `json:"info" yaml:"info"`
	Tags       []Tag               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components *Components         `json:"components,omitempty" yaml:"components,omitempty"`
}

// OpenAPIInfo holds API metadata.
type OpenAPIInfo struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Tag groups operations in the document.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Components holds reusable schema definitions.
type Components struct {
	Schemas map[string]JSONSchema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]Operation

// Operation describes a single API operation on a path.
type Operation struct {
	Summary     string        `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	OperationID string        `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []Parameter   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody  `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   OperationResp `json:"responses" yaml:"responses"`
	Deprecated  bool          `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Name        string     `json:"name" yaml:"name"`
	In          string     `json:"in" yaml:"in"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool       `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      JSONSchema `json:"schema" yaml:"schema"`
}

// RequestBody describes the request body.
type RequestBody struct {
	Required bool                `json:"required" yaml:"required"`
	Content  map[string]MediaObj `json:"content" yaml:"content"`
}

// MediaObj is a media type object with an optional schema.
type MediaObj struct {
	Schema *JSONSchema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// OperationResp maps HTTP status codes to response objects.
type OperationResp map[string]ResponseObj

// ResponseObj describes a single response.
type ResponseObj struct {
	Description string              `json:"description" yaml:"description"`
	Content     map[string]MediaObj `json:"content,omitempty" yaml:"content,omitempty"`
}

const (
	contentJSON    = "application/json"
	contentProblem = "application/problem+json"
)

// Spec returns the OpenAPI 3.1 document for the registered routes. It is
// generated on the first call and the same document is returned afterwards.
func (r *Router) Spec() OpenAPISpec {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.specLocked()
}

func (r *Router) specLocked() OpenAPISpec {
	if r.spec == nil {
		spec := r.buildSpec()
		r.spec = &spec
	}
	return *r.spec
}

// buildSpec projects the route table into a document.
func (r *Router) buildSpec() OpenAPISpec {
	schemas := newSchemaRegistry()

	spec := OpenAPISpec{
		OpenAPI: "3.1.0",
		Info: OpenAPIInfo{
			Title:       r.title,
			Description: r.desc,
			Version:     r.version,
		},
		Tags:  slices.Clone(r.tags),
		Paths: make(map[string]PathItem),
	}

	for i := range r.routes {
		ri := &r.routes[i]
		path := toOpenAPIPath(ri.pattern)

		if spec.Paths[path] == nil {
			spec.Paths[path] = make(PathItem)
		}
		spec.Paths[path][strings.ToLower(ri.method)] = buildOperation(ri, schemas)
	}

	if len(schemas.defs) > 0 {
		spec.Components = &Components{Schemas: schemas.defs}
	}

	return spec
}

// buildOperation creates an Operation from a routeInfo.
func buildOperation(ri *routeInfo, schemas *schemaRegistry) Operation {
	op := Operation{
		Summary:     ri.summary,
		Description: ri.desc,
		Tags:        ri.tags,
		OperationID: ri.operationID,
		Deprecated:  ri.deprecated,
		Responses:   make(OperationResp),
	}
	if op.OperationID == "" {
		op.OperationID = generateOperationID(ri.method, ri.pattern)
	}

	if ri.reqType != reflect.TypeFor[Void]() {
		op.Parameters = extractParameters(ri.reqType, schemas)
		op.RequestBody = extractRequestBody(ri.reqType, schemas)
	}

	if ri.respType == reflect.TypeFor[Void]() {
		desc := ri.statusDesc
		if desc == "" {
			desc = "No content"
		}
		op.Responses[statusToString(ri.status)] = ResponseObj{Description: desc}
	} else {
		respSchema := schemas.typeToSchema(ri.respType)
		content := map[string]MediaObj{contentJSON: {Schema: &respSchema}}

		desc := ri.statusDesc
		if desc == "" {
			desc = "Successful response"
		}
		op.Responses[statusToString(ri.status)] = ResponseObj{Description: desc, Content: content}

		for _, alt := range ri.responses {
			op.Responses[statusToString(alt.status)] = ResponseObj{Description: alt.desc, Content: content}
		}
	}

	if len(ri.errors) > 0 {
		problem := schemas.typeToSchema(reflect.TypeFor[ProblemDetail]())
		for _, code := range ri.errors {
			op.Responses[statusToString(code)] = ResponseObj{
				Description: http.StatusText(code),
				Content:     map[string]MediaObj{contentProblem: {Schema: &problem}},
			}
		}
	}

	return op
}

// extractParameters builds OpenAPI parameters from param-tagged fields.
func extractParameters(t reflect.Type, schemas *schemaRegistry) []Parameter {
	t = structType(t)
	if t == nil {
		return nil
	}

	var params []Parameter
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		for _, tagName := range paramTags {
			val := f.Tag.Get(tagName)
			if val == "" {
				continue
			}

			p := Parameter{
				Name:        val,
				In:          tagName,
				Description: f.Tag.Get("doc"),
				Schema:      schemas.typeToSchema(f.Type),
				Required:    tagName == "path" || f.Tag.Get("required") == "true",
			}
			params = append(params, p)
		}
	}

	return params
}

// extractRequestBody builds an OpenAPI RequestBody if the request type has a body.
func extractRequestBody(t reflect.Type, schemas *schemaRegistry) *RequestBody {
	var bodyType reflect.Type
	switch classifyRequest(t) {
	case shapeMixed:
		f, _ := structType(t).FieldByName("Body")
		bodyType = f.Type
	case shapeBodyOnly:
		bodyType = t
	case shapeVoid, shapeParams:
		return nil
	}

	schema := schemas.typeToSchema(bodyType)
	return &RequestBody{
		Required: true,
		Content:  map[string]MediaObj{contentJSON: {Schema: &schema}},
	}
}

// toOpenAPIPath converts a ServeMux pattern like "/users/{id}" or
// "/files/{path...}" to an OpenAPI path.
func toOpenAPIPath(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "{$}", "")
	return strings.ReplaceAll(pattern, "...", "")
}

// generateOperationID derives an operationId such as "deleteCategoryById"
// from a method and pattern.
func generateOperationID(method, pattern string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for seg := range strings.SplitSeq(toOpenAPIPath(pattern), "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			b.WriteString("By")
			seg = strings.Trim(seg, "{}")
		}
		for word := range strings.FieldsFuncSeq(seg, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			rs := []rune(word)
			rs[0] = unicode.ToUpper(rs[0])
			b.WriteString(string(rs))
		}
	}
	return b.String()
}

// statusToString converts an HTTP status code to its string representation.
func statusToString(code int) string {
	return strconv.Itoa(code)
}
