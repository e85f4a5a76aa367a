package api

import (
	"net/http"
	"reflect"
)

// routeInfo holds metadata for a registered route, used for both
// request dispatch and OpenAPI generation.
type routeInfo struct {
	method  string
	pattern string
	summary string
	desc    string
	tags    []string

	status     int
	statusDesc string
	responses  []responseInfo
	errors     []int
	deprecated bool

	operationID string

	reqType  reflect.Type
	respType reflect.Type

	handler http.Handler
}

// responseInfo documents an alternate outcome that carries the route's
// response type, such as a 404 that still returns a body.
type responseInfo struct {
	status int
	desc   string
}

// RouteOption configures a route at registration time.
type RouteOption func(*routeInfo)

// WithStatus sets the default HTTP status code for the response.
func WithStatus(code int) RouteOption {
	return func(ri *routeInfo) {
		ri.status = code
	}
}

// WithSummary sets the OpenAPI summary for the route.
func WithSummary(s string) RouteOption {
	return func(ri *routeInfo) {
		ri.summary = s
	}
}

// WithDescription sets the OpenAPI description for the route.
func WithDescription(d string) RouteOption {
	return func(ri *routeInfo) {
		ri.desc = d
	}
}

// WithTags adds OpenAPI tags to the route.
func WithTags(tags ...string) RouteOption {
	return func(ri *routeInfo) {
		ri.tags = append(ri.tags, tags...)
	}
}

// WithDeprecated marks the route as deprecated in the OpenAPI document.
func WithDeprecated() RouteOption {
	return func(ri *routeInfo) {
		ri.deprecated = true
	}
}

// WithOperationID sets a custom OpenAPI operationId.
func WithOperationID(id string) RouteOption {
	return func(ri *routeInfo) {
		ri.operationID = id
	}
}

// WithResponseDescription sets the description of the default response.
func WithResponseDescription(desc string) RouteOption {
	return func(ri *routeInfo) {
		ri.statusDesc = desc
	}
}

// WithResponse documents an additional status code whose body has the same
// type as the default response. The handler selects it at runtime by
// returning a response that implements StatusCoder.
func WithResponse(code int, desc string) RouteOption {
	return func(ri *routeInfo) {
		ri.responses = append(ri.responses, responseInfo{status: code, desc: desc})
	}
}

// WithErrors declares HTTP error status codes for the OpenAPI document.
// Each is documented with a problem details body.
func WithErrors(codes ...int) RouteOption {
	return func(ri *routeInfo) {
		ri.errors = append(ri.errors, codes...)
	}
}
