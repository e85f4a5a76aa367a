// Package api is the typed routing layer of the categories service. Handler
// types are the source of truth: path parameters, request bodies and
// responses are Go types, and the router derives binding, encoding and the
// OpenAPI 3.1 document from them.
//
// Handlers never see http.ResponseWriter or *http.Request:
//
//	type Handler[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)
//
// Routes are registered with package-level generic functions. Every
// registration lands in a single route table that both the ServeMux and the
// document generator read, so dispatch and documentation cannot drift apart:
//
//	r := api.New(api.WithTitle("Categories API"), api.WithVersion("1.0.0"))
//	api.Get(r, "/category", listCategories)
//	api.Delete(r, "/category/{id}", deleteCategory, api.WithResponse(http.StatusNotFound, "Not found"))
//
// Request types bind parameters with struct tags:
//
//	type DeleteRequest struct {
//	    ID uint64 `path:"id" doc:"Category ID to delete"`
//	}
//
// A request type without parameter tags is decoded from the body as a whole.
//
// The document is generated once, on first use, and cached:
//
//	r.ServeSpec("/api-doc/openapi.json")
//	r.ServeDocs("/swagger-ui", api.WithDocsSpecURL("/api-doc/openapi.json"))
package api
