package category

import (
	"net/http"

	"github.com/bjaus/categories/internal/api"
)

// Tag groups the category operations in the OpenAPI document.
const (
	Tag            = "Sample Project"
	TagDescription = "This is a sample swagger integration"
)

// Register adds the category routes to r.
func Register(r *api.Router, s Store) {
	h := NewHandlers(s)

	api.Get(r, "/category", h.List,
		api.WithOperationID("listCategories"),
		api.WithSummary("List categories"),
		api.WithDescription("Returns the current full set of categories."),
		api.WithResponseDescription("All categories"),
		api.WithErrors(http.StatusNotFound),
		api.WithTags(Tag),
	)

	api.Post(r, "/category", h.Create,
		api.WithOperationID("createCategory"),
		api.WithSummary("Create a category"),
		api.WithDescription("Accepts a candidate category, assigns its ID and returns the stored record. Any id in the body is ignored."),
		api.WithResponseDescription("The stored category"),
		api.WithErrors(http.StatusBadRequest, http.StatusNotFound, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType),
		api.WithTags(Tag),
	)

	api.Delete(r, "/category/{id}", h.Delete,
		api.WithOperationID("deleteCategory"),
		api.WithSummary("Delete a category"),
		api.WithDescription("Deletes the category with the given ID and reports whether it was found."),
		api.WithResponseDescription("Category deleted"),
		api.WithResponse(http.StatusNotFound, "Category not found"),
		api.WithErrors(http.StatusBadRequest),
		api.WithTags(Tag),
	)
}
