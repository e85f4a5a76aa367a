package category

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bjaus/categories/internal/api"
)

// Handlers binds the category operations to a Store.
type Handlers struct {
	store Store
}

// NewHandlers returns handlers backed by s.
func NewHandlers(s Store) *Handlers {
	return &Handlers{store: s}
}

// List returns all categories as a JSON array.
func (h *Handlers) List(ctx context.Context, _ *api.Void) (*[]Category, error) {
	cats, err := h.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if cats == nil {
		cats = []Category{}
	}
	return &cats, nil
}

// Create stores the candidate category and returns it with its assigned ID.
func (h *Handlers) Create(ctx context.Context, req *Category) (*Category, error) {
	c, err := h.store.Create(ctx, *req)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &c, nil
}

// DeleteRequest identifies the category to delete.
type DeleteRequest struct {
	ID uint64 `path:"id" doc:"Category ID to delete"`
}

// Deleted is the delete outcome. It encodes as a bare JSON boolean and
// answers 200 when true, 404 when false.
type Deleted bool

// StatusCode implements api.StatusCoder.
func (d Deleted) StatusCode() int {
	if d {
		return http.StatusOK
	}
	return http.StatusNotFound
}

// Delete removes the category and reports whether it was found.
func (h *Handlers) Delete(ctx context.Context, req *DeleteRequest) (*Deleted, error) {
	ok, err := h.store.Delete(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("delete category %d: %w", req.ID, err)
	}
	d := Deleted(ok)
	return &d, nil
}
