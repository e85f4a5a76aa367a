package category

import "context"

// Store is the persistence capability the handlers depend on.
type Store interface {
	// List returns every category in display order.
	List(ctx context.Context) ([]Category, error)
	// Create stores c under a store-assigned ID and returns the stored record.
	Create(ctx context.Context, c Category) (Category, error)
	// Delete removes the category with the given ID and reports whether it existed.
	Delete(ctx context.Context, id uint64) (bool, error)
}

const (
	// DemoCreatedID is the ID DemoStore assigns to every created category.
	DemoCreatedID uint64 = 3
	// DemoDeletableID is the only ID DemoStore reports as deleted.
	DemoDeletableID uint64 = 8081
)

// DemoStore is a stateless stand-in for a real store. It serves fixed data,
// persists nothing, and is safe for concurrent use.
type DemoStore struct{}

var _ Store = DemoStore{}

// List returns the two sample categories.
func (DemoStore) List(context.Context) ([]Category, error) {
	return []Category{
		{ID: 1, Name: "Category 1", URL: "video.url", Icon: "fontawesome video icon"},
		{ID: 2, Name: "Category 2", URL: "video.url", Icon: "fontawesome video icon"},
	}, nil
}

// Create echoes c back with its ID set to DemoCreatedID.
func (DemoStore) Create(_ context.Context, c Category) (Category, error) {
	c.ID = DemoCreatedID
	return c, nil
}

// Delete reports true only for DemoDeletableID.
func (DemoStore) Delete(_ context.Context, id uint64) (bool, error) {
	return id == DemoDeletableID, nil
}
