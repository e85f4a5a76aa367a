// Package category implements the Category resource: its model, the store
// behind it, the typed handlers, and the route table that binds them to an
// api.Router.
package category

// Category is a named link with an icon. ID is assigned by the store and
// never taken from the client.
type Category struct {
	ID   uint64 `json:"id" yaml:"id" required:"true" doc:"Server-assigned identifier"`
	Name string `json:"name" yaml:"name" required:"true" doc:"Human-readable label"`
	URL  string `json:"url" yaml:"url" required:"true" doc:"Associated resource locator"`
	Icon string `json:"icon" yaml:"icon" required:"true" doc:"Icon reference"`
}

// New returns an empty Category.
func New() Category {
	return Category{}
}
