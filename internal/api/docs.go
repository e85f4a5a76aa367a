package api

import (
	"html/template"
	"net/http"
	"strings"

	swaggerFiles "github.com/swaggo/files"
)

// DocsOption configures the docs UI.
type DocsOption func(*docsConfig)

type docsConfig struct {
	title   string
	specURL string
	prefix  string
}

// WithDocsTitle sets the page title for the docs UI.
func WithDocsTitle(title string) DocsOption {
	return func(c *docsConfig) {
		c.title = title
	}
}

// WithDocsSpecURL sets the URL the UI loads the OpenAPI document from.
func WithDocsSpecURL(url string) DocsOption {
	return func(c *docsConfig) {
		c.specURL = url
	}
}

// ServeDocs serves Swagger UI under the given path. The bare path redirects
// to the trailing-slash form, which renders an index page pointing the UI
// at the router's OpenAPI document; everything below it is served from the
// Swagger UI assets bundled by github.com/swaggo/files.
func (r *Router) ServeDocs(path string, opts ...DocsOption) {
	cfg := &docsConfig{
		title:   r.title,
		specURL: "/openapi.json",
		prefix:  strings.TrimSuffix(path, "/"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	tmpl := template.Must(template.New("docs").Parse(docsHTML))
	index := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		//nolint:errcheck,gosec // best-effort template render
		tmpl.Execute(w, cfg)
	}

	r.mux.Handle("GET "+cfg.prefix, http.RedirectHandler(cfg.prefix+"/", http.StatusMovedPermanently))
	r.mux.HandleFunc("GET "+cfg.prefix+"/{$}", index)
	r.mux.HandleFunc("GET "+cfg.prefix+"/index.html", index)
	r.mux.Handle("GET "+cfg.prefix+"/{asset...}", http.StripPrefix(cfg.prefix, swaggerFiles.Handler))
}

const docsHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="{{.Prefix}}/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui" data-spec-url="{{.SpecURL}}"></div>
  <script src="{{.Prefix}}/swagger-ui-bundle.js"></script>
  <script src="{{.Prefix}}/swagger-ui-standalone-preset.js"></script>
  <script>
    window.onload = function () {
      var el = document.getElementById("swagger-ui");
      window.ui = SwaggerUIBundle({
        url: el.dataset.specUrl,
        dom_id: "#swagger-ui",
        deepLinking: true,
        presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
        plugins: [SwaggerUIBundle.plugins.DownloadUrl],
        layout: "StandaloneLayout"
      });
    };
  </script>
</body>
</html>`

// Title returns the docs config title (used in the template).
func (c *docsConfig) Title() string { return c.title }

// SpecURL returns the docs config spec URL (used in the template).
func (c *docsConfig) SpecURL() string { return c.specURL }

// Prefix returns the path the UI assets are served under (used in the template).
func (c *docsConfig) Prefix() string { return c.prefix }
