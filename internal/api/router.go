package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// Router is the central type that holds routes, middleware, and configuration.
// It implements http.Handler.
type Router struct {
	mux        *http.ServeMux
	middleware []Middleware
	routes     []routeInfo

	title   string
	version string
	desc    string
	tags    []Tag

	errorHandler ErrorHandler

	codecs *codecRegistry

	// spec and encoded are filled on first use and never change afterwards.
	spec    *OpenAPISpec
	encoded map[specFormat]encodedDoc

	mu sync.Mutex
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithTitle sets the API title (used in the OpenAPI document).
func WithTitle(title string) RouterOption {
	return func(r *Router) {
		r.title = title
	}
}

// WithVersion sets the API version (used in the OpenAPI document).
func WithVersion(version string) RouterOption {
	return func(r *Router) {
		r.version = version
	}
}

// WithAPIDescription sets the API description (used in the OpenAPI document).
func WithAPIDescription(desc string) RouterOption {
	return func(r *Router) {
		r.desc = desc
	}
}

// WithTag declares a top-level tag with a description. Tags appear in the
// document in the order they are declared.
func WithTag(name, description string) RouterOption {
	return func(r *Router) {
		r.tags = append(r.tags, Tag{Name: name, Description: description})
	}
}

// ErrorHandler is a custom error response writer.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// WithErrorHandler sets a custom error handler for the router.
func WithErrorHandler(h ErrorHandler) RouterOption {
	return func(r *Router) {
		r.errorHandler = h
	}
}

// New creates a new Router with the given options.
func New(opts ...RouterOption) *Router {
	r := &Router{
		mux:     http.NewServeMux(),
		codecs:  newCodecRegistry(),
		encoded: make(map[specFormat]encodedDoc),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware to the router. Middleware is applied in the order added.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Handle registers h on the underlying mux without adding it to the OpenAPI
// document. The pattern uses ServeMux syntax, including the method prefix.
func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	match := &routeMatch{}
	req = req.WithContext(context.WithValue(req.Context(), routeMatchKey{}, match))

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() { match.pattern = req.Pattern }()
		r.mux.ServeHTTP(w, req)
	}))
	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}
	handler.ServeHTTP(w, req)
}

type routeMatchKey struct{}

// routeMatch carries the matched pattern out past middleware that replaced
// the *http.Request on the way in.
type routeMatch struct {
	pattern string
}

// RoutePattern returns the ServeMux pattern that matched r, or "" when no
// route matched. Middleware reads it after the next handler returns.
func RoutePattern(r *http.Request) string {
	if m, ok := r.Context().Value(routeMatchKey{}).(*routeMatch); ok && m.pattern != "" {
		return m.pattern
	}
	return r.Pattern
}

// ServerConfig tunes the http.Server started by ListenAndServe.
type ServerConfig struct {
	ReadHeaderTimeout time.Duration // default: 10s
	ShutdownTimeout   time.Duration // default: 30s
}

// ListenAndServe starts an HTTP server on the given address.
// The OpenAPI document is generated before the listener opens.
// It blocks until the context is cancelled, then shuts down gracefully.
func (r *Router) ListenAndServe(ctx context.Context, addr string, cfg ...ServerConfig) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return r.Serve(ctx, ln, cfg...)
}

// Serve is ListenAndServe on an existing listener. The listener is closed
// when Serve returns.
func (r *Router) Serve(ctx context.Context, ln net.Listener, cfg ...ServerConfig) error {
	c := ServerConfig{
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   30 * time.Second,
	}
	if len(cfg) > 0 {
		if cfg[0].ReadHeaderTimeout > 0 {
			c.ReadHeaderTimeout = cfg[0].ReadHeaderTimeout
		}
		if cfg[0].ShutdownTimeout > 0 {
			c.ShutdownTimeout = cfg[0].ShutdownTimeout
		}
	}

	if _, err := r.encodedSpec(formatJSON); err != nil {
		_ = ln.Close()
		return fmt.Errorf("generate openapi document: %w", err)
	}

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: c.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// addRoute registers a routeInfo with the router's mux and stores it
// for OpenAPI generation. Global middleware is applied in ServeHTTP.
func (r *Router) addRoute(ri routeInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.spec != nil {
		panic("api: route " + ri.method + " " + ri.pattern + " registered after the OpenAPI document was generated")
	}

	r.mux.Handle(ri.method+" "+ri.pattern, ri.handler)
	r.routes = append(r.routes, ri)
}
