// Package server assembles the categories HTTP service: the api.Router with
// its middleware, the category routes, the OpenAPI document, Swagger UI and
// the Prometheus endpoint.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bjaus/categories/internal/api"
	"github.com/bjaus/categories/internal/category"
	"github.com/bjaus/categories/internal/config"
)

// Title is the API title published in the OpenAPI document.
const Title = "Categories API"

// Version is the API version published in the OpenAPI document. It is
// overridden at build time with -ldflags "-X .../internal/server.Version=...".
var Version = "0.1.0"

const metricsNamespace = "categories"

// Server is a configured categories service.
type Server struct {
	cfg    config.Config
	logger *slog.Logger
	router *api.Router
}

// New wires the router for cfg on top of store.
func New(cfg config.Config, logger *slog.Logger, store category.Store) *Server {
	r := api.New(
		api.WithTitle(Title),
		api.WithVersion(Version),
		api.WithAPIDescription("Minimal CRUD service over video categories."),
		api.WithTag(category.Tag, category.TagDescription),
	)

	r.Use(api.RequestID())
	r.Use(api.Recovery(logger))
	r.Use(api.Logger(logger))
	if cfg.Server.Compress {
		r.Use(api.Compress(api.CompressConfig{}))
	}
	if cfg.Security.Headers {
		r.Use(api.Secure(api.SecureConfig{HSTSMaxAge: cfg.Security.HSTSMaxAge}))
	}
	if cfg.CORS.Enabled {
		r.Use(api.CORS(api.CORSConfig{
			AllowOrigins: cfg.CORS.AllowedOrigins,
			MaxAge:       cfg.CORS.MaxAge,
		}))
	}
	if cfg.Server.MaxBodyBytes > 0 {
		r.Use(api.BodyLimit(cfg.Server.MaxBodyBytes))
	}
	r.Use(api.Timeout(cfg.Server.RequestTimeout))
	if cfg.RateLimit.Enabled {
		r.Use(api.RateLimit(api.RateLimitConfig{
			Rate:  cfg.RateLimit.Rate,
			Burst: cfg.RateLimit.Burst,
		}))
	}
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		r.Use(api.Metrics(api.MetricsConfig{Registerer: registry, Namespace: metricsNamespace}))
		r.Handle("GET "+cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	category.Register(r, store)

	r.ServeSpec(cfg.Docs.SpecPath)
	r.ServeSpecYAML(cfg.Docs.YAMLPath)
	r.ServeDocs(cfg.Docs.UIPath,
		api.WithDocsTitle(Title),
		api.WithDocsSpecURL(cfg.Docs.SpecPath),
	)
	if cfg.Debug.Pprof {
		r.ServePprof(cfg.Debug.PprofPath)
	}

	return &Server{cfg: cfg, logger: logger, router: r}
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying router, e.g. to write the OpenAPI document.
func (s *Server) Router() *api.Router {
	return s.router
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.InfoContext(ctx, "starting server",
		"addr", ln.Addr().String(),
		"spec", s.cfg.Docs.SpecPath,
		"docs", s.cfg.Docs.UIPath,
	)

	err := s.router.Serve(ctx, ln, api.ServerConfig{
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout,
		ShutdownTimeout:   s.cfg.Server.ShutdownTimeout,
	})

	s.logger.InfoContext(ctx, "server stopped")
	return err
}
