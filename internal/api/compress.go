package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// CompressConfig configures the Compress middleware.
type CompressConfig struct {
	Level   int      // gzip level (1-9, default: gzip.DefaultCompression)
	MinSize int      // skip responses with a smaller Content-Length (default: 1024)
	Types   []string // content type prefixes to compress (default: JSON, YAML, text/*, JavaScript)
}

// Compress returns middleware that gzip-compresses 200 responses for clients
// that accept it. Responses that already carry a Content-Encoding, such as
// the Prometheus exposition, are left alone.
func Compress(cfg CompressConfig) Middleware {
	if cfg.Level == 0 {
		cfg.Level = gzip.DefaultCompression
	}
	if cfg.MinSize <= 0 {
		cfg.MinSize = 1024
	}
	if len(cfg.Types) == 0 {
		cfg.Types = []string{"application/json", "application/yaml", "application/javascript", "text/"}
	}

	pool := &sync.Pool{
		New: func() any {
			gz, err := gzip.NewWriterLevel(io.Discard, cfg.Level)
			if err != nil {
				gz = gzip.NewWriter(io.Discard)
			}
			return gz
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Encoding")
			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			gw := &gzipResponseWriter{ResponseWriter: w, cfg: &cfg, pool: pool}
			defer gw.close()
			next.ServeHTTP(gw, r)
		})
	}
}

type gzipResponseWriter struct {
	http.ResponseWriter
	cfg     *CompressConfig
	pool    *sync.Pool
	gz      *gzip.Writer
	decided bool
}

func (g *gzipResponseWriter) WriteHeader(code int) {
	g.decide(code)
	g.ResponseWriter.WriteHeader(code)
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
	if !g.decided {
		g.WriteHeader(http.StatusOK)
	}
	if g.gz != nil {
		return g.gz.Write(b)
	}
	return g.ResponseWriter.Write(b)
}

// decide switches to gzip once, just before the header goes out.
func (g *gzipResponseWriter) decide(code int) {
	if g.decided {
		return
	}
	g.decided = true

	h := g.Header()
	if code != http.StatusOK || h.Get("Content-Encoding") != "" || !g.compressible(h.Get("Content-Type")) {
		return
	}
	if n, err := strconv.Atoi(h.Get("Content-Length")); err == nil && n < g.cfg.MinSize {
		return
	}

	gz := g.pool.Get().(*gzip.Writer) //nolint:errcheck,forcetypeassert // pool.New always returns *gzip.Writer
	gz.Reset(g.ResponseWriter)
	g.gz = gz
	h.Set("Content-Encoding", "gzip")
	h.Del("Content-Length")
}

func (g *gzipResponseWriter) compressible(contentType string) bool {
	for _, t := range g.cfg.Types {
		if strings.HasPrefix(contentType, t) {
			return true
		}
	}
	return false
}

func (g *gzipResponseWriter) close() {
	if g.gz == nil {
		return
	}
	//nolint:errcheck,gosec // best-effort flush
	g.gz.Close()
	g.pool.Put(g.gz)
	g.gz = nil
}

// Unwrap returns the underlying ResponseWriter (supports http.ResponseController).
func (g *gzipResponseWriter) Unwrap() http.ResponseWriter {
	return g.ResponseWriter
}
