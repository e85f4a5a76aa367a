package api

import (
	"net/http/pprof"
	"strings"
)

// ServePprof exposes the runtime profiler under prefix (default
// "/debug/pprof"). Like ServeSpec, the endpoints stay out of the document.
func (r *Router) ServePprof(prefix string) {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		prefix = "/debug/pprof"
	}

	r.mux.HandleFunc("GET "+prefix+"/{$}", pprof.Index)
	r.mux.HandleFunc("GET "+prefix+"/cmdline", pprof.Cmdline)
	r.mux.HandleFunc("GET "+prefix+"/profile", pprof.Profile)
	r.mux.HandleFunc("GET "+prefix+"/symbol", pprof.Symbol)
	r.mux.HandleFunc("GET "+prefix+"/trace", pprof.Trace)
	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		r.mux.Handle("GET "+prefix+"/"+name, pprof.Handler(name))
	}
}
