package api

import (
	"errors"
	"net/http"
	"reflect"
)

// register is the internal generic registration function.
func register[Req, Resp any](r *Router, method, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	ri := routeInfo{
		method:   method,
		pattern:  pattern,
		reqType:  reflect.TypeFor[Req](),
		respType: reflect.TypeFor[Resp](),
	}

	for _, opt := range opts {
		opt(&ri)
	}

	// Void response → 204, otherwise 200.
	if ri.status == 0 {
		if ri.respType == reflect.TypeFor[Void]() {
			ri.status = http.StatusNoContent
		} else {
			ri.status = http.StatusOK
		}
	}

	ri.handler = buildHandler(h, ri.status, r.codecs, r.errorHandler)

	r.addRoute(ri)
}

// buildHandler wraps a typed Handler into an http.Handler.
func buildHandler[Req, Resp any](h Handler[Req, Resp], defaultStatus int, codecs *codecRegistry, errHandler ErrorHandler) http.Handler {
	writeErr := func(w http.ResponseWriter, r *http.Request, err error) {
		if errHandler != nil {
			errHandler(w, r, err)
			return
		}
		writeErrorResponse(w, err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRequest[Req](r, codecs)
		if err != nil {
			writeErr(w, r, Error(bindErrorStatus(err), err.Error()))
			return
		}

		resp, err := h(r.Context(), req)
		if err != nil {
			writeErr(w, r, err)
			return
		}

		if _, ok := any(resp).(*Void); ok || resp == nil {
			w.WriteHeader(defaultStatus)
			return
		}

		encodeResponse(w, r, resp, defaultStatus, codecs)
	})
}

// bindErrorStatus maps a request binding failure to its status code.
func bindErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}

// Get registers a GET handler.
func Get[Req, Resp any](r *Router, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(r, http.MethodGet, pattern, h, opts...)
}

// Post registers a POST handler.
func Post[Req, Resp any](r *Router, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(r, http.MethodPost, pattern, h, opts...)
}

// Delete registers a DELETE handler.
func Delete[Req, Resp any](r *Router, pattern string, h Handler[Req, Resp], opts ...RouteOption) {
	register(r, http.MethodDelete, pattern, h, opts...)
}
