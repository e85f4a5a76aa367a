package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/categories/internal/api"
)

func TestRegister_all_methods(t *testing.T) {
	t.Parallel()

	type Resp struct {
		Method string `json:"method"`
	}

	handler := func(method string) api.Handler[api.Void, Resp] {
		return func(_ context.Context, _ *api.Void) (*Resp, error) {
			return &Resp{Method: method}, nil
		}
	}

	tests := map[string]struct {
		register func(r *api.Router)
		method   string
	}{
		"GET": {
			register: func(r *api.Router) { api.Get(r, "/test", handler(http.MethodGet)) },
			method:   http.MethodGet,
		},
		"POST": {
			register: func(r *api.Router) { api.Post(r, "/test", handler(http.MethodPost)) },
			method:   http.MethodPost,
		},
		"DELETE": {
			register: func(r *api.Router) { api.Delete(r, "/test", handler(http.MethodDelete)) },
			method:   http.MethodDelete,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := api.New()
			tc.register(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, "/test", nil))

			assert.Equal(t, http.StatusOK, rec.Code)

			var body Resp
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.method, body.Method)
		})
	}
}

func TestRegister_WithStatus(t *testing.T) {
	t.Parallel()

	type Resp struct {
		ID string `json:"id"`
	}

	r := api.New()
	api.Post(r, "/items", func(_ context.Context, _ *api.Void) (*Resp, error) {
		return &Resp{ID: "123"}, nil
	}, api.WithStatus(http.StatusCreated))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegister_Void_response_204(t *testing.T) {
	t.Parallel()

	r := api.New()
	api.Delete(r, "/items/{id}", func(_ context.Context, _ *api.Void) (*api.Void, error) {
		return &api.Void{}, nil
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/items/123", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

type outcome bool

func (o outcome) StatusCode() int {
	if o {
		return http.StatusOK
	}
	return http.StatusNotFound
}

func TestRegister_StatusCoder_response(t *testing.T) {
	t.Parallel()

	type Req struct {
		Found bool `query:"found"`
	}

	r := api.New()
	api.Get(r, "/lookup", func(_ context.Context, req *Req) (*outcome, error) {
		o := outcome(req.Found)
		return &o, nil
	})

	tests := map[string]struct {
		query      string
		wantStatus int
		wantBody   string
	}{
		"found":     {query: "?found=true", wantStatus: http.StatusOK, wantBody: "true\n"},
		"not found": {query: "?found=false", wantStatus: http.StatusNotFound, wantBody: "false\n"},
		"default":   {query: "", wantStatus: http.StatusNotFound, wantBody: "false\n"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lookup"+tc.query, nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tc.wantBody, rec.Body.String())
		})
	}
}
