package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/categories/internal/api"
)

func TestRouter_ServeHTTP_basic(t *testing.T) {
	t.Parallel()

	type Resp struct {
		Message string `json:"message"`
	}

	r := api.New()
	api.Get(r, "/health", func(_ context.Context, _ *api.Void) (*Resp, error) {
		return &Resp{Message: "ok"}, nil
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"message":"ok"`)
}

func TestRouter_Use_middleware(t *testing.T) {
	t.Parallel()

	r := api.New()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-First", "1")
			next.ServeHTTP(w, req)
		})
	})
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Second", w.Header().Get("X-First")+"2")
			next.ServeHTTP(w, req)
		})
	})

	api.Get(r, "/test", func(_ context.Context, _ *api.Void) (*api.Void, error) {
		return &api.Void{}, nil
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, "1", rec.Header().Get("X-First"))
	assert.Equal(t, "12", rec.Header().Get("X-Second"))
}

func TestRouter_options(t *testing.T) {
	t.Parallel()

	r := api.New(
		api.WithTitle("Test API"),
		api.WithVersion("1.0.0"),
		api.WithAPIDescription("A test API"),
		api.WithTag("b", "second"),
		api.WithTag("a", "first"),
	)

	spec := r.Spec()
	assert.Equal(t, "Test API", spec.Info.Title)
	assert.Equal(t, "1.0.0", spec.Info.Version)
	assert.Equal(t, "A test API", spec.Info.Description)
	assert.Equal(t, []api.Tag{{Name: "b", Description: "second"}, {Name: "a", Description: "first"}}, spec.Tags)
}

func TestRouter_error_response(t *testing.T) {
	t.Parallel()

	r := api.New()
	api.Get(r, "/fail", func(_ context.Context, _ *api.Void) (*api.Void, error) {
		return nil, api.Error(http.StatusUnprocessableEntity, "bad data")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body api.ProblemDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusUnprocessableEntity, body.Status)
	assert.Equal(t, "bad data", body.Detail)
}

func TestRouter_internal_error_hides_message(t *testing.T) {
	t.Parallel()

	r := api.New()
	api.Get(r, "/boom", func(_ context.Context, _ *api.Void) (*api.Void, error) {
		return nil, io.ErrUnexpectedEOF
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), io.ErrUnexpectedEOF.Error())
}

func TestRouter_WithErrorHandler(t *testing.T) {
	t.Parallel()

	r := api.New(api.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
		w.WriteHeader(api.ErrorStatus(err))
		_, _ = io.WriteString(w, "custom: "+err.Error())
	}))
	api.Get(r, "/fail", func(_ context.Context, _ *api.Void) (*api.Void, error) {
		return nil, api.Error(http.StatusConflict, "taken")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "custom: taken", rec.Body.String())
}

func TestRouter_unmatched_route(t *testing.T) {
	t.Parallel()

	called := false
	r := api.New()
	api.Get(r, "/known", func(_ context.Context, _ *api.Void) (*api.Void, error) {
		called = true
		return &api.Void{}, nil
	})

	tests := map[string]struct {
		method string
		path   string
		want   int
	}{
		"unknown path":           {method: http.MethodGet, path: "/nonexistent", want: http.StatusNotFound},
		"known path bad method":  {method: http.MethodPost, path: "/known", want: http.StatusMethodNotAllowed},
		"known path extra depth": {method: http.MethodGet, path: "/known/1", want: http.StatusNotFound},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.want, rec.Code)
		})
	}

	assert.False(t, called)
}

func TestRouter_Handle_is_not_documented(t *testing.T) {
	t.Parallel()

	r := api.New()
	r.Handle("GET /internal", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, r.Spec().Paths)
}

func TestRouter_register_after_spec_panics(t *testing.T) {
	t.Parallel()

	r := api.New()
	_ = r.Spec()

	assert.Panics(t, func() {
		api.Get(r, "/late", func(_ context.Context, _ *api.Void) (*api.Void, error) {
			return &api.Void{}, nil
		})
	})
}

func TestRouter_Serve_shuts_down_on_cancel(t *testing.T) {
	t.Parallel()

	r := api.New()
	api.Get(r, "/ping", func(_ context.Context, _ *api.Void) (*api.Void, error) {
		return &api.Void{}, nil
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Serve(ctx, ln, api.ServerConfig{ShutdownTimeout: time.Second})
	}()

	require.Eventually(t, func() bool {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+ln.Addr().String()+"/ping", nil)
		if err != nil {
			return false
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestRouter_ListenAndServe_bad_address(t *testing.T) {
	t.Parallel()

	r := api.New()
	err := r.ListenAndServe(context.Background(), "256.0.0.1:bad")
	require.Error(t, err)
}
