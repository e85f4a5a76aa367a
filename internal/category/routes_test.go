package category_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/categories/internal/api"
	"github.com/bjaus/categories/internal/api/apitest"
	"github.com/bjaus/categories/internal/category"
)

func newClient(t *testing.T) *apitest.Client {
	t.Helper()

	r := api.New()
	category.Register(r, category.DemoStore{})
	return apitest.NewClient(t, r)
}

func TestRoutes_list(t *testing.T) {
	t.Parallel()

	c := newClient(t)

	resp := apitest.Get[[]category.Category](t, c, "/category")

	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "application/json", resp.Headers.Get("Content-Type"))
	assert.JSONEq(t, `[
		{"id":1,"name":"Category 1","url":"video.url","icon":"fontawesome video icon"},
		{"id":2,"name":"Category 2","url":"video.url","icon":"fontawesome video icon"}
	]`, string(resp.Bytes))
}

func TestRoutes_create(t *testing.T) {
	t.Parallel()

	c := newClient(t)

	tests := map[string]struct {
		body string
		want string
	}{
		"full body": {
			body: `{"id":99,"name":"Music","url":"music.url","icon":"fa-music"}`,
			want: `{"id":3,"name":"Music","url":"music.url","icon":"fa-music"}`,
		},
		"empty strings kept": {
			body: `{"id":0,"name":"","url":"","icon":""}`,
			want: `{"id":3,"name":"","url":"","icon":""}`,
		},
		"unknown fields ignored": {
			body: `{"id":7,"name":"n","url":"u","icon":"i","color":"red"}`,
			want: `{"id":3,"name":"n","url":"u","icon":"i"}`,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resp := apitest.Send[category.Category](t, c, http.MethodPost, "/category", []byte(tc.body),
				http.Header{"Content-Type": {"application/json"}})

			require.Equal(t, http.StatusOK, resp.Status)
			assert.JSONEq(t, tc.want, string(resp.Bytes))
		})
	}
}

func TestRoutes_create_typed(t *testing.T) {
	t.Parallel()

	c := newClient(t)

	in := &category.Category{ID: 1, Name: "Sports", URL: "sports.url", Icon: "fa-ball"}
	resp := apitest.Post[category.Category, category.Category](t, c, "/category", in)

	require.Equal(t, http.StatusOK, resp.Status)
	require.NotNil(t, resp.Body)
	assert.Equal(t, category.Category{ID: 3, Name: "Sports", URL: "sports.url", Icon: "fa-ball"}, *resp.Body)
}

func TestRoutes_create_rejects_bad_bodies(t *testing.T) {
	t.Parallel()

	c := newClient(t)

	tests := map[string]struct {
		body        string
		contentType string
		wantStatus  int
	}{
		"malformed":         {body: `{"name":`, contentType: "application/json", wantStatus: http.StatusBadRequest},
		"wrong type":        {body: `{"id":"three","name":"n","url":"u","icon":"i"}`, contentType: "application/json", wantStatus: http.StatusBadRequest},
		"negative id":       {body: `{"id":-1,"name":"n","url":"u","icon":"i"}`, contentType: "application/json", wantStatus: http.StatusBadRequest},
		"empty":             {body: ``, contentType: "application/json", wantStatus: http.StatusBadRequest},
		"plain text":        {body: `name=x`, contentType: "text/plain", wantStatus: http.StatusUnsupportedMediaType},
		"scalar payload":    {body: `"Music"`, contentType: "application/json", wantStatus: http.StatusBadRequest},
		"null body":         {body: `null`, contentType: "application/json", wantStatus: http.StatusBadRequest},
		"missing fields":    {body: `{"name":"Only name"}`, contentType: "application/json", wantStatus: http.StatusBadRequest},
		"id omitted":        {body: `{"name":"n","url":"u","icon":"i"}`, contentType: "application/json", wantStatus: http.StatusBadRequest},
		"null field":        {body: `{"id":1,"name":null,"url":"u","icon":"i"}`, contentType: "application/json", wantStatus: http.StatusBadRequest},
		"trailing garbage":  {body: `{"id":1,"name":"a","url":"u","icon":"i"} trailing-garbage`, contentType: "application/json", wantStatus: http.StatusBadRequest},
		"second value":      {body: `{"id":1,"name":"a","url":"u","icon":"i"}{"x":1}`, contentType: "application/json", wantStatus: http.StatusBadRequest},
		"yaml missing icon": {body: "id: 1\nname: a\nurl: u\n", contentType: "application/yaml", wantStatus: http.StatusBadRequest},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resp := apitest.Send[api.ProblemDetail](t, c, http.MethodPost, "/category", []byte(tc.body),
				http.Header{"Content-Type": {tc.contentType}})

			assert.Equal(t, tc.wantStatus, resp.Status)
			assert.Equal(t, "application/problem+json", resp.Headers.Get("Content-Type"))
			require.NotNil(t, resp.Body)
			assert.Equal(t, tc.wantStatus, resp.Body.Status)
		})
	}
}

func TestRoutes_delete(t *testing.T) {
	t.Parallel()

	c := newClient(t)

	tests := map[string]struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		"deletable":        {path: "/category/8081", wantStatus: http.StatusOK, wantBody: "true\n"},
		"listed id":        {path: "/category/1", wantStatus: http.StatusNotFound, wantBody: "false\n"},
		"created id":       {path: "/category/3", wantStatus: http.StatusNotFound, wantBody: "false\n"},
		"zero":             {path: "/category/0", wantStatus: http.StatusNotFound, wantBody: "false\n"},
		"leading zeros":    {path: "/category/008081", wantStatus: http.StatusOK, wantBody: "true\n"},
		"largest unsigned": {path: "/category/18446744073709551615", wantStatus: http.StatusNotFound, wantBody: "false\n"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resp := apitest.Delete[bool](t, c, tc.path)

			assert.Equal(t, tc.wantStatus, resp.Status)
			assert.Equal(t, "application/json", resp.Headers.Get("Content-Type"))
			assert.Equal(t, tc.wantBody, string(resp.Bytes))
		})
	}
}

func TestRoutes_delete_is_idempotent(t *testing.T) {
	t.Parallel()

	c := newClient(t)

	for range 3 {
		resp := apitest.Delete[bool](t, c, "/category/8081")
		require.Equal(t, http.StatusOK, resp.Status)
		require.NotNil(t, resp.Body)
		assert.True(t, *resp.Body)
	}
}

func TestRoutes_delete_rejects_bad_ids(t *testing.T) {
	t.Parallel()

	c := newClient(t)

	for _, path := range []string{
		"/category/not-a-number",
		"/category/-1",
		"/category/18446744073709551616",
		"/category/1.0",
	} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			resp := apitest.Delete[api.ProblemDetail](t, c, path)

			assert.Equal(t, http.StatusBadRequest, resp.Status)
			assert.NotEqual(t, "true\n", string(resp.Bytes))
			assert.NotEqual(t, "false\n", string(resp.Bytes))
		})
	}
}

func TestRoutes_unmatched(t *testing.T) {
	t.Parallel()

	c := newClient(t)

	tests := map[string]struct {
		method     string
		path       string
		wantStatus int
	}{
		"unknown path":       {method: http.MethodGet, path: "/nonexistent", wantStatus: http.StatusNotFound},
		"plural":             {method: http.MethodGet, path: "/categories", wantStatus: http.StatusNotFound},
		"put collection":     {method: http.MethodPut, path: "/category", wantStatus: http.StatusMethodNotAllowed},
		"get item":           {method: http.MethodGet, path: "/category/1", wantStatus: http.StatusMethodNotAllowed},
		"delete collection":  {method: http.MethodDelete, path: "/category", wantStatus: http.StatusMethodNotAllowed},
		"delete nested path": {method: http.MethodDelete, path: "/category/1/2", wantStatus: http.StatusNotFound},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resp := apitest.Send[any](t, c, tc.method, tc.path, nil, nil)
			assert.Equal(t, tc.wantStatus, resp.Status)
		})
	}
}

func TestRoutes_yaml_negotiation(t *testing.T) {
	t.Parallel()

	c := newClient(t)

	resp := apitest.Send[any](t, c, http.MethodGet, "/category", nil, http.Header{"Accept": {"application/yaml"}})

	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "application/yaml", resp.Headers.Get("Content-Type"))
	assert.Contains(t, string(resp.Bytes), "name: Category 1")
}

func TestRegister_document(t *testing.T) {
	t.Parallel()

	r := api.New(api.WithTag(category.Tag, category.TagDescription))
	assert.Equal(t, "Sample Project", category.Tag)
	category.Register(r, category.DemoStore{})
	spec := r.Spec()

	require.Len(t, spec.Paths, 2)
	require.Len(t, spec.Paths["/category"], 2)
	require.Len(t, spec.Paths["/category/{id}"], 1)

	list := spec.Paths["/category"]["get"]
	assert.Equal(t, "listCategories", list.OperationID)
	assert.Equal(t, []string{category.Tag}, list.Tags)
	assert.Nil(t, list.RequestBody)
	require.Len(t, list.Responses, 2)
	assert.Equal(t, "#/components/schemas/ProblemDetail", list.Responses["404"].Content["application/problem+json"].Schema.Ref)
	listSchema := list.Responses["200"].Content["application/json"].Schema
	assert.Equal(t, "array", listSchema.Type)
	assert.Equal(t, "#/components/schemas/Category", listSchema.Items.Ref)

	create := spec.Paths["/category"]["post"]
	assert.Equal(t, "createCategory", create.OperationID)
	require.NotNil(t, create.RequestBody)
	assert.Equal(t, "#/components/schemas/Category", create.RequestBody.Content["application/json"].Schema.Ref)
	assert.Equal(t, "#/components/schemas/Category", create.Responses["200"].Content["application/json"].Schema.Ref)
	for _, code := range []string{"400", "404", "413", "415"} {
		assert.Contains(t, create.Responses, code)
	}

	del := spec.Paths["/category/{id}"]["delete"]
	assert.Equal(t, "deleteCategory", del.OperationID)
	require.Len(t, del.Parameters, 1)
	assert.Equal(t, "id", del.Parameters[0].Name)
	assert.Equal(t, "path", del.Parameters[0].In)
	assert.True(t, del.Parameters[0].Required)
	assert.Equal(t, "integer", del.Parameters[0].Schema.Type)
	assert.Equal(t, "Category deleted", del.Responses["200"].Description)
	assert.Equal(t, "Category not found", del.Responses["404"].Description)
	assert.Equal(t, "boolean", del.Responses["200"].Content["application/json"].Schema.Type)
	assert.Equal(t, "boolean", del.Responses["404"].Content["application/json"].Schema.Type)

	cat := spec.Components.Schemas["Category"]
	assert.Equal(t, "object", cat.Type)
	assert.Len(t, cat.Properties, 4)
	assert.Equal(t, []string{"id", "name", "url", "icon"}, cat.Required)
	assert.Equal(t, "integer", cat.Properties["id"].Type)
	for _, field := range []string{"name", "url", "icon"} {
		assert.Equal(t, "string", cat.Properties[field].Type, field)
	}
}
