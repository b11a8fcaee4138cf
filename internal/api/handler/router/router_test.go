package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func tag(name string, order *[]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouter_MiddlewareOrderAndParams(t *testing.T) {
	var order []string
	var id string

	rt := New(WithRoutes(Route{
		Path:   "/v1/accounts/:id",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
			id = httprouter.ParamsFromContext(r.Context()).ByName("id")
		}),
		Middlewares: []func(http.Handler) http.Handler{tag("primeiro", &order), tag("segundo", &order)},
	}))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/accounts/acc1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"primeiro", "segundo", "handler"}, order)
	assert.Equal(t, "acc1", id)
}

func TestRouter_JSONErrors(t *testing.T) {
	rt := New(WithRoutes(Route{
		Path:    "/v1/accounts",
		Method:  http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	}))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantCode   string
	}{
		{name: "rota inexistente", method: http.MethodGet, path: "/v1/nada", wantStatus: http.StatusNotFound, wantCode: "RES_001"},
		{name: "método não suportado", method: http.MethodPut, path: "/v1/accounts", wantStatus: http.StatusMethodNotAllowed, wantCode: "VAL_004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.True(t, strings.Contains(rec.Body.String(), tt.wantCode))
		})
	}
}
