package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Health(t *testing.T) {
	rec := get(NewHandler(false, Routes{}), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestHandler_MetricsToggle(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(NewHandler(false, Routes{}), "/metrics").Code)

	rec := get(NewHandler(true, Routes{}), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestHandler_MountsAPI(t *testing.T) {
	api := chi.NewRouter()
	api.Get("/products", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("products"))
	})
	h := NewHandler(false, Routes{API: api})

	rec := get(h, "/api/products")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "products", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get(h, "/api/unknown").Code)
}
