package http

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func buildRouter() *chi.Mux {
	router := chi.NewRouter()
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	router.Get("/api/notes/", ok)
	router.Post("/api/notes/", ok)
	router.Put("/api/notes/{id}", ok)
	router.MethodNotAllowed(CheckHTTPMethod(router))
	return router
}

func TestCheckHTTPMethod(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		method, path string
		wantStatus   int
	}{
		{http.MethodGet, "/api/notes/", http.StatusOK},
		{http.MethodPost, "/api/notes/", http.StatusOK},
		{http.MethodPut, "/api/notes/abc", http.StatusOK},
		{http.MethodDelete, "/api/notes/", http.StatusNotFound},
		{http.MethodGet, "/api/notes/abc", http.StatusNotFound},
		{http.MethodPatch, "/api/notes/abc", http.StatusNotFound},
		{http.MethodGet, "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doRequest(router, tt.method, tt.path, "", nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
