package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Configuration(t *testing.T) {
	c := NewHTTPClient("http://localhost:8080", 5*time.Second)
	require.NotNil(t, c)
	require.NotNil(t, c.Client)

	assert.Equal(t, "http://localhost:8080", c.BaseURL)
	assert.Equal(t, 5*time.Second, c.GetClient().Timeout)
}

func TestNewHTTPClient_Independence(t *testing.T) {
	a := NewHTTPClient("http://a", 0)
	b := NewHTTPClient("http://b", 0)
	assert.NotSame(t, a.Client, b.Client)
}

func TestHTTPClient_RequestsUseBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ping", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(srv.URL, time.Second).R().Get("/api/ping")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}
