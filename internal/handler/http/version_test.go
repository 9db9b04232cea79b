package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-notes/internal/service"
)

func TestGetServerVersion(t *testing.T) {
	router := newTestHandler(&service.Services{AppInfoService: &mockAppInfoService{version: "v1.2.3"}}).Init()

	rec := doRequest(router, http.MethodGet, "/api/version/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "v1.2.3", rec.Body.String())
}

func TestGetServerInfo(t *testing.T) {
	router := newTestHandler(&service.Services{AppInfoService: &mockAppInfoService{version: "v1.2.3"}}).Init()

	rec := doRequest(router, http.MethodGet, "/api/info", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"v1.2.3","max_title_runes":500,"max_content_bytes":1048576}`, rec.Body.String())
}

func TestPing(t *testing.T) {
	tests := []struct {
		name       string
		pinger     *mockPinger
		wantStatus int
	}{
		{name: "no database", wantStatus: http.StatusOK},
		{name: "healthy", pinger: &mockPinger{}, wantStatus: http.StatusOK},
		{name: "unreachable", pinger: &mockPinger{err: errors.New("dial tcp")}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := &service.Services{}
			if tt.pinger != nil {
				svcs.Pinger = tt.pinger
			}
			router := newTestHandler(svcs).Init()

			rec := doRequest(router, http.MethodGet, "/api/ping", "", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
