package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

// getServerInfo returns the version and the note limits as JSON.
func (h *Handler) getServerInfo(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetServerInfo(r.Context())
	if _, err := utils.WriteJSON(w, info, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getServerInfo").Msg("failed to write server info")
	}
}

// ping reports whether the database is reachable.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if h.services.Pinger != nil {
		if err := h.services.Pinger.PingContext(r.Context()); err != nil {
			logger.FromRequest(r).Err(err).Str("func", "*Handler.ping").Msg("database is unreachable")
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}
