package http

import (
	"html/template"

	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/realtime"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/internal/utils"
)

type Handler struct {
	services *service.Services
	streamer *realtime.Streamer

	// verifyHash enables the HashSHA256 body check.
	verifyHash bool
	page       *template.Template

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. streamer may be nil, in which case
// the share WebSocket endpoint answers 404.
func NewHandler(services *service.Services, streamer *realtime.Streamer, cfg config.App, logger *logger.Logger) *Handler {
	if cfg.HashKey != "" {
		utils.InitHasherPool(cfg.HashKey)
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		streamer:   streamer,
		verifyHash: cfg.HashKey != "",
		page:       sharePageTemplate,
		logger:     logger,
	}
}
