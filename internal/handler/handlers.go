package handler

import (
	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/handler/grpc"
	"github.com/MKhiriev/go-notes/internal/handler/http"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/realtime"
	"github.com/MKhiriev/go-notes/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates a transport handler for every configured listen
// address. streamer serves live share link updates over HTTP and may be nil.
func NewHandlers(services *service.Services, streamer *realtime.Streamer, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, streamer, cfg.App, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
