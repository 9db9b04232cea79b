// Package grpc exposes the operational gRPC surface of the server: the
// standard grpc.health.v1 service backed by the database ping.
package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/service"
)

// ServiceName is the health service entry that tracks note storage.
const ServiceName = "notes"

const traceIDKey = "x-trace-id"

type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
}

// Register installs the health service on s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// RefreshHealth pings the database and publishes the result for both the
// overall server and ServiceName.
func (h *Handler) RefreshHealth(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if h.services != nil && h.services.Pinger != nil {
		if err := h.services.Pinger.PingContext(ctx); err != nil {
			h.logger.Warn().Err(err).Str("func", "*Handler.RefreshHealth").Msg("database is unreachable")
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	h.health.SetServingStatus("", st)
	h.health.SetServingStatus(ServiceName, st)
	return st
}

// WatchHealth refreshes the health status every interval until ctx is done.
func (h *Handler) WatchHealth(ctx context.Context, interval time.Duration) {
	h.RefreshHealth(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.RefreshHealth(ctx)
		}
	}
}

// Shutdown marks every service as not serving so that watchers drain.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// UnaryLogging attaches a trace-scoped logger to the call context and writes
// one access log line per call, the way the HTTP middleware does.
func (h *Handler) UnaryLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	traceID := uuid.NewString()
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(traceIDKey); len(v) > 0 && v[0] != "" {
			traceID = v[0]
		}
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})

	start := time.Now()
	resp, err := next(l.WithContext(ctx), req)

	l.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}
