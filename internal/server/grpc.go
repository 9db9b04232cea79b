package server

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-notes/internal/config"
	myGRPC "github.com/MKhiriev/go-notes/internal/handler/grpc"
	"github.com/MKhiriev/go-notes/internal/logger"
)

const healthRefreshInterval = 15 * time.Second

type grpcServer struct {
	handler *myGRPC.Handler
	server  *grpc.Server
	address string

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	s := grpc.NewServer(grpc.UnaryInterceptor(handler.UnaryLogging))
	handler.Register(s)

	return &grpcServer{
		handler: handler,
		server:  s,
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) serve(ctx context.Context, lis net.Listener) error {
	go g.handler.WatchHealth(ctx, healthRefreshInterval)

	g.logger.Info().Str("address", lis.Addr().String()).Msg("gRPC server is listening")
	return g.server.Serve(lis)
}

func (g *grpcServer) shutdown(ctx context.Context) {
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		g.logger.Warn().Msg("gRPC graceful stop timed out")
		g.server.Stop()
	}
}
