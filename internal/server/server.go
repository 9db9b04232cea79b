package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/handler"
	"github.com/MKhiriev/go-notes/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger

	// listen is swapped in tests.
	listen func(network, address string) (net.Listener, error)
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger, listen: net.Listen}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer(ctx context.Context) error {
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersToRun
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	// Listeners are opened up front so that a bad address fails the start.
	var httpLis, grpcLis net.Listener
	var err error
	if s.httpServer != nil {
		if httpLis, err = s.listen("tcp", s.httpServer.server.Addr); err != nil {
			return fmt.Errorf("listen http %s: %w", s.httpServer.server.Addr, err)
		}
	}
	if s.gRPCServer != nil {
		if grpcLis, err = s.listen("tcp", s.gRPCServer.address); err != nil {
			if httpLis != nil {
				httpLis.Close()
			}
			return fmt.Errorf("listen grpc %s: %w", s.gRPCServer.address, err)
		}
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	if httpLis != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- s.httpServer.serve(httpLis)
		}()
	}
	if grpcLis != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- s.gRPCServer.serve(ctx, grpcLis)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown signal received")
	case runErr = <-errCh:
		if runErr != nil {
			s.logger.Err(runErr).Msg("server stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.Shutdown(shutdownCtx)
	wg.Wait()

	s.logger.Info().Msg("server shutdown gracefully")
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (s *server) Shutdown(ctx context.Context) {
	if s.httpServer != nil {
		s.httpServer.shutdown(ctx)
	}
	if s.gRPCServer != nil {
		s.gRPCServer.shutdown(ctx)
	}
}
