package server

import "context"

type Server interface {
	// RunServer blocks until a termination signal arrives or ctx is done,
	// then shuts all listeners down.
	RunServer(ctx context.Context) error

	Shutdown(ctx context.Context)
}
