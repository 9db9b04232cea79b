// Package server runs the HTTP and gRPC listeners of go-notes and shuts them
// down gracefully on SIGTERM, SIGINT or SIGQUIT.
package server
