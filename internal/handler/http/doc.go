// Package http implements the REST transport of the go-notes server.
//
// It wires routes, request handlers and middleware. Request tracing, access
// logging, response compression, bearer authentication and body integrity
// checks run here before requests reach the service layer. Share links are
// served both as JSON and as a rendered HTML page, and their viewers can
// follow changes over a WebSocket.
package http
