// Package config provides configuration loading, merging, and validation
// facilities for the go-notes server and client.
//
// Configuration is assembled from multiple sources. Non-zero values from an
// earlier source win over later ones:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
