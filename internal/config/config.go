// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// go-notes server and client. It is populated by merging values from
// environment variables, command-line flags, an optional JSON file and
// built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters, the request integrity key, the version and
	// the public URL used to build share links.
	App App `envPrefix:"APP_"`

	// Storage holds the database and the render cache settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and timeouts of the HTTP and gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the address of the server as seen by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds client background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key used for request integrity checking
	// (the HashSHA256 header). Integrity checks are off when empty.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// PublicURL is the externally visible origin of the server used to build
	// share links ({PublicURL}/s/{token}). Defaults to the HTTP address.
	// Env: APP_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Cache holds the rendered markdown cache settings.
	Cache Cache `envPrefix:"CACHE_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string on the server and the SQLite
	// file path on the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Cache holds settings of the bbolt file that stores rendered HTML of shared
// notes. Rendering is not cached when Path is empty.
type Cache struct {
	// Env: STORAGE_CACHE_PATH
	Path string `env:"PATH"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the host:port the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the host:port of the gRPC health server. Disabled when
	// empty.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds the handling time of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's view of the server.
type Adapter struct {
	// HTTPAddress is the base URL or host:port of the server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the timeout of a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for client background jobs.
type Workers struct {
	// DraftFlushInterval is how often unsaved local drafts are retried.
	// Env: WORKERS_DRAFT_FLUSH_INTERVAL
	DraftFlushInterval time.Duration `env:"DRAFT_FLUSH_INTERVAL"`
}

// GetStructuredConfig loads, merges and validates the server configuration.
// Non-zero values from earlier sources win:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
