package config

import "time"

const (
	defaultHTTPAddress        = "localhost:8080"
	defaultTokenIssuer        = "go-notes"
	defaultTokenDuration      = 24 * time.Hour
	defaultRequestTimeout     = 30 * time.Second
	defaultVersion            = "dev"
	defaultClientDSN          = "go-notes.db"
	defaultDraftFlushInterval = time.Minute
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   defaultTokenIssuer,
			TokenDuration: defaultTokenDuration,
			Version:       defaultVersion,
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Workers: Workers{
			DraftFlushInterval: defaultDraftFlushInterval,
		},
	}
}
