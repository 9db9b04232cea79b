package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey signs request bodies with the HashSHA256 header when non-empty.
	HashKey string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the server address used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path of the local store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	// DraftFlushInterval defines how often pending drafts are pushed again.
	DraftFlushInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client configuration. Values in
// fromFlags (usually filled from cobra persistent flags) override the JSON
// file and the defaults, environment variables override everything.
func GetClientConfig(fromFlags *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		with(fromFlags).
		withJSON().
		withDefaults().
		with(&StructuredConfig{Storage: Storage{DB: DB{DSN: defaultClientDSN}}}).
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{DraftFlushInterval: cfg.Workers.DraftFlushInterval},
	}

	return clientCfg, clientCfg.validate()
}
