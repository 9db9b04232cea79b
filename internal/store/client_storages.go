package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/logger"
)

// ClientStorages groups the client-side repositories backed by one local
// SQLite file.
type ClientStorages struct {
	SessionRepository SessionRepository
	DraftRepository   DraftRepository

	db *DB
}

// NewClientStorages opens (creating if needed) the SQLite file at
// cfg.DB.DSN, applies the client migrations and builds the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClient(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewLocalSessionRepository(db, logger),
		DraftRepository:   NewLocalDraftRepository(db, logger),
		db:                db,
	}, nil
}

func (s *ClientStorages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
