package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/logger"
)

// Storages groups the server repositories.
type Storages struct {
	UserRepository UserRepository
	NoteRepository NoteRepository

	// DB is kept for health checks and for closing on shutdown.
	DB *DB
}

// NewStorages connects to PostgreSQL, applies migrations and builds the
// repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		NoteRepository: NewNoteRepository(db, logger),
		DB:             db,
	}, nil
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
