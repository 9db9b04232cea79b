package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/models"
)

type localSessionRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &localSessionRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveSession replaces the stored session.
func (l *localSessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveSessionQuery(session)
	if err != nil {
		return err
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localSessionRepository.SaveSession").
			Str("email", session.Email).
			Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (l *localSessionRepository) GetSession(ctx context.Context) (models.Session, error) {
	query, args, err := buildGetSessionQuery()
	if err != nil {
		return models.Session{}, err
	}

	var session models.Session
	err = l.DB.QueryRowContext(ctx, query, args...).Scan(&session.Email, &session.Token, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrLocalSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localSessionRepository.GetSession").
			Msg("failed to read session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

// DeleteSession removes the stored session. Deleting a missing session
// returns [ErrLocalSessionNotFound].
func (l *localSessionRepository) DeleteSession(ctx context.Context) error {
	query, args, err := buildDeleteSessionQuery()
	if err != nil {
		return err
	}

	result, err := l.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrLocalSessionNotFound
	}

	return nil
}
