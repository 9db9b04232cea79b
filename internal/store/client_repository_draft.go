package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/models"
)

type localDraftRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalDraftRepository(db *DB, logger *logger.Logger) DraftRepository {
	return &localDraftRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveDraft inserts or replaces the draft of draft.NoteID.
func (l *localDraftRepository) SaveDraft(ctx context.Context, draft models.Draft) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveDraftQuery(draft)
	if err != nil {
		return err
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localDraftRepository.SaveDraft").
			Str("note_id", draft.NoteID).
			Msg("failed to save draft")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (l *localDraftRepository) GetDraft(ctx context.Context, noteID string) (models.Draft, error) {
	query, args, err := buildGetDraftQuery(noteID)
	if err != nil {
		return models.Draft{}, err
	}

	var draft models.Draft
	err = l.DB.QueryRowContext(ctx, query, args...).Scan(&draft.NoteID, &draft.Title, &draft.Content, &draft.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return models.Draft{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return draft, nil
}

// ListDrafts returns all pending drafts, oldest first.
func (l *localDraftRepository) ListDrafts(ctx context.Context) ([]models.Draft, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDraftsQuery()
	if err != nil {
		return nil, err
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "localDraftRepository.ListDrafts").Msg("failed to query drafts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	drafts := make([]models.Draft, 0)
	for rows.Next() {
		var draft models.Draft
		if err := rows.Scan(&draft.NoteID, &draft.Title, &draft.Content, &draft.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		drafts = append(drafts, draft)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return drafts, nil
}

func (l *localDraftRepository) DeleteDraft(ctx context.Context, noteID string) error {
	query, args, err := buildDeleteDraftQuery(noteID)
	if err != nil {
		return err
	}

	result, err := l.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrDraftNotFound
	}

	return nil
}
