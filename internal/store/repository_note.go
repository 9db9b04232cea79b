// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/models"
	"github.com/jackc/pgerrcode"
)

// shareTokenConstraint is the unique index that guards share tokens.
const shareTokenConstraint = "notes_share_token_key"

// noteRepository is the PostgreSQL-backed implementation of
// [NoteRepository] over the "notes" table.
type noteRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var (
		note       models.Note
		shareToken sql.NullString
	)

	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
		&note.IsPublic,
		&shareToken,
		&note.AllowPublicEdit,
	)
	if err != nil {
		return models.Note{}, err
	}

	if shareToken.Valid {
		note.ShareToken = &shareToken.String
	}

	return note, nil
}

// queryNote runs a single-row query and maps sql.ErrNoRows to
// [ErrNoteNotFound].
func (r *noteRepository) queryNote(ctx context.Context, fn string, query string, args []any) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	err := r.db.withRetry(ctx, func() error {
		var scanErr error
		note, scanErr = scanNote(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})

	switch {
	case err == nil:
		return note, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Note{}, ErrNoteNotFound
	case postgresError(err) == pgerrcode.UniqueViolation && postgresConstraint(err) == shareTokenConstraint:
		return models.Note{}, ErrShareTokenConflict
	case postgresError(err) == pgerrcode.InvalidTextRepresentation:
		// malformed uuid
		return models.Note{}, ErrNoteNotFound
	default:
		log.Err(err).Str("func", fn).Msg("failed to execute note query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	query, args, err := buildCreateNoteQuery(note)
	if err != nil {
		return models.Note{}, err
	}

	return r.queryNote(ctx, "*noteRepository.CreateNote", query, args)
}

func (r *noteRepository) GetNote(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	query, args, err := buildGetNoteQuery(userID, noteID)
	if err != nil {
		return models.Note{}, err
	}

	return r.queryNote(ctx, "*noteRepository.GetNote", query, args)
}

// ListNotes returns all notes of the user, most recently updated first.
func (r *noteRepository) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery(userID)
	if err != nil {
		return nil, err
	}

	var notes []models.Note
	err = r.db.withRetry(ctx, func() error {
		rows, queryErr := r.db.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}
		defer rows.Close()

		notes = make([]models.Note, 0, 16)
		for rows.Next() {
			note, scanErr := scanNote(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}
			notes = append(notes, note)
		}

		if rowsErr := rows.Err(); rowsErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.ListNotes").
			Int64("user_id", userID).
			Msg("failed to list notes")
		return nil, err
	}

	return notes, nil
}

func (r *noteRepository) UpdateNoteContent(ctx context.Context, userID int64, noteID string, content models.NoteContent) (models.Note, error) {
	query, args, err := buildUpdateNoteContentQuery(userID, noteID, content)
	if err != nil {
		return models.Note{}, err
	}

	return r.queryNote(ctx, "*noteRepository.UpdateNoteContent", query, args)
}

func (r *noteRepository) DeleteNote(ctx context.Context, userID int64, noteID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteNoteQuery(userID, noteID)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if postgresError(err) == pgerrcode.InvalidTextRepresentation {
			return ErrNoteNotFound
		}
		log.Err(err).
			Str("func", "*noteRepository.DeleteNote").
			Str("note_id", noteID).
			Msg("failed to delete note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (r *noteRepository) SetSharing(ctx context.Context, userID int64, noteID string, isPublic bool, token *string, allowPublicEdit bool) (models.Note, error) {
	query, args, err := buildSetSharingQuery(userID, noteID, isPublic, token, allowPublicEdit)
	if err != nil {
		return models.Note{}, err
	}

	return r.queryNote(ctx, "*noteRepository.SetSharing", query, args)
}

// SetPublicEdit changes the public edit flag of a shared note. A private note
// yields [ErrNoteNotShared], a missing one [ErrNoteNotFound].
func (r *noteRepository) SetPublicEdit(ctx context.Context, userID int64, noteID string, allow bool) (models.Note, error) {
	query, args, err := buildSetPublicEditQuery(userID, noteID, allow)
	if err != nil {
		return models.Note{}, err
	}

	note, err := r.queryNote(ctx, "*noteRepository.SetPublicEdit", query, args)
	if !errors.Is(err, ErrNoteNotFound) {
		return note, err
	}

	// tell a private note apart from a missing one
	if _, getErr := r.GetNote(ctx, userID, noteID); getErr != nil {
		return models.Note{}, getErr
	}

	return models.Note{}, ErrNoteNotShared
}

func (r *noteRepository) GetSharedNote(ctx context.Context, token string) (models.Note, error) {
	query, args, err := buildGetSharedNoteQuery(token)
	if err != nil {
		return models.Note{}, err
	}

	return r.queryNote(ctx, "*noteRepository.GetSharedNote", query, args)
}

// UpdateSharedNoteContent updates a note through its share link. Nothing is
// written unless the note is public and allows public editing.
func (r *noteRepository) UpdateSharedNoteContent(ctx context.Context, token string, content models.NoteContent) (models.Note, error) {
	query, args, err := buildUpdateSharedNoteQuery(token, content)
	if err != nil {
		return models.Note{}, err
	}

	return r.queryNote(ctx, "*noteRepository.UpdateSharedNoteContent", query, args)
}
