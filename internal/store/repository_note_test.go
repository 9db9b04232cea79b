package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNoteID = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"

func newTestNoteRepo(t *testing.T) (*noteRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	return &noteRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}, mock
}

func noteRow(rows *sqlmock.Rows, isPublic bool, token any, allowEdit bool) *sqlmock.Rows {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(testNoteID, int64(1), "Groceries", "- milk", now, now, isPublic, token, allowEdit)
}

func TestNoteRepository_CreateNote(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("INSERT INTO notes \\(id,user_id,title,content\\) VALUES \\(\\$1,\\$2,\\$3,\\$4\\) RETURNING id").
		WithArgs(testNoteID, int64(1), "Groceries", "- milk").
		WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), false, nil, false))

	note, err := repo.CreateNote(context.Background(), models.Note{ID: testNoteID, UserID: 1, Title: "Groceries", Content: "- milk"})
	require.NoError(t, err)
	assert.Equal(t, testNoteID, note.ID)
	assert.Nil(t, note.ShareToken)
	assert.False(t, note.IsShared())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_GetNote(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found with share token",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM notes WHERE id = \\$1 AND user_id = \\$2").
					WithArgs(testNoteID, int64(1)).
					WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), true, "tok", true))
			},
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM notes").
					WillReturnRows(sqlmock.NewRows(noteColumns))
			},
			wantErr: ErrNoteNotFound,
		},
		{
			name: "malformed uuid",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM notes").
					WillReturnError(pgError(pgerrcode.InvalidTextRepresentation))
			},
			wantErr: ErrNoteNotFound,
		},
		{
			name: "driver error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM notes").
					WillReturnError(errors.New("boom"))
			},
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestNoteRepo(t)
			tt.setup(mock)

			note, err := repo.GetNote(context.Background(), 1, testNoteID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, note.ShareToken)
			assert.Equal(t, "tok", *note.ShareToken)
			assert.True(t, note.IsShared())
			assert.True(t, note.AllowPublicEdit)
		})
	}
}

func TestNoteRepository_ListNotes(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	rows := sqlmock.NewRows(noteColumns)
	noteRow(rows, false, nil, false)
	noteRow(rows, true, "tok", false)

	mock.ExpectQuery("SELECT .* FROM notes WHERE user_id = \\$1 ORDER BY updated_at DESC").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	notes, err := repo.ListNotes(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.False(t, notes[0].IsShared())
	assert.True(t, notes[1].IsShared())
}

func TestNoteRepository_ListNotes_Empty(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("SELECT .* FROM notes").WillReturnRows(sqlmock.NewRows(noteColumns))

	notes, err := repo.ListNotes(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNoteRepository_ListNotes_RetriesConnectionErrors(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("SELECT .* FROM notes").WillReturnError(pgError(pgerrcode.ConnectionFailure))
	mock.ExpectQuery("SELECT .* FROM notes").WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), false, nil, false))

	notes, err := repo.ListNotes(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_ListNotes_ScanError(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("SELECT .* FROM notes").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testNoteID))

	_, err := repo.ListNotes(context.Background(), 1)
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestNoteRepository_UpdateNoteContent(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("UPDATE notes SET title = \\$1, content = \\$2, updated_at = NOW\\(\\) WHERE id = \\$3 AND user_id = \\$4 RETURNING").
		WithArgs("Groceries", "- milk", testNoteID, int64(1)).
		WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), false, nil, false))

	note, err := repo.UpdateNoteContent(context.Background(), 1, testNoteID, models.NoteContent{Title: "Groceries", Content: "- milk"})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", note.Title)
}

func TestNoteRepository_DeleteNote(t *testing.T) {
	tests := []struct {
		name    string
		result  func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			result: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM notes WHERE id = \\$1 AND user_id = \\$2").
					WithArgs(testNoteID, int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "nothing deleted",
			result: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM notes").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrNoteNotFound,
		},
		{
			name: "exec error",
			result: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM notes").WillReturnError(errors.New("boom"))
			},
			wantErr: ErrExecutingStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestNoteRepo(t)
			tt.result(mock)

			err := repo.DeleteNote(context.Background(), 1, testNoteID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── sharing ──────────────────────────────────────────────────────────────────

func TestNoteRepository_SetSharing_Share(t *testing.T) {
	repo, mock := newTestNoteRepo(t)
	token := "tok"

	mock.ExpectQuery("UPDATE notes SET is_public = \\$1, share_token = \\$2, allow_public_edit = \\$3 WHERE id = \\$4 AND user_id = \\$5").
		WithArgs(true, "tok", false, testNoteID, int64(1)).
		WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), true, "tok", false))

	note, err := repo.SetSharing(context.Background(), 1, testNoteID, true, &token, false)
	require.NoError(t, err)
	assert.True(t, note.IsShared())
}

func TestNoteRepository_SetSharing_Unshare(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("UPDATE notes SET is_public").
		WithArgs(false, nil, false, testNoteID, int64(1)).
		WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), false, nil, false))

	note, err := repo.SetSharing(context.Background(), 1, testNoteID, false, nil, false)
	require.NoError(t, err)
	assert.False(t, note.IsPublic)
	assert.Nil(t, note.ShareToken)
}

func TestNoteRepository_SetSharing_TokenConflict(t *testing.T) {
	repo, mock := newTestNoteRepo(t)
	token := "dup"

	mock.ExpectQuery("UPDATE notes SET is_public").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: shareTokenConstraint})

	_, err := repo.SetSharing(context.Background(), 1, testNoteID, true, &token, false)
	assert.ErrorIs(t, err, ErrShareTokenConflict)
}

func TestNoteRepository_SetPublicEdit(t *testing.T) {
	t.Run("shared note", func(t *testing.T) {
		repo, mock := newTestNoteRepo(t)

		mock.ExpectQuery("UPDATE notes SET allow_public_edit = \\$1 WHERE id = \\$2 AND is_public = \\$3 AND user_id = \\$4").
			WithArgs(true, testNoteID, true, int64(1)).
			WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), true, "tok", true))

		note, err := repo.SetPublicEdit(context.Background(), 1, testNoteID, true)
		require.NoError(t, err)
		assert.True(t, note.AllowPublicEdit)
	})

	t.Run("private note", func(t *testing.T) {
		repo, mock := newTestNoteRepo(t)

		mock.ExpectQuery("UPDATE notes SET allow_public_edit").WillReturnRows(sqlmock.NewRows(noteColumns))
		mock.ExpectQuery("SELECT .* FROM notes").WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), false, nil, false))

		_, err := repo.SetPublicEdit(context.Background(), 1, testNoteID, true)
		assert.ErrorIs(t, err, ErrNoteNotShared)
	})

	t.Run("missing note", func(t *testing.T) {
		repo, mock := newTestNoteRepo(t)

		mock.ExpectQuery("UPDATE notes SET allow_public_edit").WillReturnRows(sqlmock.NewRows(noteColumns))
		mock.ExpectQuery("SELECT .* FROM notes").WillReturnRows(sqlmock.NewRows(noteColumns))

		_, err := repo.SetPublicEdit(context.Background(), 1, testNoteID, true)
		assert.ErrorIs(t, err, ErrNoteNotFound)
	})
}

func TestNoteRepository_GetSharedNote(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("SELECT .* FROM notes WHERE is_public = \\$1 AND share_token = \\$2").
		WithArgs(true, "tok").
		WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), true, "tok", false))

	note, err := repo.GetSharedNote(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "tok", note.Token())
}

func TestNoteRepository_GetSharedNote_NotShared(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("SELECT .* FROM notes").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSharedNote(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteRepository_UpdateSharedNoteContent(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("UPDATE notes SET title = \\$1, content = \\$2, updated_at = NOW\\(\\) WHERE allow_public_edit = \\$3 AND is_public = \\$4 AND share_token = \\$5").
		WithArgs("T", "C", true, true, "tok").
		WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), true, "tok", true))

	_, err := repo.UpdateSharedNoteContent(context.Background(), "tok", models.NoteContent{Title: "T", Content: "C"})
	require.NoError(t, err)
}
