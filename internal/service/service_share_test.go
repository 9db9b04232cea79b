package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRawShareService(repo *mockNoteRepository, renderer MarkdownRenderer, pub *recordingPublisher) *shareService {
	svc := &shareService{
		noteRepository: repo,
		renderer:       renderer,
		logger:         logger.Nop(),
	}
	if pub != nil {
		svc.events = pub
	}
	return svc
}

// ── Get ─────────────────────────────────────

func TestShareService_Get_StripsOwner(t *testing.T) {
	repo := &mockNoteRepository{
		getSharedFn: func(_ context.Context, token string) (models.Note, error) {
			assert.Equal(t, "tok", token)
			return sharedNote("tok", false), nil
		},
	}

	note, err := newRawShareService(repo, stubRenderer{}, nil).Get(context.Background(), "tok")

	require.NoError(t, err)
	assert.Zero(t, note.UserID)
	assert.Equal(t, "t", note.Title)
}

func TestShareService_Get_UnknownToken(t *testing.T) {
	repo := &mockNoteRepository{
		getSharedFn: func(context.Context, string) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
	}

	_, err := newRawShareService(repo, stubRenderer{}, nil).Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNoteNotShared)
}

func TestShareService_Get_EmptyToken(t *testing.T) {
	repo := &mockNoteRepository{
		getSharedFn: func(context.Context, string) (models.Note, error) {
			t.Fatal("repository must not be called")
			return models.Note{}, nil
		},
	}

	_, err := newRawShareService(repo, stubRenderer{}, nil).Get(context.Background(), "")

	assert.ErrorIs(t, err, ErrNoteNotShared)
}

func TestShareService_Get_StorageError(t *testing.T) {
	repo := &mockNoteRepository{
		getSharedFn: func(context.Context, string) (models.Note, error) {
			return models.Note{}, errStorage
		},
	}

	_, err := newRawShareService(repo, stubRenderer{}, nil).Get(context.Background(), "tok")

	assert.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, ErrNoteNotShared)
}

// ── Update ──────────────────────────────────

func TestShareService_Update_AllowedPublishes(t *testing.T) {
	repo := &mockNoteRepository{
		getSharedFn: func(context.Context, string) (models.Note, error) {
			return sharedNote("tok", true), nil
		},
		updateSharedFn: func(_ context.Context, token string, content models.NoteContent) (models.Note, error) {
			n := sharedNote(token, true)
			n.Title, n.Content = content.Title, content.Content
			return n, nil
		},
	}
	pub := &recordingPublisher{}

	note, err := newRawShareService(repo, stubRenderer{}, pub).Update(context.Background(), "tok", models.NoteContent{Title: "new", Content: "text"})

	require.NoError(t, err)
	assert.Equal(t, "new", note.Title)
	assert.Zero(t, note.UserID)
	require.Len(t, pub.Events(), 1)
	assert.Equal(t, models.NoteUpdated, pub.Events()[0].Type)
	assert.Zero(t, pub.Events()[0].Note.UserID)
}

func TestShareService_Update_ReadOnlyShare(t *testing.T) {
	repo := &mockNoteRepository{
		getSharedFn: func(context.Context, string) (models.Note, error) {
			return sharedNote("tok", false), nil
		},
		updateSharedFn: func(context.Context, string, models.NoteContent) (models.Note, error) {
			t.Fatal("update must not be called")
			return models.Note{}, nil
		},
	}

	_, err := newRawShareService(repo, stubRenderer{}, nil).Update(context.Background(), "tok", models.NoteContent{Title: "a", Content: "b"})

	assert.ErrorIs(t, err, ErrPublicEditNotAllowed)
}

func TestShareService_Update_RevokedInBetween(t *testing.T) {
	repo := &mockNoteRepository{
		getSharedFn: func(context.Context, string) (models.Note, error) {
			return sharedNote("tok", true), nil
		},
		updateSharedFn: func(context.Context, string, models.NoteContent) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
	}

	_, err := newRawShareService(repo, stubRenderer{}, nil).Update(context.Background(), "tok", models.NoteContent{Title: "a", Content: "b"})

	assert.ErrorIs(t, err, ErrPublicEditNotAllowed)
}

func TestShareService_Update_BlankContent(t *testing.T) {
	_, err := newRawShareService(&mockNoteRepository{}, stubRenderer{}, nil).Update(context.Background(), "tok", models.NoteContent{Title: "", Content: "b"})

	assert.ErrorIs(t, err, ErrEmptyNote)
}

func TestShareService_Update_SizeLimits(t *testing.T) {
	tests := []struct {
		name    string
		content models.NoteContent
		wantErr error
	}{
		{
			name:    "title too long",
			content: models.NoteContent{Title: strings.Repeat("t", maxTitleRunes+1), Content: "b"},
			wantErr: ErrTitleTooLong,
		},
		{
			name:    "content too large",
			content: models.NoteContent{Title: "a", Content: strings.Repeat("c", maxContentBytes+1)},
			wantErr: ErrContentTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockNoteRepository{
				getSharedFn: func(context.Context, string) (models.Note, error) {
					return models.Note{ID: "n1", IsPublic: true, AllowPublicEdit: true}, nil
				},
				updateSharedFn: func(context.Context, string, models.NoteContent) (models.Note, error) {
					t.Fatal("oversized content must not be stored")
					return models.Note{}, nil
				},
			}

			_, err := newRawShareService(repo, stubRenderer{}, nil).Update(context.Background(), "tok", tt.content)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestShareService_Update_UnknownToken(t *testing.T) {
	repo := &mockNoteRepository{
		getSharedFn: func(context.Context, string) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
	}

	_, err := newRawShareService(repo, stubRenderer{}, nil).Update(context.Background(), "tok", models.NoteContent{Title: "a", Content: "b"})

	assert.ErrorIs(t, err, ErrNoteNotShared)
}

// ── Render ──────────────────────────────────

func TestShareService_Render(t *testing.T) {
	repo := &mockNoteRepository{
		getSharedFn: func(context.Context, string) (models.Note, error) {
			return sharedNote("tok", false), nil
		},
	}

	note, html, err := newRawShareService(repo, stubRenderer{html: "<h1>t</h1>"}, nil).Render(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, "t", note.Title)
	assert.Equal(t, "<h1>t</h1>", html)
}

func TestShareService_Render_RendererError(t *testing.T) {
	repo := &mockNoteRepository{
		getSharedFn: func(context.Context, string) (models.Note, error) {
			return sharedNote("tok", false), nil
		},
	}
	boom := errors.New("boom")

	_, _, err := newRawShareService(repo, stubRenderer{err: boom}, nil).Render(context.Background(), "tok")

	assert.ErrorIs(t, err, boom)
}
