// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNoteID = "0190c6f2-7a4b-7c3d-8e9f-0a1b2c3d4e5f"

var errStorage = errors.New("storage error")

func newRawNoteService(repo *mockNoteRepository, tokens *seqTokenGenerator, pub *recordingPublisher) *noteService {
	if tokens == nil {
		tokens = &seqTokenGenerator{tokens: []string{"tok-1"}}
	}
	svc := &noteService{
		noteRepository: repo,
		ids:            fixedIDGenerator(testNoteID),
		tokens:         tokens,
		logger:         logger.Nop(),
	}
	if pub != nil {
		svc.events = pub
	}
	return svc
}

func sharedNote(token string, allowEdit bool) models.Note {
	return models.Note{
		ID:              testNoteID,
		UserID:          7,
		Title:           "t",
		Content:         "c",
		IsPublic:        true,
		ShareToken:      strPtr(token),
		AllowPublicEdit: allowEdit,
	}
}

// ─────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────

func TestNoteService_Create_TrimsAndAssignsID(t *testing.T) {
	repo := &mockNoteRepository{
		createFn: func(_ context.Context, note models.Note) (models.Note, error) {
			assert.Equal(t, testNoteID, note.ID)
			assert.Equal(t, int64(7), note.UserID)
			assert.Equal(t, "Groceries", note.Title)
			assert.Equal(t, "- milk", note.Content)
			return note, nil
		},
	}
	svc := newRawNoteService(repo, nil, nil)

	note, err := svc.Create(context.Background(), 7, models.NoteContent{Title: "  Groceries ", Content: "\n- milk\n"})

	require.NoError(t, err)
	assert.Equal(t, testNoteID, note.ID)
	assert.False(t, note.IsShared())
}

func TestNoteService_Create_BlankFields(t *testing.T) {
	tests := []struct {
		name    string
		content models.NoteContent
	}{
		{"blank title", models.NoteContent{Title: "   ", Content: "body"}},
		{"blank content", models.NoteContent{Title: "title", Content: "\n\t"}},
		{"both empty", models.NoteContent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockNoteRepository{
				createFn: func(context.Context, models.Note) (models.Note, error) {
					t.Fatal("repository must not be called")
					return models.Note{}, nil
				},
			}
			svc := newRawNoteService(repo, nil, nil)

			_, err := svc.Create(context.Background(), 7, tt.content)

			assert.ErrorIs(t, err, ErrEmptyNote)
		})
	}
}

func TestNoteService_Create_StorageError(t *testing.T) {
	repo := &mockNoteRepository{
		createFn: func(context.Context, models.Note) (models.Note, error) {
			return models.Note{}, errStorage
		},
	}
	svc := newRawNoteService(repo, nil, nil)

	_, err := svc.Create(context.Background(), 7, models.NoteContent{Title: "a", Content: "b"})

	assert.ErrorIs(t, err, errStorage)
}

// ─────────────────────────────────────────────
// List / Get
// ─────────────────────────────────────────────

func TestNoteService_List_PassesUserID(t *testing.T) {
	want := []models.Note{{ID: "1"}, {ID: "2"}}
	repo := &mockNoteRepository{
		listFn: func(_ context.Context, userID int64) ([]models.Note, error) {
			assert.Equal(t, int64(3), userID)
			return want, nil
		},
	}

	got, err := newRawNoteService(repo, nil, nil).List(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNoteService_Get_NotFound(t *testing.T) {
	repo := &mockNoteRepository{
		getFn: func(context.Context, int64, string) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
	}

	_, err := newRawNoteService(repo, nil, nil).Get(context.Background(), 1, testNoteID)

	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

// ─────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────

func TestNoteService_Update_StoresAsGiven(t *testing.T) {
	repo := &mockNoteRepository{
		updateFn: func(_ context.Context, _ int64, _ string, content models.NoteContent) (models.Note, error) {
			assert.Equal(t, " Title ", content.Title)
			assert.Equal(t, "body\n", content.Content)
			return models.Note{ID: testNoteID, Title: content.Title, Content: content.Content}, nil
		},
	}
	pub := &recordingPublisher{}

	note, err := newRawNoteService(repo, nil, pub).Update(context.Background(), 1, testNoteID, models.NoteContent{Title: " Title ", Content: "body\n"})

	require.NoError(t, err)
	assert.Equal(t, " Title ", note.Title)
	assert.Empty(t, pub.Events(), "private notes produce no events")
}

func TestNoteService_Update_BlankRejected(t *testing.T) {
	_, err := newRawNoteService(&mockNoteRepository{}, nil, nil).Update(context.Background(), 1, testNoteID, models.NoteContent{Title: "x", Content: " "})

	assert.ErrorIs(t, err, ErrEmptyNote)
}

func TestNoteService_Update_SharedNotePublishesAnonymousEvent(t *testing.T) {
	repo := &mockNoteRepository{
		updateFn: func(context.Context, int64, string, models.NoteContent) (models.Note, error) {
			return sharedNote("tok", false), nil
		},
	}
	pub := &recordingPublisher{}

	_, err := newRawNoteService(repo, nil, pub).Update(context.Background(), 7, testNoteID, models.NoteContent{Title: "t", Content: "c"})

	require.NoError(t, err)
	events := pub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.NoteUpdated, events[0].Type)
	assert.Zero(t, events[0].Note.UserID)
	assert.Equal(t, "tok", events[0].Note.Token())
}

// ─────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────

func TestNoteService_Delete_SharedNotePublishesDeleted(t *testing.T) {
	deleted := false
	repo := &mockNoteRepository{
		getFn: func(context.Context, int64, string) (models.Note, error) {
			return sharedNote("tok", true), nil
		},
		deleteFn: func(context.Context, int64, string) error {
			deleted = true
			return nil
		},
	}
	pub := &recordingPublisher{}

	err := newRawNoteService(repo, nil, pub).Delete(context.Background(), 7, testNoteID)

	require.NoError(t, err)
	assert.True(t, deleted)
	require.Len(t, pub.Events(), 1)
	assert.Equal(t, models.NoteDeleted, pub.Events()[0].Type)
}

func TestNoteService_Delete_NotFound(t *testing.T) {
	repo := &mockNoteRepository{
		getFn: func(context.Context, int64, string) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
		deleteFn: func(context.Context, int64, string) error {
			t.Fatal("delete must not be called")
			return nil
		},
	}

	err := newRawNoteService(repo, nil, nil).Delete(context.Background(), 7, testNoteID)

	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

// ─────────────────────────────────────────────
// Share
// ─────────────────────────────────────────────

func TestNoteService_Share_GeneratesToken(t *testing.T) {
	repo := &mockNoteRepository{
		setSharingFn: func(_ context.Context, _ int64, noteID string, isPublic bool, token *string, allow bool) (models.Note, error) {
			assert.True(t, isPublic)
			require.NotNil(t, token)
			assert.Equal(t, "tok-1", *token)
			assert.False(t, allow, "sharing starts read-only")
			return models.Note{ID: noteID, IsPublic: true, ShareToken: token}, nil
		},
	}

	note, err := newRawNoteService(repo, nil, nil).Share(context.Background(), 7, testNoteID)

	require.NoError(t, err)
	assert.True(t, note.IsShared())
	assert.Equal(t, "tok-1", note.Token())
}

func TestNoteService_Share_AlreadySharedKeepsToken(t *testing.T) {
	repo := &mockNoteRepository{
		getFn: func(context.Context, int64, string) (models.Note, error) {
			return sharedNote("existing", true), nil
		},
		setSharingFn: func(context.Context, int64, string, bool, *string, bool) (models.Note, error) {
			t.Fatal("sharing must not be reset")
			return models.Note{}, nil
		},
	}

	note, err := newRawNoteService(repo, nil, nil).Share(context.Background(), 7, testNoteID)

	require.NoError(t, err)
	assert.Equal(t, "existing", note.Token())
	assert.True(t, note.AllowPublicEdit)
}

func TestNoteService_Share_RetriesOnTokenConflict(t *testing.T) {
	var seen []string
	repo := &mockNoteRepository{
		setSharingFn: func(_ context.Context, _ int64, noteID string, _ bool, token *string, _ bool) (models.Note, error) {
			seen = append(seen, *token)
			if len(seen) == 1 {
				return models.Note{}, store.ErrShareTokenConflict
			}
			return models.Note{ID: noteID, IsPublic: true, ShareToken: token}, nil
		},
	}
	tokens := &seqTokenGenerator{tokens: []string{"dup", "fresh"}}

	note, err := newRawNoteService(repo, tokens, nil).Share(context.Background(), 7, testNoteID)

	require.NoError(t, err)
	assert.Equal(t, []string{"dup", "fresh"}, seen)
	assert.Equal(t, "fresh", note.Token())
}

func TestNoteService_Share_GivesUpAfterRepeatedConflicts(t *testing.T) {
	repo := &mockNoteRepository{
		setSharingFn: func(context.Context, int64, string, bool, *string, bool) (models.Note, error) {
			return models.Note{}, store.ErrShareTokenConflict
		},
	}

	_, err := newRawNoteService(repo, nil, nil).Share(context.Background(), 7, testNoteID)

	assert.ErrorIs(t, err, ErrShareTokenGeneration)
}

func TestNoteService_Share_GeneratorError(t *testing.T) {
	tokens := &seqTokenGenerator{err: errors.New("entropy")}

	_, err := newRawNoteService(&mockNoteRepository{}, tokens, nil).Share(context.Background(), 7, testNoteID)

	assert.ErrorIs(t, err, ErrShareTokenGeneration)
}

// ─────────────────────────────────────────────
// SetPublicEdit / StopSharing
// ─────────────────────────────────────────────

func TestNoteService_SetPublicEdit_NotShared(t *testing.T) {
	repo := &mockNoteRepository{
		setPublicEditFn: func(context.Context, int64, string, bool) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotShared
		},
	}
	pub := &recordingPublisher{}

	_, err := newRawNoteService(repo, nil, pub).SetPublicEdit(context.Background(), 7, testNoteID, true)

	assert.ErrorIs(t, err, store.ErrNoteNotShared)
	assert.Empty(t, pub.Events())
}

func TestNoteService_SetPublicEdit_PublishesUpdate(t *testing.T) {
	repo := &mockNoteRepository{
		setPublicEditFn: func(_ context.Context, _ int64, _ string, allow bool) (models.Note, error) {
			n := sharedNote("tok", allow)
			return n, nil
		},
	}
	pub := &recordingPublisher{}

	note, err := newRawNoteService(repo, nil, pub).SetPublicEdit(context.Background(), 7, testNoteID, true)

	require.NoError(t, err)
	assert.True(t, note.AllowPublicEdit)
	require.Len(t, pub.Events(), 1)
	assert.True(t, pub.Events()[0].Note.AllowPublicEdit)
}

func TestNoteService_StopSharing_ClearsEverything(t *testing.T) {
	repo := &mockNoteRepository{
		getFn: func(context.Context, int64, string) (models.Note, error) {
			return sharedNote("tok", true), nil
		},
		setSharingFn: func(_ context.Context, _ int64, noteID string, isPublic bool, token *string, allow bool) (models.Note, error) {
			assert.False(t, isPublic)
			assert.Nil(t, token)
			assert.False(t, allow)
			return models.Note{ID: noteID}, nil
		},
	}
	pub := &recordingPublisher{}

	note, err := newRawNoteService(repo, nil, pub).StopSharing(context.Background(), 7, testNoteID)

	require.NoError(t, err)
	assert.False(t, note.IsShared())
	require.Len(t, pub.Events(), 1)
	assert.True(t, pub.Events()[0].Terminal())
}

func TestNoteService_StopSharing_PrivateNoteIsNoop(t *testing.T) {
	pub := &recordingPublisher{}

	_, err := newRawNoteService(&mockNoteRepository{}, nil, pub).StopSharing(context.Background(), 7, testNoteID)

	require.NoError(t, err)
	assert.Empty(t, pub.Events())
}

func TestNoteService_NilPublisher(t *testing.T) {
	repo := &mockNoteRepository{
		updateFn: func(context.Context, int64, string, models.NoteContent) (models.Note, error) {
			return sharedNote("tok", false), nil
		},
	}
	svc := NewNoteService(repo, fixedIDGenerator(testNoteID), &seqTokenGenerator{tokens: []string{"x"}}, nil, logger.Nop())

	assert.NotPanics(t, func() {
		_, _ = svc.Update(context.Background(), 7, testNoteID, models.NoteContent{Title: "a", Content: "b"})
	})
}
