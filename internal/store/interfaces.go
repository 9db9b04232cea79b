package store

import (
	"context"

	"github.com/MKhiriev/go-notes/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// NoteRepository persists notes. Owner operations are always scoped by
// userID; a note of another user is reported as [ErrNoteNotFound].
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, userID int64, noteID string) (models.Note, error)
	ListNotes(ctx context.Context, userID int64) ([]models.Note, error)
	UpdateNoteContent(ctx context.Context, userID int64, noteID string, content models.NoteContent) (models.Note, error)
	DeleteNote(ctx context.Context, userID int64, noteID string) error

	SetSharing(ctx context.Context, userID int64, noteID string, isPublic bool, token *string, allowPublicEdit bool) (models.Note, error)
	SetPublicEdit(ctx context.Context, userID int64, noteID string, allow bool) (models.Note, error)

	GetSharedNote(ctx context.Context, token string) (models.Note, error)
	UpdateSharedNoteContent(ctx context.Context, token string, content models.NoteContent) (models.Note, error)
}

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
