package service

import (
	"context"

	"github.com/MKhiriev/go-notes/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// NoteService is the owner side of notes. Every method is scoped by the
// userID of the authenticated caller.
type NoteService interface {
	Create(ctx context.Context, userID int64, content models.NoteContent) (models.Note, error)
	List(ctx context.Context, userID int64) ([]models.Note, error)
	Get(ctx context.Context, userID int64, noteID string) (models.Note, error)
	Update(ctx context.Context, userID int64, noteID string, content models.NoteContent) (models.Note, error)
	Delete(ctx context.Context, userID int64, noteID string) error

	Share(ctx context.Context, userID int64, noteID string) (models.Note, error)
	SetPublicEdit(ctx context.Context, userID int64, noteID string, allow bool) (models.Note, error)
	StopSharing(ctx context.Context, userID int64, noteID string) (models.Note, error)
}

// ShareService serves anonymous visitors of share links.
type ShareService interface {
	Get(ctx context.Context, token string) (models.Note, error)
	Update(ctx context.Context, token string, content models.NoteContent) (models.Note, error)
	Render(ctx context.Context, token string) (models.Note, string, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetServerInfo(ctx context.Context) models.ServerInfo
}

// NoteServiceWrapper decorates a NoteService (validation, logging).
type NoteServiceWrapper interface {
	Wrap(NoteService) NoteService
}

// TokenGenerator produces share tokens.
type TokenGenerator interface {
	Generate() (string, error)
}

// IDGenerator produces note identifiers.
type IDGenerator interface {
	Generate() string
}

// NoteEventPublisher delivers note changes to live viewers of share links.
type NoteEventPublisher interface {
	Publish(event models.NoteEvent)
}

// MarkdownRenderer turns note content into HTML.
type MarkdownRenderer interface {
	Render(source string) (string, error)
}
