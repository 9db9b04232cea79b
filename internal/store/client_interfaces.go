package store

import (
	"context"

	"github.com/MKhiriev/go-notes/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository keeps the single signed-in session of this device.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context) (models.Session, error)
	DeleteSession(ctx context.Context) error
}

// DraftRepository keeps editor content that could not be saved yet.
type DraftRepository interface {
	SaveDraft(ctx context.Context, draft models.Draft) error
	GetDraft(ctx context.Context, noteID string) (models.Draft, error)
	ListDrafts(ctx context.Context) ([]models.Draft, error)
	DeleteDraft(ctx context.Context, noteID string) error
}
