package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-notes/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService signs the user in against the server and remembers the
// session on this device.
type ClientAuthService interface {
	SignIn(ctx context.Context, email, password string) (models.User, error)
	SignUp(ctx context.Context, email, password string) (models.User, error)

	// RestoreSession reuses the remembered token. It returns
	// store.ErrLocalSessionNotFound when nobody is signed in.
	RestoreSession(ctx context.Context) (models.Session, error)
	SignOut(ctx context.Context) error
}

// ClientNoteService is the client view of notes. Server errors come back as
// the service and store sentinels.
type ClientNoteService interface {
	List(ctx context.Context) ([]models.Note, error)
	Get(ctx context.Context, noteID string) (models.Note, error)
	Create(ctx context.Context, content models.NoteContent) (models.Note, error)
	Update(ctx context.Context, noteID string, content models.NoteContent) (models.Note, error)
	Delete(ctx context.Context, noteID string) error

	Share(ctx context.Context, noteID string) (models.Note, error)
	SetPublicEdit(ctx context.Context, noteID string, allow bool) (models.Note, error)
	StopSharing(ctx context.Context, noteID string) (models.Note, error)

	// ShareLink returns the browser link of a shared note, or "" for a
	// private one.
	ShareLink(note models.Note) string

	GetShared(ctx context.Context, token string) (models.Note, error)
	UpdateShared(ctx context.Context, token string, content models.NoteContent) (models.Note, error)

	SaveDraft(ctx context.Context, draft models.Draft) error
	GetDraft(ctx context.Context, noteID string) (models.Draft, error)
	ListDrafts(ctx context.Context) ([]models.Draft, error)
	DiscardDraft(ctx context.Context, noteID string) error
}

// ImportExportService moves notes between the server and local files.
type ImportExportService interface {
	Import(ctx context.Context, pattern string) (models.ImportReport, error)
	Export(ctx context.Context, dir string) ([]string, error)
}

// NoteWatcher mirrors a local file into a note while the file changes.
type NoteWatcher interface {
	Watch(ctx context.Context, noteID, path string) error
}

// DraftFlushJob periodically retries drafts left behind by failed saves.
type DraftFlushJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
