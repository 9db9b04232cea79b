package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-notes/models"
)

// ─────────────────────────────────────────────
// Mock: store.NoteRepository
// ─────────────────────────────────────────────

type mockNoteRepository struct {
	createFn        func(ctx context.Context, note models.Note) (models.Note, error)
	getFn           func(ctx context.Context, userID int64, noteID string) (models.Note, error)
	listFn          func(ctx context.Context, userID int64) ([]models.Note, error)
	updateFn        func(ctx context.Context, userID int64, noteID string, content models.NoteContent) (models.Note, error)
	deleteFn        func(ctx context.Context, userID int64, noteID string) error
	setSharingFn    func(ctx context.Context, userID int64, noteID string, isPublic bool, token *string, allow bool) (models.Note, error)
	setPublicEditFn func(ctx context.Context, userID int64, noteID string, allow bool) (models.Note, error)
	getSharedFn     func(ctx context.Context, token string) (models.Note, error)
	updateSharedFn  func(ctx context.Context, token string, content models.NoteContent) (models.Note, error)
}

func (m *mockNoteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if m.createFn != nil {
		return m.createFn(ctx, note)
	}
	return note, nil
}

func (m *mockNoteRepository) GetNote(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, noteID)
	}
	return models.Note{ID: noteID, UserID: userID}, nil
}

func (m *mockNoteRepository) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return []models.Note{}, nil
}

func (m *mockNoteRepository) UpdateNoteContent(ctx context.Context, userID int64, noteID string, content models.NoteContent) (models.Note, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, noteID, content)
	}
	return models.Note{ID: noteID, UserID: userID, Title: content.Title, Content: content.Content}, nil
}

func (m *mockNoteRepository) DeleteNote(ctx context.Context, userID int64, noteID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, noteID)
	}
	return nil
}

func (m *mockNoteRepository) SetSharing(ctx context.Context, userID int64, noteID string, isPublic bool, token *string, allow bool) (models.Note, error) {
	if m.setSharingFn != nil {
		return m.setSharingFn(ctx, userID, noteID, isPublic, token, allow)
	}
	return models.Note{ID: noteID, UserID: userID, IsPublic: isPublic, ShareToken: token, AllowPublicEdit: allow}, nil
}

func (m *mockNoteRepository) SetPublicEdit(ctx context.Context, userID int64, noteID string, allow bool) (models.Note, error) {
	if m.setPublicEditFn != nil {
		return m.setPublicEditFn(ctx, userID, noteID, allow)
	}
	return models.Note{ID: noteID, UserID: userID, AllowPublicEdit: allow}, nil
}

func (m *mockNoteRepository) GetSharedNote(ctx context.Context, token string) (models.Note, error) {
	if m.getSharedFn != nil {
		return m.getSharedFn(ctx, token)
	}
	return models.Note{}, nil
}

func (m *mockNoteRepository) UpdateSharedNoteContent(ctx context.Context, token string, content models.NoteContent) (models.Note, error) {
	if m.updateSharedFn != nil {
		return m.updateSharedFn(ctx, token, content)
	}
	return models.Note{Title: content.Title, Content: content.Content}, nil
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn      func(ctx context.Context, user models.User) (models.User, error)
	findByEmailFn func(ctx context.Context, email string) (models.User, error)
	findByIDFn    func(ctx context.Context, userID int64) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.UserID = 1
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

// ─────────────────────────────────────────────
// Fakes: generators, publisher, renderer
// ─────────────────────────────────────────────

type fixedIDGenerator string

func (g fixedIDGenerator) Generate() string { return string(g) }

type seqTokenGenerator struct {
	tokens []string
	err    error
	calls  int
}

func (g *seqTokenGenerator) Generate() (string, error) {
	if g.err != nil {
		return "", g.err
	}
	tok := g.tokens[g.calls%len(g.tokens)]
	g.calls++
	return tok, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.NoteEvent
}

func (p *recordingPublisher) Publish(event models.NoteEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []models.NoteEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.NoteEvent(nil), p.events...)
}

type stubRenderer struct {
	html string
	err  error
}

func (r stubRenderer) Render(source string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.html != "" {
		return r.html, nil
	}
	return "<p>" + source + "</p>\n", nil
}

func strPtr(s string) *string { return &s }
