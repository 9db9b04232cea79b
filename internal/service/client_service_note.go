package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes/internal/adapter"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/models"
)

type clientNoteService struct {
	adapter adapter.ServerAdapter
	drafts  store.DraftRepository
	now     func() time.Time

	logger *logger.Logger
}

func NewClientNoteService(serverAdapter adapter.ServerAdapter, drafts store.DraftRepository, logger *logger.Logger) ClientNoteService {
	return &clientNoteService{
		adapter: serverAdapter,
		drafts:  drafts,
		now:     time.Now,
		logger:  logger,
	}
}

func (c *clientNoteService) List(ctx context.Context) ([]models.Note, error) {
	notes, err := c.adapter.ListNotes(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return notes, nil
}

func (c *clientNoteService) Get(ctx context.Context, noteID string) (models.Note, error) {
	note, err := c.adapter.GetNote(ctx, noteID)
	return note, mapAdapterError(err)
}

func (c *clientNoteService) Create(ctx context.Context, content models.NoteContent) (models.Note, error) {
	note, err := c.adapter.CreateNote(ctx, content)
	return note, mapAdapterError(err)
}

func (c *clientNoteService) Update(ctx context.Context, noteID string, content models.NoteContent) (models.Note, error) {
	note, err := c.adapter.UpdateNote(ctx, noteID, content)
	return note, mapAdapterError(err)
}

// Delete removes the note and any draft kept for it.
func (c *clientNoteService) Delete(ctx context.Context, noteID string) error {
	if err := c.adapter.DeleteNote(ctx, noteID); err != nil {
		return mapAdapterError(err)
	}

	if err := c.DiscardDraft(ctx, noteID); err != nil {
		c.logger.Warn().Err(err).Str("func", "*clientNoteService.Delete").Str("note_id", noteID).Msg("draft was not removed")
	}
	return nil
}

func (c *clientNoteService) Share(ctx context.Context, noteID string) (models.Note, error) {
	note, err := c.adapter.ShareNote(ctx, noteID)
	return note, mapAdapterError(err)
}

func (c *clientNoteService) SetPublicEdit(ctx context.Context, noteID string, allow bool) (models.Note, error) {
	note, err := c.adapter.SetPublicEdit(ctx, noteID, allow)
	return note, mapAdapterError(err)
}

func (c *clientNoteService) StopSharing(ctx context.Context, noteID string) (models.Note, error) {
	note, err := c.adapter.StopSharing(ctx, noteID)
	return note, mapAdapterError(err)
}

func (c *clientNoteService) ShareLink(note models.Note) string {
	if !note.IsShared() {
		return ""
	}
	return c.adapter.ShareURL(note.Token())
}

func (c *clientNoteService) GetShared(ctx context.Context, token string) (models.Note, error) {
	note, err := c.adapter.GetSharedNote(ctx, token)
	return note, mapAdapterError(err)
}

func (c *clientNoteService) UpdateShared(ctx context.Context, token string, content models.NoteContent) (models.Note, error) {
	note, err := c.adapter.UpdateSharedNote(ctx, token, content)
	return note, mapAdapterError(err)
}

func (c *clientNoteService) SaveDraft(ctx context.Context, draft models.Draft) error {
	if draft.UpdatedAt.IsZero() {
		draft.UpdatedAt = c.now()
	}
	if err := c.drafts.SaveDraft(ctx, draft); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (c *clientNoteService) GetDraft(ctx context.Context, noteID string) (models.Draft, error) {
	return c.drafts.GetDraft(ctx, noteID)
}

func (c *clientNoteService) ListDrafts(ctx context.Context) ([]models.Draft, error) {
	return c.drafts.ListDrafts(ctx)
}

// DiscardDraft is a no-op when there is no draft.
func (c *clientNoteService) DiscardDraft(ctx context.Context, noteID string) error {
	if err := c.drafts.DeleteDraft(ctx, noteID); err != nil && !errors.Is(err, store.ErrDraftNotFound) {
		return fmt.Errorf("discard draft: %w", err)
	}
	return nil
}
