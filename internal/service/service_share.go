package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/models"
)

type shareService struct {
	noteRepository store.NoteRepository
	renderer       MarkdownRenderer
	events         NoteEventPublisher

	logger *logger.Logger
}

func NewShareService(noteRepository store.NoteRepository, renderer MarkdownRenderer, events NoteEventPublisher, logger *logger.Logger) ShareService {
	return &shareService{
		noteRepository: noteRepository,
		renderer:       renderer,
		events:         events,
		logger:         logger,
	}
}

// Get resolves a share token to its public note. The owner is stripped from
// the result.
func (s *shareService) Get(ctx context.Context, token string) (models.Note, error) {
	if token == "" {
		return models.Note{}, ErrNoteNotShared
	}

	note, err := s.noteRepository.GetSharedNote(ctx, token)
	if errors.Is(err, store.ErrNoteNotFound) {
		return models.Note{}, ErrNoteNotShared
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("error getting shared note: %w", err)
	}

	return note.Anonymous(), nil
}

// Update changes a shared note through its link. The note must allow public
// editing. The size limits of owner edits apply.
func (s *shareService) Update(ctx context.Context, token string, content models.NoteContent) (models.Note, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(content.Title) == "" || strings.TrimSpace(content.Content) == "" {
		return models.Note{}, ErrEmptyNote
	}
	if err := validateContent(content); err != nil {
		return models.Note{}, err
	}

	current, err := s.Get(ctx, token)
	if err != nil {
		return models.Note{}, err
	}
	if !current.AllowPublicEdit {
		log.Info().Str("note_id", current.ID).Msg("public edit rejected")
		return models.Note{}, ErrPublicEditNotAllowed
	}

	note, err := s.noteRepository.UpdateSharedNoteContent(ctx, token, content)
	if errors.Is(err, store.ErrNoteNotFound) {
		// permission or sharing was revoked in between
		return models.Note{}, ErrPublicEditNotAllowed
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("error updating shared note: %w", err)
	}

	note = note.Anonymous()
	if s.events != nil {
		s.events.Publish(models.NoteEvent{Type: models.NoteUpdated, Note: note})
	}

	return note, nil
}

// Render returns the shared note together with its content rendered to HTML.
func (s *shareService) Render(ctx context.Context, token string) (models.Note, string, error) {
	note, err := s.Get(ctx, token)
	if err != nil {
		return models.Note{}, "", err
	}

	html, err := s.renderer.Render(note.Content)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("note_id", note.ID).Msg("error rendering note")
		return models.Note{}, "", fmt.Errorf("error rendering note: %w", err)
	}

	return note, html, nil
}
