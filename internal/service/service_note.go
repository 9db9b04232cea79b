// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

// shareTokenAttempts bounds token regeneration on a unique index collision.
const shareTokenAttempts = 2

type noteService struct {
	noteRepository store.NoteRepository
	ids            IDGenerator
	tokens         TokenGenerator
	events         NoteEventPublisher

	logger *logger.Logger
}

// NewNoteService builds the owner-side NoteService. events may be nil, in
// which case live viewers are not notified.
func NewNoteService(noteRepository store.NoteRepository, ids IDGenerator, tokens TokenGenerator, events NoteEventPublisher, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		ids:            ids,
		tokens:         tokens,
		events:         events,
		logger:         logger,
	}
}

// Create trims title and content and inserts the note. Both must be
// non-blank.
func (s *noteService) Create(ctx context.Context, userID int64, content models.NoteContent) (models.Note, error) {
	log := logger.FromContext(ctx)

	note := models.Note{
		ID:      s.ids.Generate(),
		UserID:  userID,
		Title:   strings.TrimSpace(content.Title),
		Content: strings.TrimSpace(content.Content),
	}
	if note.Title == "" || note.Content == "" {
		return models.Note{}, ErrEmptyNote
	}

	created, err := s.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Str("func", "*noteService.Create").Int64("user_id", userID).Msg("error creating note")
		return models.Note{}, fmt.Errorf("error creating note: %w", err)
	}

	log.Info().Str("note_id", created.ID).Int64("user_id", userID).Msg("note created")
	return created, nil
}

func (s *noteService) List(ctx context.Context, userID int64) ([]models.Note, error) {
	notes, err := s.noteRepository.ListNotes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	return notes, nil
}

func (s *noteService) Get(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	note, err := s.noteRepository.GetNote(ctx, userID, noteID)
	if err != nil {
		return models.Note{}, fmt.Errorf("error getting note: %w", err)
	}

	return note, nil
}

// Update stores title and content as given. Blank values are rejected.
func (s *noteService) Update(ctx context.Context, userID int64, noteID string, content models.NoteContent) (models.Note, error) {
	if strings.TrimSpace(content.Title) == "" || strings.TrimSpace(content.Content) == "" {
		return models.Note{}, ErrEmptyNote
	}

	note, err := s.noteRepository.UpdateNoteContent(ctx, userID, noteID, content)
	if err != nil {
		return models.Note{}, fmt.Errorf("error updating note: %w", err)
	}

	if note.IsShared() {
		s.publish(models.NoteUpdated, note)
	}

	return note, nil
}

func (s *noteService) Delete(ctx context.Context, userID int64, noteID string) error {
	note, err := s.noteRepository.GetNote(ctx, userID, noteID)
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}

	if err := s.noteRepository.DeleteNote(ctx, userID, noteID); err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}

	if note.IsShared() {
		s.publish(models.NoteDeleted, note)
	}

	logger.FromContext(ctx).Info().Str("note_id", noteID).Msg("note deleted")
	return nil
}

// Share makes the note public. An already shared note keeps its token, so
// links handed out earlier stay valid.
func (s *noteService) Share(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := s.noteRepository.GetNote(ctx, userID, noteID)
	if err != nil {
		return models.Note{}, fmt.Errorf("error sharing note: %w", err)
	}
	if note.IsShared() {
		return note, nil
	}

	for range shareTokenAttempts {
		token, genErr := s.tokens.Generate()
		if genErr != nil {
			return models.Note{}, fmt.Errorf("%w: %w", ErrShareTokenGeneration, genErr)
		}

		shared, setErr := s.noteRepository.SetSharing(ctx, userID, noteID, true, &token, false)
		if errors.Is(setErr, store.ErrShareTokenConflict) {
			log.Warn().Str("note_id", noteID).Msg("share token collision, regenerating")
			continue
		}
		if setErr != nil {
			return models.Note{}, fmt.Errorf("error sharing note: %w", setErr)
		}

		log.Info().Str("note_id", noteID).Msg("note shared")
		return shared, nil
	}

	return models.Note{}, ErrShareTokenGeneration
}

func (s *noteService) SetPublicEdit(ctx context.Context, userID int64, noteID string, allow bool) (models.Note, error) {
	note, err := s.noteRepository.SetPublicEdit(ctx, userID, noteID, allow)
	if err != nil {
		return models.Note{}, fmt.Errorf("error changing public edit: %w", err)
	}

	s.publish(models.NoteUpdated, note)
	return note, nil
}

// StopSharing makes the note private again: the public flag, the token and
// the public edit flag are cleared together. Live viewers get an "unshared"
// event.
func (s *noteService) StopSharing(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	before, err := s.noteRepository.GetNote(ctx, userID, noteID)
	if err != nil {
		return models.Note{}, fmt.Errorf("error stopping sharing: %w", err)
	}

	note, err := s.noteRepository.SetSharing(ctx, userID, noteID, false, nil, false)
	if err != nil {
		return models.Note{}, fmt.Errorf("error stopping sharing: %w", err)
	}

	if before.IsShared() {
		s.publish(models.NoteUnshared, note)
		logger.FromContext(ctx).Info().Str("note_id", noteID).Msg("note unshared")
	}

	return note, nil
}

func (s *noteService) publish(eventType models.NoteEventType, note models.Note) {
	if s.events == nil {
		return
	}
	s.events.Publish(models.NoteEvent{Type: eventType, Note: note.Anonymous()})
}
