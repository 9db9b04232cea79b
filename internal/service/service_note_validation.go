package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/go-notes/internal/utils"
	"github.com/MKhiriev/go-notes/models"
)

const (
	maxTitleRunes   = 500
	maxContentBytes = 1 << 20
)

// NoteValidationService checks identifiers and sizes before a call reaches
// the wrapped NoteService.
type NoteValidationService struct {
	inner NoteService
}

func NewNoteValidationService() NoteServiceWrapper {
	return &NoteValidationService{}
}

func (v *NoteValidationService) Wrap(inner NoteService) NoteService {
	v.inner = inner
	return v
}

func validateUserID(userID int64) error {
	if userID <= 0 {
		return ErrNoUserID
	}
	return nil
}

func validateNoteID(noteID string) error {
	if !utils.IsUUID(noteID) {
		return fmt.Errorf("%w: %q", ErrInvalidNoteID, noteID)
	}
	return nil
}

func validateContent(content models.NoteContent) error {
	if utf8.RuneCountInString(content.Title) > maxTitleRunes {
		return ErrTitleTooLong
	}
	if len(content.Content) > maxContentBytes {
		return ErrContentTooLarge
	}
	return nil
}

func validateOwnerCall(userID int64, noteID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	return validateNoteID(noteID)
}

func (v *NoteValidationService) Create(ctx context.Context, userID int64, content models.NoteContent) (models.Note, error) {
	if err := validateUserID(userID); err != nil {
		return models.Note{}, err
	}
	if err := validateContent(content); err != nil {
		return models.Note{}, err
	}

	return v.inner.Create(ctx, userID, content)
}

func (v *NoteValidationService) List(ctx context.Context, userID int64) ([]models.Note, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	return v.inner.List(ctx, userID)
}

func (v *NoteValidationService) Get(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	if err := validateOwnerCall(userID, noteID); err != nil {
		return models.Note{}, err
	}

	return v.inner.Get(ctx, userID, noteID)
}

func (v *NoteValidationService) Update(ctx context.Context, userID int64, noteID string, content models.NoteContent) (models.Note, error) {
	if err := validateOwnerCall(userID, noteID); err != nil {
		return models.Note{}, err
	}
	if err := validateContent(content); err != nil {
		return models.Note{}, err
	}

	return v.inner.Update(ctx, userID, noteID, content)
}

func (v *NoteValidationService) Delete(ctx context.Context, userID int64, noteID string) error {
	if err := validateOwnerCall(userID, noteID); err != nil {
		return err
	}

	return v.inner.Delete(ctx, userID, noteID)
}

func (v *NoteValidationService) Share(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	if err := validateOwnerCall(userID, noteID); err != nil {
		return models.Note{}, err
	}

	return v.inner.Share(ctx, userID, noteID)
}

func (v *NoteValidationService) SetPublicEdit(ctx context.Context, userID int64, noteID string, allow bool) (models.Note, error) {
	if err := validateOwnerCall(userID, noteID); err != nil {
		return models.Note{}, err
	}

	return v.inner.SetPublicEdit(ctx, userID, noteID, allow)
}

func (v *NoteValidationService) StopSharing(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	if err := validateOwnerCall(userID, noteID); err != nil {
		return models.Note{}, err
	}

	return v.inner.StopSharing(ctx, userID, noteID)
}
