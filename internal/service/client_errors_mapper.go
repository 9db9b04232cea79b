package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-notes/internal/adapter"
	"github.com/MKhiriev/go-notes/internal/app"
	"github.com/MKhiriev/go-notes/internal/store"
)

// mapAdapterError restores the typed error behind a server response from its
// status sentinel and {"error"} message. Transport errors are returned as is.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		msg := messageOf(err, adapter.ErrBadRequest)
		switch msg {
		case app.MsgEmptyNote:
			return ErrEmptyNote
		case app.MsgTitleTooLong:
			return ErrTitleTooLong
		case app.MsgContentTooLarge:
			return ErrContentTooLarge
		case app.MsgIntegrityCheckFailed:
			return ErrIntegrityCheckFailed
		}
		if detail, ok := strings.CutPrefix(msg, app.MsgInvalidDataProvided+": "); ok {
			return fmt.Errorf("%w: %s", ErrInvalidDataProvided, detail)
		}
		return ErrInvalidDataProvided

	case errors.Is(err, adapter.ErrUnauthorized):
		if messageOf(err, adapter.ErrUnauthorized) == app.MsgWrongEmailPassword {
			return ErrWrongPassword
		}
		return ErrTokenIsExpiredOrInvalid

	case errors.Is(err, adapter.ErrForbidden):
		return ErrPublicEditNotAllowed

	case errors.Is(err, adapter.ErrNotFound):
		switch messageOf(err, adapter.ErrNotFound) {
		case app.MsgNoteNotShared:
			return ErrNoteNotShared
		case app.MsgUserNotFound:
			return store.ErrNoUserWasFound
		default:
			return store.ErrNoteNotFound
		}

	case errors.Is(err, adapter.ErrConflict):
		switch messageOf(err, adapter.ErrConflict) {
		case app.MsgEmailAlreadyExists:
			return store.ErrEmailAlreadyExists
		case app.MsgNoteIsPrivate:
			return store.ErrNoteNotShared
		}
	}

	return err
}

// messageOf strips the sentinel prefix that the adapter puts in front of the
// server message.
func messageOf(err, sentinel error) string {
	msg := err.Error()
	if idx := strings.Index(msg, sentinel.Error()+": "); idx != -1 {
		return msg[idx+len(sentinel.Error())+2:]
	}
	return msg
}
