package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-notes/internal/app"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/internal/utils"
)

type errorMapping struct {
	target error
	status int
	// msg is the text sent to clients; empty exposes the status text.
	msg string
}

// errorMappings is matched in order and the first hit wins, so service
// errors take precedence over the store errors they may wrap.
var errorMappings = []errorMapping{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgWrongEmailPassword},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{service.ErrEmptyNote, http.StatusBadRequest, app.MsgEmptyNote},
	{service.ErrTitleTooLong, http.StatusBadRequest, app.MsgTitleTooLong},
	{service.ErrContentTooLarge, http.StatusBadRequest, app.MsgContentTooLarge},
	{service.ErrInvalidNoteID, http.StatusNotFound, app.MsgNoteNotFound},
	{service.ErrNoUserID, http.StatusUnauthorized, ""},
	{service.ErrNoteNotShared, http.StatusNotFound, app.MsgNoteNotShared},
	{service.ErrPublicEditNotAllowed, http.StatusForbidden, app.MsgPublicEditNotAllowed},
	{service.ErrShareTokenGeneration, http.StatusInternalServerError, ""},

	{store.ErrEmailAlreadyExists, http.StatusConflict, app.MsgEmailAlreadyExists},
	{store.ErrNoUserWasFound, http.StatusNotFound, app.MsgUserNotFound},
	{store.ErrNoteNotFound, http.StatusNotFound, app.MsgNoteNotFound},
	{store.ErrNoteNotShared, http.StatusConflict, app.MsgNoteIsPrivate},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError, ""},
	{store.ErrExecutingQuery, http.StatusInternalServerError, ""},
	{store.ErrBeginningTransaction, http.StatusInternalServerError, ""},
	{store.ErrCommitingTransaction, http.StatusInternalServerError, ""},
	{store.ErrExecutingStatement, http.StatusInternalServerError, ""},
	{store.ErrScanningRow, http.StatusInternalServerError, ""},
	{store.ErrScanningRows, http.StatusInternalServerError, ""},
}

func lookupError(err error) (errorMapping, bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m, true
		}
	}
	return errorMapping{}, false
}

func statusFromError(err error) int {
	if m, ok := lookupError(err); ok {
		return m.status
	}
	return http.StatusInternalServerError
}

func messageFromError(err error, status int) string {
	if status < http.StatusInternalServerError {
		// validation errors carry the offending field after the prefix
		if errors.Is(err, service.ErrInvalidDataProvided) {
			if idx := strings.Index(err.Error(), app.MsgInvalidDataProvided); idx != -1 {
				return err.Error()[idx:]
			}
		}
		if m, ok := lookupError(err); ok && m.msg != "" && m.status == status {
			return m.msg
		}
	}
	return http.StatusText(status)
}

// writeServiceError logs err and answers with the mapped status and an
// {"error": "..."} body.
func writeServiceError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Send()

	utils.WriteError(w, messageFromError(err, status), status)
}
