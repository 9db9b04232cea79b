package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-notes/internal/app"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/utils"
	"github.com/MKhiriev/go-notes/models"
)

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	notes, err := h.services.NoteService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "*Handler.listNotes", err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var content models.NoteContent
	if !readBody(w, r, "*Handler.createNote", &content) {
		return
	}

	note, err := h.services.NoteService.Create(r.Context(), userID, content)
	if err != nil {
		writeServiceError(w, r, "*Handler.createNote", err)
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	note, err := h.services.NoteService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "*Handler.getNote", err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var content models.NoteContent
	if !readBody(w, r, "*Handler.updateNote", &content) {
		return
	}

	note, err := h.services.NoteService.Update(r.Context(), userID, chi.URLParam(r, "id"), content)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateNote", err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.services.NoteService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, "*Handler.deleteNote", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) shareNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	note, err := h.services.NoteService.Share(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "*Handler.shareNote", err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) setPublicEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var settings models.ShareSettings
	if !readBody(w, r, "*Handler.setPublicEdit", &settings) {
		return
	}

	note, err := h.services.NoteService.SetPublicEdit(r.Context(), userID, chi.URLParam(r, "id"), settings.AllowPublicEdit)
	if err != nil {
		writeServiceError(w, r, "*Handler.setPublicEdit", err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) stopSharing(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	note, err := h.services.NoteService.StopSharing(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "*Handler.stopSharing", err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

// userID returns the authenticated user or answers 401.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no user id in request context")
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}
	return userID, ok
}

// maxRequestBodyBytes bounds a JSON body. It leaves room for a note at the
// content limit with every byte escaped.
const maxRequestBodyBytes = 8 << 20

func readBody(w http.ResponseWriter, r *http.Request, fn string, v any) bool {
	if err := utils.ReadJSON(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes), v); err != nil {
		if tooLarge(err) {
			logger.FromRequest(r).Warn().Str("func", fn).Msg("request body is too large")
			utils.WriteError(w, app.MsgContentTooLarge, http.StatusBadRequest)
			return false
		}
		logger.FromRequest(r).Err(err).Str("func", fn).Msg("invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
