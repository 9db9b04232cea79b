package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/app"
	"github.com/MKhiriev/go-notes/internal/utils"
	"github.com/MKhiriev/go-notes/models"
)

// getSharedNote serves a public note to anonymous viewers. The response
// carries an ETag so that polling viewers get 304 while nothing changed.
func (h *Handler) getSharedNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.services.ShareService.Get(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeServiceError(w, r, "*Handler.getSharedNote", err)
		return
	}

	if writeNotModified(w, r, note) {
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

// updateSharedNote applies an edit made through a share link. Owners have
// to allow public editing first.
func (h *Handler) updateSharedNote(w http.ResponseWriter, r *http.Request) {
	var content models.NoteContent
	if !readBody(w, r, "*Handler.updateSharedNote", &content) {
		return
	}

	note, err := h.services.ShareService.Update(r.Context(), chi.URLParam(r, "token"), content)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateSharedNote", err)
		return
	}

	w.Header().Set("ETag", noteETag(note))
	utils.WriteJSON(w, note, http.StatusOK)
}

// streamSharedNote upgrades to a WebSocket that pushes every change of the
// shared note until it is unshared or deleted.
func (h *Handler) streamSharedNote(w http.ResponseWriter, r *http.Request) {
	if h.streamer == nil {
		notFound(w)
		return
	}

	if err := h.streamer.Serve(w, r, chi.URLParam(r, "token")); err != nil {
		writeServiceError(w, r, "*Handler.streamSharedNote", err)
	}
}

// sharePage renders the shared note as a standalone HTML page.
func (h *Handler) sharePage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	token := chi.URLParam(r, "token")

	note, body, err := h.services.ShareService.Render(r.Context(), token)
	if err != nil {
		status := statusFromError(err)
		log.Warn().Err(err).Str("func", "*Handler.sharePage").Int("status", status).Send()

		msg := app.MsgNoteNotShared
		if status >= http.StatusInternalServerError {
			msg = http.StatusText(status)
		}
		h.writePage(w, r, status, sharePageData{Title: msg, Missing: true})
		return
	}

	if writeNotModified(w, r, note) {
		return
	}

	h.writePage(w, r, http.StatusOK, newSharePageData(note, body, token))
}

func noteETag(note models.Note) string {
	return utils.ContentETag(note.Title, note.Content, note.AllowPublicEdit)
}

// writeNotModified sets the ETag of note and answers 304 when the client
// already holds this revision.
func writeNotModified(w http.ResponseWriter, r *http.Request, note models.Note) bool {
	etag := noteETag(note)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")

	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}
