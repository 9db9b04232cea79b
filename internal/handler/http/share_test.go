package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/realtime"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/internal/utils"
	"github.com/MKhiriev/go-notes/models"
)

func sharedNote(allowEdit bool) models.Note {
	n := sampleNote().Anonymous()
	n.IsPublic = true
	n.ShareToken = strPtr("tok")
	n.AllowPublicEdit = allowEdit
	return n
}

func shareServiceFor(note models.Note) *mockShareService {
	return &mockShareService{
		getFn: func(_ context.Context, token string) (models.Note, error) {
			if token != note.Token() {
				return models.Note{}, service.ErrNoteNotShared
			}
			return note, nil
		},
		renderFn: func(_ context.Context, token string) (models.Note, string, error) {
			if token != note.Token() {
				return models.Note{}, "", service.ErrNoteNotShared
			}
			return note, "<ul>\n<li>milk</li>\n</ul>\n", nil
		},
	}
}

// ─────────────────────────────────────────────
// GET /api/share/{token}
// ─────────────────────────────────────────────

func TestGetSharedNote(t *testing.T) {
	note := sharedNote(false)
	router := newTestHandler(&service.Services{ShareService: shareServiceFor(note)}).Init()

	rec := doRequest(router, http.MethodGet, "/api/share/tok", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, utils.ContentETag(note.Title, note.Content, false), rec.Header().Get("ETag"))

	var got models.Note
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, note.Title, got.Title)
	assert.Zero(t, got.UserID)
}

func TestGetSharedNote_NotModified(t *testing.T) {
	note := sharedNote(false)
	router := newTestHandler(&service.Services{ShareService: shareServiceFor(note)}).Init()
	etag := utils.ContentETag(note.Title, note.Content, note.AllowPublicEdit)

	rec := doRequest(router, http.MethodGet, "/api/share/tok", "", map[string]string{"If-None-Match": etag})

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGetSharedNote_StaleETag(t *testing.T) {
	note := sharedNote(true)
	router := newTestHandler(&service.Services{ShareService: shareServiceFor(note)}).Init()
	stale := utils.ContentETag(note.Title, note.Content, false)

	rec := doRequest(router, http.MethodGet, "/api/share/tok", "", map[string]string{"If-None-Match": stale})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSharedNote_UnknownToken(t *testing.T) {
	router := newTestHandler(&service.Services{ShareService: shareServiceFor(sharedNote(false))}).Init()

	rec := doRequest(router, http.MethodGet, "/api/share/other", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "note not found or not shared", decodeError(t, rec))
}

// ─────────────────────────────────────────────
// PUT /api/share/{token}
// ─────────────────────────────────────────────

func TestUpdateSharedNote(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "allowed", wantStatus: http.StatusOK},
		{name: "edit not allowed", err: service.ErrPublicEditNotAllowed, wantStatus: http.StatusForbidden},
		{name: "not shared", err: service.ErrNoteNotShared, wantStatus: http.StatusNotFound},
		{name: "blank", err: service.ErrEmptyNote, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := &mockShareService{
				updateFn: func(_ context.Context, token string, content models.NoteContent) (models.Note, error) {
					assert.Equal(t, "tok", token)
					if tt.err != nil {
						return models.Note{}, tt.err
					}
					n := sharedNote(true)
					n.Title, n.Content = content.Title, content.Content
					return n, nil
				},
			}
			router := newTestHandler(&service.Services{ShareService: shares}).Init()

			rec := doRequest(router, http.MethodPut, "/api/share/tok", `{"title":"T","content":"C"}`, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				assert.Equal(t, utils.ContentETag("T", "C", true), rec.Header().Get("ETag"))
			}
		})
	}
}

func TestUpdateSharedNote_BodyTooLarge(t *testing.T) {
	shares := &mockShareService{
		updateFn: func(context.Context, string, models.NoteContent) (models.Note, error) {
			t.Fatal("oversized body must not reach the service")
			return models.Note{}, nil
		},
	}
	router := newTestHandler(&service.Services{ShareService: shares}).Init()

	body := `{"title":"T","content":"` + strings.Repeat("a", maxRequestBodyBytes) + `"}`
	rec := doRequest(router, http.MethodPut, "/api/share/tok", body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "content is too large", decodeError(t, rec))
}

// ─────────────────────────────────────────────
// GET /s/{token}
// ─────────────────────────────────────────────

func TestSharePage(t *testing.T) {
	note := sharedNote(true)
	note.Title = "<Groceries>"
	router := newTestHandler(&service.Services{ShareService: shareServiceFor(note)}).Init()

	rec := doRequest(router, http.MethodGet, "/s/tok", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "&lt;Groceries&gt;")
	assert.Contains(t, body, "<li>milk</li>")
	assert.Contains(t, body, "anyone with the link can edit")
	assert.Contains(t, body, "/api/share/tok/ws")
}

func TestSharePage_NotShared(t *testing.T) {
	router := newTestHandler(&service.Services{ShareService: shareServiceFor(sharedNote(false))}).Init()

	rec := doRequest(router, http.MethodGet, "/s/missing", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "note not found or not shared")
	assert.NotContains(t, rec.Body.String(), "<article>")
}

// ─────────────────────────────────────────────
// GET /api/share/{token}/ws
// ─────────────────────────────────────────────

func TestStreamSharedNote(t *testing.T) {
	note := sharedNote(false)
	hub := realtime.NewHub(4, logger.Nop())
	defer hub.Close()

	shares := shareServiceFor(note)
	svcs := &service.Services{
		AuthService:    &mockAuthService{},
		NoteService:    &mockNoteService{},
		ShareService:   shares,
		AppInfoService: &mockAppInfoService{version: "v"},
	}
	h := NewHandler(svcs, realtime.NewStreamer(hub, shares), config.App{}, logger.Nop())

	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/share/tok/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Accept-Encoding": []string{"gzip"}})
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers(note.ID) == 1 }, time.Second, 10*time.Millisecond)

	updated := note
	updated.Content = "- bread"
	hub.Publish(models.NoteEvent{Type: models.NoteUpdated, Note: updated})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event models.NoteEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, models.NoteUpdated, event.Type)
	assert.Equal(t, "- bread", event.Note.Content)
}

func TestStreamSharedNote_UnknownToken(t *testing.T) {
	hub := realtime.NewHub(4, logger.Nop())
	defer hub.Close()

	shares := shareServiceFor(sharedNote(false))
	h := NewHandler(&service.Services{ShareService: shares}, realtime.NewStreamer(hub, shares), config.App{}, logger.Nop())

	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/share/nope/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamSharedNote_NoStreamer(t *testing.T) {
	router := newTestHandler(&service.Services{ShareService: shareServiceFor(sharedNote(false))}).Init()

	rec := doRequest(router, http.MethodGet, "/api/share/tok/ws", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
