package realtime

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnknownToken = errors.New("unknown token")

type resolverFunc func(ctx context.Context, token string) (models.Note, error)

func (f resolverFunc) Get(ctx context.Context, token string) (models.Note, error) {
	return f(ctx, token)
}

func newStreamServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	streamer := NewStreamer(hub, resolverFunc(func(_ context.Context, token string) (models.Note, error) {
		if token != "tok" {
			return models.Note{}, errUnknownToken
		}
		return models.Note{ID: "note-1"}, nil
	}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.URL.Path, "/")
		if err := streamer.Serve(w, r, token); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func dial(t *testing.T, srv *httptest.Server, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func TestStreamer_PushesEventsUntilTerminal(t *testing.T) {
	hub := NewHub(4, logger.Nop())
	srv := newStreamServer(t, hub)

	conn, _, err := dial(t, srv, "tok")
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("note-1") == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish(models.NoteEvent{Type: models.NoteUpdated, Note: models.Note{ID: "note-1", Title: "fresh"}})
	hub.Publish(models.NoteEvent{Type: models.NoteDeleted, Note: models.Note{ID: "note-1"}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var got models.NoteEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, models.NoteUpdated, got.Type)
	assert.Equal(t, "fresh", got.Note.Title)

	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, models.NoteDeleted, got.Type)

	_, _, err = conn.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.CloseNormalClosure, closeErr.Code)
}

func TestStreamer_UnknownTokenIsNotUpgraded(t *testing.T) {
	hub := NewHub(4, logger.Nop())
	srv := newStreamServer(t, hub)

	_, resp, err := dial(t, srv, "nope")

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamer_DisconnectUnsubscribes(t *testing.T) {
	hub := NewHub(4, logger.Nop())
	srv := newStreamServer(t, hub)

	conn, _, err := dial(t, srv, "tok")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Subscribers("note-1") == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("note-1") == 0 }, 2*time.Second, 10*time.Millisecond)
}
