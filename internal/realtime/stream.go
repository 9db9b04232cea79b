package realtime

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/models"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// NoteResolver finds the shared note behind a token.
type NoteResolver interface {
	Get(ctx context.Context, token string) (models.Note, error)
}

// Streamer upgrades share link viewers to a WebSocket and pushes events of
// the shared note as JSON until the note stops being shared.
type Streamer struct {
	hub      *Hub
	resolver NoteResolver
	upgrader websocket.Upgrader

	pingPeriod time.Duration
}

func NewStreamer(hub *Hub, resolver NoteResolver) *Streamer {
	return &Streamer{
		hub:      hub,
		resolver: resolver,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// share links are public, any origin may watch them
			CheckOrigin: func(*http.Request) bool { return true },
		},
		pingPeriod: pingPeriod,
	}
}

// Serve streams events of the note shared under token. Resolution errors
// are returned before the upgrade so that the caller can map them to a
// status code.
func (s *Streamer) Serve(w http.ResponseWriter, r *http.Request, token string) error {
	log := logger.FromRequest(r)

	note, err := s.resolver.Get(r.Context(), token)
	if err != nil {
		return err
	}

	events, cancel := s.hub.Subscribe(note.ID)
	defer cancel()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		log.Err(err).Str("func", "*Streamer.Serve").Msg("websocket upgrade failed")
		return nil
	}
	defer conn.Close()

	log.Info().Str("note_id", note.ID).Msg("share viewer connected")

	done := make(chan struct{})
	go s.readLoop(conn, done)

	ticker := time.NewTicker(s.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return nil
		case <-r.Context().Done():
			return nil
		case event, ok := <-events:
			if !ok {
				closeWith(conn, websocket.CloseGoingAway, "")
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				log.Debug().Err(err).Msg("share viewer write failed")
				return nil
			}
			if event.Terminal() {
				closeWith(conn, websocket.CloseNormalClosure, string(event.Type))
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}

// readLoop discards client messages and keeps the read deadline fresh on
// pongs. It closes done when the connection goes away.
func (s *Streamer) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
