// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime fans note changes out to anonymous viewers of share
// links over WebSocket.
package realtime

import (
	"sync"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/models"
)

const defaultBuffer = 16

type subscriber struct {
	ch     chan models.NoteEvent
	closed bool
}

// Hub routes note events to subscribers by note id. Publish never blocks:
// a subscriber whose buffer is full is dropped and its channel closed.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[*subscriber]struct{}
	buffer int
	closed bool

	logger *logger.Logger
}

func NewHub(buffer int, logger *logger.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	return &Hub{
		subs:   make(map[string]map[*subscriber]struct{}),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe returns a channel of events for noteID and a function that
// cancels the subscription. The channel is closed after a terminal event,
// after cancel, when the subscriber is dropped and on Close.
func (h *Hub) Subscribe(noteID string) (<-chan models.NoteEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := &subscriber{ch: make(chan models.NoteEvent, h.buffer)}
	if h.closed {
		close(s.ch)
		return s.ch, func() {}
	}

	if h.subs[noteID] == nil {
		h.subs[noteID] = make(map[*subscriber]struct{})
	}
	h.subs[noteID][s] = struct{}{}

	return s.ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.remove(noteID, s)
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(noteID string, s *subscriber) {
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	if set, ok := h.subs[noteID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, noteID)
		}
	}
}

func (h *Hub) Publish(event models.NoteEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	noteID := event.Note.ID
	for s := range h.subs[noteID] {
		select {
		case s.ch <- event:
		default:
			h.logger.Warn().Str("note_id", noteID).Msg("dropping slow share viewer")
			h.remove(noteID, s)
			continue
		}
		if event.Terminal() {
			h.remove(noteID, s)
		}
	}
}

// Subscribers returns the number of live subscriptions for noteID.
func (h *Hub) Subscribers(noteID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs[noteID])
}

// Close ends every subscription. Later subscriptions get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for noteID, set := range h.subs {
		for s := range set {
			h.remove(noteID, s)
		}
	}
}
