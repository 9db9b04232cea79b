package service

import (
	"github.com/MKhiriev/go-notes/internal/adapter"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/store"
)

type ClientServices struct {
	AuthService         ClientAuthService
	NoteService         ClientNoteService
	ImportExportService ImportExportService
	Watcher             NoteWatcher
	DraftFlushJob       DraftFlushJob
}

// NewClientServices wires the client services. listener receives the result
// of every push made by the watcher and may be nil.
func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, listener PushListener, logger *logger.Logger) *ClientServices {
	notes := NewClientNoteService(serverAdapter, storages.DraftRepository, logger)

	return &ClientServices{
		AuthService:         NewClientAuthService(storages.SessionRepository, serverAdapter, logger),
		NoteService:         notes,
		ImportExportService: NewImportExportService(notes, logger),
		Watcher:             NewNoteWatcher(notes, DefaultWatchDelay, listener, logger),
		DraftFlushJob:       NewDraftFlushJob(notes, logger),
	}
}
