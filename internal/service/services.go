package service

import (
	"fmt"

	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/internal/utils"
)

type Services struct {
	AuthService    AuthService
	NoteService    NoteService
	ShareService   ShareService
	AppInfoService AppInfoService

	// Pinger reports storage health for /api/ping.
	Pinger store.Pinger
}

// NewServices wires the server services. events receives live note changes,
// renderer is used for the HTML share page.
func NewServices(storages *store.Storages, events NoteEventPublisher, renderer MarkdownRenderer, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	noteService := NewNoteService(
		storages.NoteRepository,
		utils.NewUUIDGenerator(),
		utils.NewShareTokenGenerator(),
		events,
		logger,
	)

	services := &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		NoteService:    NewNoteValidationService().Wrap(noteService),
		ShareService:   NewShareService(storages.NoteRepository, renderer, events, logger),
		AppInfoService: appInfo,
	}
	if storages.DB != nil {
		services.Pinger = storages.DB
	}

	return services, nil
}
