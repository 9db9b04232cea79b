// Package tui is the terminal interface of the notes client built on
// bubbletea. A single model switches between the auth, list, note, share,
// editor and shared note screens.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/models"
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}
}

// Run shows the interface until the user quits. A restored session skips
// the auth screen.
func (t *TUI) Run(ctx context.Context, session *models.Session) error {
	model := newAppModel(ctx, t.services, t.buildInfo, session, t.logger)

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}

	if m, ok := final.(appModel); ok && m.quitByUser {
		return ErrUserQuit
	}
	return nil
}
