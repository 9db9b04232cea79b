package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/mcpserver"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/internal/tui"
	"github.com/MKhiriev/go-notes/internal/workers"
	"github.com/MKhiriev/go-notes/models"
)

type App struct {
	services      *service.ClientServices
	ui            UI
	flushInterval time.Duration
	version       string
	out           io.Writer
	logger        *logger.Logger
}

// NewApp builds the client runtime. Reports of the non-interactive commands
// are written to out.
func NewApp(services *service.ClientServices, ui UI, flushInterval time.Duration, version string, out io.Writer, logger *logger.Logger) *App {
	return &App{
		services:      services,
		ui:            ui,
		flushInterval: flushInterval,
		version:       version,
		out:           out,
		logger:        logger,
	}
}

// Run opens the terminal UI. Drafts left by failed saves are retried in the
// background until the UI is closed.
func (a *App) Run(ctx context.Context) error {
	session, err := a.restoreSession(ctx)
	if err != nil && !errors.Is(err, ErrNotSignedIn) {
		return err
	}

	background := workers.New(workers.Every(a.services.DraftFlushJob, a.flushInterval))
	background.Start(ctx)
	defer background.Stop()

	if err = a.ui.Run(ctx, session); err != nil && !errors.Is(err, tui.ErrUserQuit) {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// Import creates a note from every file matching pattern.
func (a *App) Import(ctx context.Context, pattern string) error {
	if _, err := a.restoreSession(ctx); err != nil {
		return err
	}

	report, err := a.services.ImportExportService.Import(ctx, pattern)
	if err != nil {
		return fmt.Errorf("import %s: %w", pattern, err)
	}

	for _, note := range report.Created {
		fmt.Fprintf(a.out, "created %s  %s\n", note.ID, titleOrUntitled(note.Title))
	}
	for _, skip := range report.Skipped {
		fmt.Fprintf(a.out, "skipped %s: %s\n", skip.Path, skip.Reason)
	}
	fmt.Fprintf(a.out, "imported %d of %d files\n", len(report.Created), len(report.Created)+len(report.Skipped))
	return nil
}

// Export writes every note into dir as a markdown file.
func (a *App) Export(ctx context.Context, dir string) error {
	if _, err := a.restoreSession(ctx); err != nil {
		return err
	}

	paths, err := a.services.ImportExportService.Export(ctx, dir)
	if err != nil {
		return fmt.Errorf("export to %s: %w", dir, err)
	}

	for _, path := range paths {
		fmt.Fprintln(a.out, path)
	}
	fmt.Fprintf(a.out, "exported %d notes\n", len(paths))
	return nil
}

// Watch mirrors the file at path into the note until ctx is cancelled.
func (a *App) Watch(ctx context.Context, noteID, path string) error {
	if _, err := a.restoreSession(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "watching %s, press ctrl+c to stop\n", path)
	if err := a.services.Watcher.Watch(ctx, noteID, path); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// ServeMCP answers MCP tool calls on in and out until ctx is cancelled.
func (a *App) ServeMCP(ctx context.Context, in io.Reader, out io.Writer) error {
	if _, err := a.restoreSession(ctx); err != nil {
		return err
	}

	return mcpserver.Serve(ctx, mcpserver.New(a.services.NoteService, a.version, a.logger), in, out)
}

// PrintPushes returns a listener that reports every push made by the
// watcher to w.
func PrintPushes(w io.Writer) service.PushListener {
	return func(note models.Note, err error) {
		if err != nil {
			fmt.Fprintf(w, "%s  push failed, kept as draft: %v\n", time.Now().Format(time.TimeOnly), err)
			return
		}
		fmt.Fprintf(w, "%s  saved %s\n", time.Now().Format(time.TimeOnly), titleOrUntitled(note.Title))
	}
}

// restoreSession returns ErrNotSignedIn when there is no usable session.
func (a *App) restoreSession(ctx context.Context) (*models.Session, error) {
	session, err := a.services.AuthService.RestoreSession(ctx)
	switch {
	case err == nil:
		return &session, nil
	case errors.Is(err, store.ErrLocalSessionNotFound), errors.Is(err, service.ErrSessionExpired):
		a.logger.Debug().Err(err).Str("func", "*App.restoreSession").Msg("no session to restore")
		return nil, ErrNotSignedIn
	default:
		return nil, fmt.Errorf("restore session: %w", err)
	}
}

func titleOrUntitled(title string) string {
	if title == "" {
		return "untitled"
	}
	return title
}
