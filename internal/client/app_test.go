package client

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/mock"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/internal/tui"
	"github.com/MKhiriev/go-notes/models"
)

type fakeUI struct {
	run func(ctx context.Context, session *models.Session) error
}

func (f fakeUI) Run(ctx context.Context, session *models.Session) error {
	return f.run(ctx, session)
}

type testApp struct {
	app     *App
	auth    *mock.MockClientAuthService
	files   *mock.MockImportExportService
	watcher *mock.MockNoteWatcher
	flush   *mock.MockDraftFlushJob
	out     *bytes.Buffer
}

func newTestApp(t *testing.T, ui UI) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)
	ta := &testApp{
		auth:    mock.NewMockClientAuthService(ctrl),
		files:   mock.NewMockImportExportService(ctrl),
		watcher: mock.NewMockNoteWatcher(ctrl),
		flush:   mock.NewMockDraftFlushJob(ctrl),
		out:     &bytes.Buffer{},
	}
	services := &service.ClientServices{
		AuthService:         ta.auth,
		NoteService:         mock.NewMockClientNoteService(ctrl),
		ImportExportService: ta.files,
		Watcher:             ta.watcher,
		DraftFlushJob:       ta.flush,
	}
	ta.app = NewApp(services, ui, time.Minute, "test", ta.out, logger.Nop())
	return ta
}

// ─────────────────────────────────────────────────────────────
// Run
// ─────────────────────────────────────────────────────────────

func TestRun_RestoredSession(t *testing.T) {
	var got *models.Session
	ta := newTestApp(t, fakeUI{run: func(_ context.Context, session *models.Session) error {
		got = session
		return tui.ErrUserQuit
	}})
	ctx := context.Background()
	session := models.Session{Email: "a@b.c", Token: "tok"}

	ta.auth.EXPECT().RestoreSession(ctx).Return(session, nil)
	gomock.InOrder(
		ta.flush.EXPECT().Start(ctx, time.Minute),
		ta.flush.EXPECT().Stop(),
	)

	require.NoError(t, ta.app.Run(ctx))
	require.NotNil(t, got)
	assert.Equal(t, session, *got)
}

func TestRun_NoSessionShowsAuth(t *testing.T) {
	for _, restoreErr := range []error{store.ErrLocalSessionNotFound, service.ErrSessionExpired} {
		t.Run(restoreErr.Error(), func(t *testing.T) {
			called := false
			ta := newTestApp(t, fakeUI{run: func(_ context.Context, session *models.Session) error {
				called = true
				assert.Nil(t, session)
				return nil
			}})

			ta.auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{}, restoreErr)
			ta.flush.EXPECT().Start(gomock.Any(), time.Minute)
			ta.flush.EXPECT().Stop()

			require.NoError(t, ta.app.Run(context.Background()))
			assert.True(t, called)
		})
	}
}

func TestRun_RestoreFails(t *testing.T) {
	ta := newTestApp(t, fakeUI{run: func(context.Context, *models.Session) error {
		t.Fatal("ui must not start")
		return nil
	}})
	boom := errors.New("disk is gone")
	ta.auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{}, boom)

	assert.ErrorIs(t, ta.app.Run(context.Background()), boom)
}

func TestRun_UIError(t *testing.T) {
	boom := errors.New("no tty")
	ta := newTestApp(t, fakeUI{run: func(context.Context, *models.Session) error { return boom }})

	ta.auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{Token: "tok"}, nil)
	ta.flush.EXPECT().Start(gomock.Any(), gomock.Any())
	ta.flush.EXPECT().Stop()

	assert.ErrorIs(t, ta.app.Run(context.Background()), boom)
}

// ─────────────────────────────────────────────────────────────
// commands
// ─────────────────────────────────────────────────────────────

func TestImport(t *testing.T) {
	ta := newTestApp(t, nil)
	ctx := context.Background()

	ta.auth.EXPECT().RestoreSession(ctx).Return(models.Session{Token: "tok"}, nil)
	ta.files.EXPECT().Import(ctx, "notes/*.md").Return(models.ImportReport{
		Created: []models.Note{{ID: "n1", Title: "Plans"}, {ID: "n2"}},
		Skipped: []models.ImportSkip{{Path: "notes/empty.md", Reason: "file is empty"}},
	}, nil)

	require.NoError(t, ta.app.Import(ctx, "notes/*.md"))
	assert.Equal(t,
		"created n1  Plans\ncreated n2  untitled\nskipped notes/empty.md: file is empty\nimported 2 of 3 files\n",
		ta.out.String())
}

func TestImport_NotSignedIn(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{}, store.ErrLocalSessionNotFound)

	assert.ErrorIs(t, ta.app.Import(context.Background(), "*.md"), ErrNotSignedIn)
	assert.Empty(t, ta.out.String())
}

func TestImport_Error(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{Token: "tok"}, nil)
	ta.files.EXPECT().Import(gomock.Any(), "*.md").Return(models.ImportReport{}, service.ErrNothingToImport)

	assert.ErrorIs(t, ta.app.Import(context.Background(), "*.md"), service.ErrNothingToImport)
}

func TestExport(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{Token: "tok"}, nil)
	ta.files.EXPECT().Export(gomock.Any(), "out").Return([]string{"out/a.md", "out/b.md"}, nil)

	require.NoError(t, ta.app.Export(context.Background(), "out"))
	assert.Equal(t, "out/a.md\nout/b.md\nexported 2 notes\n", ta.out.String())
}

func TestWatch(t *testing.T) {
	ta := newTestApp(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ta.auth.EXPECT().RestoreSession(ctx).Return(models.Session{Token: "tok"}, nil)
	ta.watcher.EXPECT().Watch(ctx, "n1", "plan.md").Return(context.Canceled)

	require.NoError(t, ta.app.Watch(ctx, "n1", "plan.md"))
	assert.Contains(t, ta.out.String(), "watching plan.md")
}

func TestWatch_Error(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{Token: "tok"}, nil)
	ta.watcher.EXPECT().Watch(gomock.Any(), "n1", "plan.md").Return(store.ErrNoteNotFound)

	assert.ErrorIs(t, ta.app.Watch(context.Background(), "n1", "plan.md"), store.ErrNoteNotFound)
}

func TestServeMCP_NotSignedIn(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{}, service.ErrSessionExpired)

	err := ta.app.ServeMCP(context.Background(), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestPrintPushes(t *testing.T) {
	var out bytes.Buffer
	listener := PrintPushes(&out)

	listener(models.Note{Title: "Plans"}, nil)
	listener(models.Note{}, errors.New("offline"))

	assert.Contains(t, out.String(), "saved Plans")
	assert.Contains(t, out.String(), "push failed, kept as draft: offline")
}
