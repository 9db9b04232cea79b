package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/mock"
	"github.com/MKhiriev/go-notes/models"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

// ─────────────────────────────────────────────
// Import
// ─────────────────────────────────────────────

func TestImport_PicksTitles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "front.md"), "---\ntitle: From Header\n---\nbody one\n")
	writeFile(t, filepath.Join(dir, "sub", "heading.md"), "# From Heading\n\nbody two\n")
	writeFile(t, filepath.Join(dir, "sub", "deep", "plain-name.md"), "body three\n")
	writeFile(t, filepath.Join(dir, "page.html"), "<h1>Page</h1><p>Hello <b>world</b></p>")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	ctrl := gomock.NewController(t)
	notes := mock.NewMockClientNoteService(ctrl)

	var created []models.NoteContent
	notes.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.NoteContent) (models.Note, error) {
			created = append(created, c)
			return models.Note{ID: "id-" + c.Title, Title: c.Title, Content: c.Content}, nil
		}).Times(4)

	svc := NewImportExportService(notes, logger.Nop())
	report, err := svc.Import(context.Background(), filepath.Join(dir, "**", "*"))

	require.NoError(t, err)
	assert.Len(t, report.Created, 4)
	assert.Empty(t, report.Skipped)

	byTitle := map[string]string{}
	for _, c := range created {
		byTitle[c.Title] = c.Content
	}
	assert.Equal(t, "body one", byTitle["From Header"])
	assert.Equal(t, "body two", byTitle["From Heading"])
	assert.Equal(t, "body three", byTitle["plain-name"])
	assert.Equal(t, "Hello **world**", byTitle["Page"])
}

func TestImport_SkipsEmptyAndFailed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "empty.md"), "---\ntitle: Nothing\n---\n\n")
	writeFile(t, filepath.Join(dir, "rejected.md"), "# Big\n\nbody")

	ctrl := gomock.NewController(t)
	notes := mock.NewMockClientNoteService(ctrl)
	notes.EXPECT().Create(gomock.Any(), models.NoteContent{Title: "Big", Content: "body"}).
		Return(models.Note{}, ErrContentTooLarge)

	svc := NewImportExportService(notes, logger.Nop())
	report, err := svc.Import(context.Background(), filepath.Join(dir, "*.md"))

	require.NoError(t, err)
	assert.Empty(t, report.Created)
	require.Len(t, report.Skipped, 2)

	reasons := map[string]string{}
	for _, s := range report.Skipped {
		reasons[filepath.Base(s.Path)] = s.Reason
	}
	assert.Equal(t, "file has no content", reasons["empty.md"])
	assert.Equal(t, ErrContentTooLarge.Error(), reasons["rejected.md"])
}

func TestImport_NothingMatched(t *testing.T) {
	svc := NewImportExportService(mock.NewMockClientNoteService(gomock.NewController(t)), logger.Nop())

	_, err := svc.Import(context.Background(), filepath.Join(t.TempDir(), "*.md"))

	assert.ErrorIs(t, err, ErrNothingToImport)
}

func TestImport_BadPattern(t *testing.T) {
	svc := NewImportExportService(mock.NewMockClientNoteService(gomock.NewController(t)), logger.Nop())

	_, err := svc.Import(context.Background(), "[")

	assert.Error(t, err)
}

// ─────────────────────────────────────────────
// Export
// ─────────────────────────────────────────────

func TestExport_WritesFrontmatter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	token := "tok"

	shared := models.Note{
		ID: "0190c6f2-7a4b", Title: "Trip: Plans!", Content: "# Day 1\n",
		CreatedAt: created, UpdatedAt: created, IsPublic: true, ShareToken: &token,
	}
	private := models.Note{ID: "abcd1234-0000", Title: "", Content: "x", CreatedAt: created, UpdatedAt: created}

	ctrl := gomock.NewController(t)
	notes := mock.NewMockClientNoteService(ctrl)
	notes.EXPECT().List(gomock.Any()).Return([]models.Note{shared, private}, nil)
	notes.EXPECT().ShareLink(shared).Return("http://localhost:8080/s/tok")
	notes.EXPECT().ShareLink(private).Return("")

	svc := NewImportExportService(notes, logger.Nop())
	paths, err := svc.Export(context.Background(), dir)

	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "trip-plans-0190c6f2.md"),
		filepath.Join(dir, "note-abcd1234.md"),
	}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "id: 0190c6f2-7a4b\n")
	assert.Contains(t, text, "public: true\n")
	assert.Contains(t, text, "share_url: http://localhost:8080/s/tok\n")
	assert.Contains(t, text, "---\n\n# Day 1\n")

	data, err = os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "share_url")
	assert.Contains(t, string(data), "public: false\n")
}

func TestExport_Errors(t *testing.T) {
	svc := NewImportExportService(mock.NewMockClientNoteService(gomock.NewController(t)), logger.Nop())
	_, err := svc.Export(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyExportDir)

	ctrl := gomock.NewController(t)
	notes := mock.NewMockClientNoteService(ctrl)
	notes.EXPECT().List(gomock.Any()).Return(nil, ErrTokenIsExpiredOrInvalid)

	_, err = NewImportExportService(notes, logger.Nop()).Export(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":      "hello-world",
		"  --Trip: Plans!": "trip-plans",
		"Заметка 1":        "заметка-1",
		"***":              "note",
		"":                 "note",
	}
	for in, want := range tests {
		assert.Equal(t, want, slugify(in), in)
	}
}

func TestNoteFromMarkdown(t *testing.T) {
	got := noteFromMarkdown("#NoSpace\nbody", "", "/tmp/file.md")
	assert.Equal(t, models.NoteContent{Title: "file", Content: "#NoSpace\nbody"}, got)

	got = noteFromMarkdown("# \nbody", "", "/tmp/x.markdown")
	assert.Equal(t, "x", got.Title)
}
