package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/markdown"
	"github.com/MKhiriev/go-notes/models"
)

const maxSlugRunes = 48

// exportHeader is the YAML frontmatter written at the top of exported files.
type exportHeader struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
	Public    bool      `yaml:"public"`
	ShareURL  string    `yaml:"share_url,omitempty"`
}

type importHeader struct {
	Title string `yaml:"title"`
}

type importExportService struct {
	notes ClientNoteService

	logger *logger.Logger
}

func NewImportExportService(notes ClientNoteService, logger *logger.Logger) ImportExportService {
	return &importExportService{notes: notes, logger: logger}
}

// Import creates a note from every .md and .html file matching pattern.
// Patterns use doublestar syntax, so "notes/**/*.md" walks subdirectories.
func (s *importExportService) Import(ctx context.Context, pattern string) (models.ImportReport, error) {
	var report models.ImportReport

	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return report, fmt.Errorf("match %q: %w", pattern, err)
	}

	for _, path := range paths {
		if err = ctx.Err(); err != nil {
			return report, err
		}

		content, ok, reason := readNoteFile(path)
		if !ok {
			if reason != "" {
				report.Skipped = append(report.Skipped, models.ImportSkip{Path: path, Reason: reason})
			}
			continue
		}

		note, err := s.notes.Create(ctx, content)
		if err != nil {
			s.logger.Warn().Err(err).Str("func", "*importExportService.Import").Str("path", path).Msg("note was not imported")
			report.Skipped = append(report.Skipped, models.ImportSkip{Path: path, Reason: err.Error()})
			continue
		}
		report.Created = append(report.Created, note)
	}

	if len(report.Created) == 0 && len(report.Skipped) == 0 {
		return report, ErrNothingToImport
	}
	return report, nil
}

// readNoteFile returns ok=false with an empty reason for files that are not
// notes at all.
func readNoteFile(path string) (models.NoteContent, bool, string) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".markdown" && ext != ".html" && ext != ".htm" {
		return models.NoteContent{}, false, ""
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return models.NoteContent{}, false, err.Error()
	}

	var content models.NoteContent
	if ext == ".html" || ext == ".htm" {
		content = noteFromMarkdown(markdown.HTMLToMarkdown(string(raw)), "", path)
	} else {
		var header importHeader
		body, err := frontmatter.Parse(bytes.NewReader(raw), &header)
		if err != nil {
			return models.NoteContent{}, false, fmt.Sprintf("bad frontmatter: %v", err)
		}
		content = noteFromMarkdown(string(body), header.Title, path)
	}

	if strings.TrimSpace(content.Content) == "" {
		return models.NoteContent{}, false, "file has no content"
	}
	return content, true, ""
}

// noteFromMarkdown picks the title from the frontmatter, then from a leading
// "# " heading (which is removed from the body), then from the file name.
func noteFromMarkdown(body, title, path string) models.NoteContent {
	body = strings.TrimSpace(body)

	if strings.TrimSpace(title) == "" {
		first, rest, _ := strings.Cut(body, "\n")
		if heading, ok := strings.CutPrefix(strings.TrimSpace(first), "# "); ok && strings.TrimSpace(heading) != "" {
			title = heading
			body = strings.TrimSpace(rest)
		}
	}
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return models.NoteContent{Title: strings.TrimSpace(title), Content: body}
}

// Export writes every note to dir as a markdown file with YAML frontmatter
// and returns the written paths.
func (s *importExportService) Export(ctx context.Context, dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrEmptyExportDir
	}

	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	if err = os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	written := make([]string, 0, len(notes))
	for _, note := range notes {
		if err = ctx.Err(); err != nil {
			return written, err
		}

		data, err := s.renderExport(note)
		if err != nil {
			return written, err
		}

		path := filepath.Join(dir, exportFileName(note))
		if err = os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	return written, nil
}

func (s *importExportService) renderExport(note models.Note) ([]byte, error) {
	header, err := yaml.Marshal(exportHeader{
		ID:        note.ID,
		Title:     note.Title,
		CreatedAt: note.CreatedAt.UTC(),
		UpdatedAt: note.UpdatedAt.UTC(),
		Public:    note.IsShared(),
		ShareURL:  s.notes.ShareLink(note),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter of %s: %w", note.ID, err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(note.Content)
	if !strings.HasSuffix(note.Content, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// exportFileName is the slug of the title followed by the first id block, so
// that notes with equal titles do not overwrite each other.
func exportFileName(note models.Note) string {
	id, _, _ := strings.Cut(note.ID, "-")
	return slugify(note.Title) + "-" + id + ".md"
}

func slugify(title string) string {
	var b strings.Builder
	dash := false
	n := 0
	for _, r := range strings.ToLower(title) {
		if n >= maxSlugRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			n++
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
			n++
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "note"
	}
	return slug
}
