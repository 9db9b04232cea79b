package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-notes/internal/autosave"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/utils"
	"github.com/MKhiriev/go-notes/models"
)

// DefaultWatchDelay matches the autosave delay of an existing note.
const DefaultWatchDelay = 500 * time.Millisecond

// PushListener is told about every attempt to push the file into the note.
type PushListener func(note models.Note, err error)

type noteWatcher struct {
	notes    ClientNoteService
	delay    time.Duration
	listener PushListener

	logger *logger.Logger
}

// NewNoteWatcher creates a watcher that pushes file changes after delay of
// quiet. listener may be nil.
func NewNoteWatcher(notes ClientNoteService, delay time.Duration, listener PushListener, logger *logger.Logger) NoteWatcher {
	if delay <= 0 {
		delay = DefaultWatchDelay
	}
	return &noteWatcher{notes: notes, delay: delay, listener: listener, logger: logger}
}

// Watch pushes path into the note once at start and then after every burst
// of writes, until ctx is done. The parent directory is watched because many
// editors save by renaming a temporary file over the original.
func (w *noteWatcher) Watch(ctx context.Context, noteID, path string) error {
	note, err := w.notes.Get(ctx, noteID)
	if err != nil {
		return fmt.Errorf("get note %s: %w", noteID, err)
	}

	path, err = filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err = os.Stat(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	if err = fsw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	p := &filePusher{notes: w.notes, noteID: noteID, title: note.Title, path: path, listener: w.listener, logger: w.logger}
	p.last = contentKey(models.NoteContent{Title: note.Title, Content: note.Content})

	debouncer := autosave.NewDebouncer(ctx, w.delay, p.push)
	defer debouncer.Stop()
	debouncer.Trigger()

	w.logger.Info().Str("note_id", noteID).Str("path", path).Msg("watching file")

	for {
		select {
		case <-ctx.Done():
			// a write that landed right before the interrupt is still pushed
			flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			debouncer.Flush(flushCtx)
			cancel()
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				debouncer.Trigger()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Err(err).Str("func", "*noteWatcher.Watch").Msg("file watcher error")
		}
	}
}

// filePusher is only ever called from the debouncer, which never runs it
// concurrently.
type filePusher struct {
	notes    ClientNoteService
	noteID   string
	title    string
	path     string
	last     uint64
	listener PushListener

	logger *logger.Logger
}

func (p *filePusher) push(ctx context.Context) {
	content, err := readWatchedFile(p.path, p.title)
	if err != nil {
		// the file may be mid-rename; the next event retries
		if !errors.Is(err, os.ErrNotExist) {
			p.logger.Err(err).Str("func", "*filePusher.push").Msg("failed to read watched file")
		}
		return
	}

	key := contentKey(content)
	if key == p.last {
		return
	}

	note, err := p.notes.Update(ctx, p.noteID, content)
	if err != nil {
		p.logger.Err(err).Str("func", "*filePusher.push").Str("note_id", p.noteID).Msg("push failed, keeping draft")
		draftErr := p.notes.SaveDraft(ctx, models.Draft{NoteID: p.noteID, Title: content.Title, Content: content.Content})
		if draftErr != nil {
			p.logger.Err(draftErr).Str("func", "*filePusher.push").Msg("failed to keep draft")
		}
	} else {
		p.last = key
		p.title = note.Title
		if discardErr := p.notes.DiscardDraft(ctx, p.noteID); discardErr != nil {
			p.logger.Warn().Err(discardErr).Str("func", "*filePusher.push").Msg("draft was not removed")
		}
	}

	if p.listener != nil {
		p.listener(note, err)
	}
}

// readWatchedFile takes the title from the frontmatter when there is one
// and keeps title otherwise.
func readWatchedFile(path, title string) (models.NoteContent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.NoteContent{}, err
	}

	var header importHeader
	body, err := frontmatter.Parse(bytes.NewReader(raw), &header)
	if err != nil {
		return models.NoteContent{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	if t := strings.TrimSpace(header.Title); t != "" {
		title = t
	}

	return models.NoteContent{Title: title, Content: strings.TrimSpace(string(body))}, nil
}

func contentKey(c models.NoteContent) uint64 {
	return utils.ContentKey(c.Title + "\x00" + c.Content)
}
