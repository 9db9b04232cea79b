package autosave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes/models"
)

// Status is the autosave state shown next to the editor.
type Status int

const (
	Idle Status = iota
	Unsaved
	Saving
	Saved
	Failed
)

func (s Status) String() string {
	switch s {
	case Unsaved:
		return "unsaved changes"
	case Saving:
		return "saving..."
	case Saved:
		return "saved"
	case Failed:
		return "save failed"
	default:
		return ""
	}
}

// ErrNoteCreationUnsupported is returned by writers that can only update,
// such as a shared note edited through its link.
var ErrNoteCreationUnsupported = errors.New("note creation is not supported")

// NoteWriter persists editor content.
type NoteWriter interface {
	Create(ctx context.Context, content models.NoteContent) (models.Note, error)
	Update(ctx context.Context, noteID string, content models.NoteContent) (models.Note, error)
}

// DraftKeeper stores content that could not be saved. Both methods are
// best effort.
type DraftKeeper interface {
	SaveDraft(ctx context.Context, draft models.Draft) error
	DiscardDraft(ctx context.Context, noteID string) error
}

// Saver saves a single note being edited. The first successful save of a
// new note creates it, every later save updates it.
type Saver struct {
	writer NoteWriter
	drafts DraftKeeper
	policy Policy

	mu       sync.Mutex
	noteID   string
	draft    *Draft
	status   Status
	err      error
	onChange func(Status, error)
}

type SaverOption func(s *Saver)

// WithDraftKeeper keeps failed saves in k.
func WithDraftKeeper(k DraftKeeper) SaverOption {
	return func(s *Saver) {
		s.drafts = k
	}
}

// WithStatusListener calls fn after every status change. fn runs on the
// goroutine that changed the status. It must not block or call back into
// the Saver.
func WithStatusListener(fn func(Status, error)) SaverOption {
	return func(s *Saver) {
		s.onChange = fn
	}
}

// NewSaver starts from the saved title and content of noteID. An empty
// noteID means the note does not exist yet.
func NewSaver(writer NoteWriter, noteID, title, content string, policy Policy, opts ...SaverOption) *Saver {
	s := &Saver{
		writer: writer,
		policy: policy,
		noteID: noteID,
		draft:  NewDraft(title, content),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Edit records the current editor content.
func (s *Saver) Edit(title, content string) {
	s.mu.Lock()
	s.draft.Set(title, content)
	status := Idle
	if s.draft.Dirty() {
		status = Unsaved
	}
	s.setStatus(status, nil)
	s.mu.Unlock()
}

func (s *Saver) NoteID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.noteID
}

func (s *Saver) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status, s.err
}

// Dirty reports whether there are unsaved changes.
func (s *Saver) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.draft.Dirty()
}

// Save writes the current content if the policy allows it. Content that is
// unchanged or too short is skipped without error.
func (s *Saver) Save(ctx context.Context) error {
	s.mu.Lock()
	if !s.draft.Ready(s.policy) {
		s.mu.Unlock()
		return nil
	}
	noteID := s.noteID
	content := models.NoteContent{Title: s.draft.Title, Content: s.draft.Content}
	s.setStatus(Saving, nil)
	s.mu.Unlock()

	var (
		note models.Note
		err  error
	)
	if noteID == "" {
		note, err = s.writer.Create(ctx, content)
	} else {
		note, err = s.writer.Update(ctx, noteID, content)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.setStatus(Failed, err)
		s.keepDraft(ctx, noteID, content)
		return fmt.Errorf("error saving note: %w", err)
	}

	if noteID == "" {
		s.noteID = note.ID
	}
	s.draft.MarkSaved(content.Title, content.Content)
	if s.drafts != nil {
		_ = s.drafts.DiscardDraft(ctx, noteID)
	}

	if s.draft.Dirty() {
		s.setStatus(Unsaved, nil)
	} else {
		s.setStatus(Saved, nil)
	}

	return nil
}

func (s *Saver) keepDraft(ctx context.Context, noteID string, content models.NoteContent) {
	if s.drafts == nil {
		return
	}
	_ = s.drafts.SaveDraft(ctx, models.Draft{
		NoteID:    noteID,
		Title:     content.Title,
		Content:   content.Content,
		UpdatedAt: time.Now(),
	})
}

// setStatus must be called with s.mu held.
func (s *Saver) setStatus(status Status, err error) {
	if s.status == status && err == nil && s.err == nil {
		return
	}
	s.status, s.err = status, err
	if s.onChange != nil {
		s.onChange(status, err)
	}
}
