package tui

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-notes/internal/autosave"
	"github.com/MKhiriev/go-notes/internal/editor"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/markdown"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/models"
)

type editorKind int

const (
	editExisting editorKind = iota
	editNew
	editShared
)

const finishTimeout = 10 * time.Second

var reHTMLTag = regexp.MustCompile(`(?i)<(p|div|span|br|h[1-6]|ul|ol|li|strong|b|em|i|a|pre|code|blockquote)[\s>/]`)

// looksLikeHTML reports whether pasted text is markup copied from a page.
func looksLikeHTML(s string) bool {
	return reHTMLTag.MatchString(s)
}

// sharedWriter saves a note edited through its share link.
type sharedWriter struct {
	notes service.ClientNoteService
	token string
}

func (w sharedWriter) Create(context.Context, models.NoteContent) (models.Note, error) {
	return models.Note{}, autosave.ErrNoteCreationUnsupported
}

func (w sharedWriter) Update(ctx context.Context, _ string, content models.NoteContent) (models.Note, error) {
	return w.notes.UpdateShared(ctx, w.token, content)
}

type editorModel struct {
	gen   int
	kind  editorKind
	token string

	title   textinput.Model
	body    textarea.Model
	focus   int
	preview bool

	saver     *autosave.Saver
	debouncer *autosave.Debouncer
	statuses  chan saveStatusMsg
	done      chan struct{}
	release   func()

	status  autosave.Status
	errMsg  string
	closing bool
}

type editorOptions struct {
	gen    int
	kind   editorKind
	token  string
	writer autosave.NoteWriter
	drafts autosave.DraftKeeper
	note   models.Note
	// draft replaces the note content when a previous session left
	// unsaved changes.
	draft *models.Draft
}

func newEditorModel(ctx context.Context, opts editorOptions, width, height int, log *logger.Logger) editorModel {
	policy := autosave.ExistingNote
	if opts.kind == editNew {
		policy = autosave.NewNote
	}

	statuses := make(chan saveStatusMsg, 32)
	done := make(chan struct{})
	gen := opts.gen

	e := editorModel{
		gen:      gen,
		kind:     opts.kind,
		token:    opts.token,
		statuses: statuses,
		done:     done,
		release:  sync.OnceFunc(func() { close(done) }),
	}

	saverOpts := []autosave.SaverOption{
		autosave.WithStatusListener(func(status autosave.Status, err error) {
			select {
			case statuses <- saveStatusMsg{gen: gen, status: status, err: err}:
			case <-done:
			default:
			}
		}),
	}
	if opts.drafts != nil {
		saverOpts = append(saverOpts, autosave.WithDraftKeeper(opts.drafts))
	}

	e.saver = autosave.NewSaver(opts.writer, opts.note.ID, opts.note.Title, opts.note.Content, policy, saverOpts...)
	saver := e.saver
	e.debouncer = autosave.NewDebouncer(ctx, policy.Delay, func(ctx context.Context) {
		if err := saver.Save(ctx); err != nil {
			log.Err(err).Str("func", "editorModel.save").Msg("autosave failed")
		}
	})

	e.title = textinput.New()
	e.title.Placeholder = "title"
	e.title.CharLimit = 500
	e.title.Width = 60
	e.title.SetValue(opts.note.Title)

	e.body = textarea.New()
	e.body.Placeholder = "write markdown here"
	e.body.ShowLineNumbers = false
	e.body.CharLimit = 0
	e.body.MaxHeight = 0
	e.body.SetValue(opts.note.Content)
	e.resize(width, height)

	if opts.kind == editNew {
		e.title.Focus()
	} else {
		e.focus = 1
		e.body.Focus()
	}

	if opts.draft != nil {
		e.title.SetValue(opts.draft.Title)
		e.body.SetValue(opts.draft.Content)
		e.edited()
	}

	return e
}

func (e *editorModel) resize(width, height int) {
	if width > 0 {
		e.body.SetWidth(max(20, width-6))
		e.title.Width = max(20, width-14)
	}
	if height > 0 {
		e.body.SetHeight(max(3, height-14))
	}
}

func (e *editorModel) focusTitle() {
	e.focus = 0
	e.body.Blur()
	e.title.Focus()
}

func (e *editorModel) focusBody() {
	e.focus = 1
	e.title.Blur()
	e.body.Focus()
}

// edited hands the current content to the saver and restarts the delay.
func (e *editorModel) edited() {
	e.saver.Edit(e.title.Value(), e.body.Value())
	if e.saver.Dirty() {
		e.debouncer.Trigger()
	}
}

// doc returns the body with the caret as a rune offset.
func (e *editorModel) doc() editor.Doc {
	text := e.body.Value()
	lines := strings.Split(text, "\n")

	row := max(0, min(e.body.Line(), len(lines)-1))
	li := e.body.LineInfo()
	col := min(li.StartColumn+li.ColumnOffset, len([]rune(lines[row])))

	offset := 0
	for _, line := range lines[:row] {
		offset += len([]rune(line)) + 1
	}
	return editor.Doc{Text: text}.Caret(offset + col)
}

// setDoc replaces the body and puts the caret at the end of the selection,
// as the textarea has no selection of its own.
func (e *editorModel) setDoc(d editor.Doc) {
	runes := []rune(d.Text)
	pos := max(0, min(d.SelEnd, len(runes)))
	before := string(runes[:pos])
	row := strings.Count(before, "\n")
	col := len([]rune(before[strings.LastIndex(before, "\n")+1:]))

	e.body.SetValue(d.Text)
	for i := 0; e.body.Line() > row && i <= len(runes); i++ {
		e.body.CursorUp()
	}
	e.body.SetCursor(col)
	e.edited()
}

func (e *editorModel) apply(op func(editor.Doc) editor.Doc) {
	e.setDoc(op(e.doc()))
}

func (e editorModel) waitStatus() tea.Cmd {
	statuses, done := e.statuses, e.done
	return func() tea.Msg {
		select {
		case msg := <-statuses:
			return msg
		case <-done:
			return nil
		}
	}
}

// cmdSaveNow saves pending changes without waiting for the delay. The
// editor stays open.
func (e editorModel) cmdSaveNow(ctx context.Context) tea.Cmd {
	saver, debouncer, gen := e.saver, e.debouncer, e.gen

	return func() tea.Msg {
		flushCtx, cancel := context.WithTimeout(ctx, finishTimeout)
		defer cancel()

		debouncer.Flush(flushCtx)

		status, err := saver.Status()
		return savedNowMsg{gen: gen, status: status, err: err}
	}
}

// cmdFinish saves pending changes right away and stops the autosave.
func (e editorModel) cmdFinish(ctx context.Context) tea.Cmd {
	saver, debouncer := e.saver, e.debouncer
	gen, token := e.gen, e.token

	return func() tea.Msg {
		flushCtx, cancel := context.WithTimeout(ctx, finishTimeout)
		defer cancel()

		debouncer.Flush(flushCtx)
		debouncer.Stop()

		status, err := saver.Status()
		return editorDoneMsg{gen: gen, noteID: saver.NoteID(), token: token, status: status, err: err}
	}
}

func (e editorModel) heading() string {
	switch e.kind {
	case editNew:
		return "new note"
	case editShared:
		return "edit shared note"
	default:
		return "edit note"
	}
}

func (e editorModel) View() string {
	var b strings.Builder

	b.WriteString("title  ")
	b.WriteString(e.title.View())
	b.WriteString("\n\n")

	if e.preview {
		b.WriteString(renderPreview(e.body.Value()))
	} else {
		b.WriteString(e.body.View())
	}
	b.WriteString("\n\n")

	footer := pluralWords(markdown.WordCount(e.body.Value()))
	switch {
	case e.closing:
		footer += " · " + e.closingText()
	case e.status == autosave.Failed:
		footer += " · " + errorStyle.Render(e.status.String()+": "+e.errMsg)
	case e.status != autosave.Idle:
		footer += " · " + statusStyle.Render(e.status.String())
	}
	b.WriteString(helpStyle.Render(footer))
	b.WriteString("\n")

	help := "esc: done │ ctrl+s: save │ ctrl+p: preview │ alt+b bold │ alt+i italic │ alt+k link │ alt+c code │ alt+1..6 heading"
	if e.preview {
		help = "esc: done │ ctrl+p: back to editing"
	}
	return renderPage(e.heading(), b.String(), help)
}

func (e editorModel) closingText() string {
	if e.saver.Dirty() {
		return "saving..."
	}
	return "closing..."
}

func pluralWords(n int) string {
	if n == 1 {
		return "1 word"
	}
	return strconv.Itoa(n) + " words"
}
