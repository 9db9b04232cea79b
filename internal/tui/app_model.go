package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-notes/internal/autosave"
	"github.com/MKhiriev/go-notes/internal/editor"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/models"
)

type screen int

const (
	screenAuth screen = iota
	screenList
	screenNote
	screenShare
	screenEditor
	screenShared
)

type appModel struct {
	ctx       context.Context
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	currentScreen screen
	width         int
	height        int
	showBuildInfo bool
	email         string
	quitByUser    bool

	auth      authModel
	list      listModel
	note      noteModel
	share     shareModel
	shared    sharedModel
	editor    editorModel
	editorGen int
}

// newAppModel opens the note list when session is set and the auth screen
// otherwise.
func newAppModel(ctx context.Context, services *service.ClientServices, buildInfo models.AppBuildInfo, session *models.Session, log *logger.Logger) appModel {
	m := appModel{
		ctx:           ctx,
		services:      services,
		buildInfo:     buildInfo,
		logger:        log,
		currentScreen: screenAuth,
		auth:          newAuthModel(),
		list:          newListModel(),
	}
	if session != nil {
		m.email = session.Email
		m.currentScreen = screenList
		m.list.loading = true
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.currentScreen == screenList {
		return tea.Batch(m.list.spinner.Tick, m.cmdLoadNotes())
	}
	return textinput.Blink
}

func (m appModel) editing() bool {
	return m.currentScreen == screenEditor && !m.editor.closing
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitByUser = true
			if m.editing() {
				m.editor.closing = true
				return m, tea.Sequence(m.editor.cmdFinish(m.ctx), tea.Quit)
			}
			return m, tea.Quit
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
				m.showBuildInfo = false
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.currentScreen == screenEditor {
			m.editor.resize(msg.Width, msg.Height)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.list.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.list.spinner, cmd = m.list.spinner.Update(msg)
		return m, cmd

	case authDoneMsg:
		m.auth.submitting = false
		if msg.err != nil {
			m.auth.errMsg = errorText(msg.err)
			return m, nil
		}
		m.email = msg.user.Email
		m.auth.reset()
		return m.openList("")

	case signedOutMsg:
		if msg.err != nil {
			m.logger.Err(msg.err).Str("func", "appModel.Update").Msg("sign out failed")
		}
		return m.toAuth("")

	case notesLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			if signedOutByServer(msg.err) {
				return m.toAuth(errorText(msg.err))
			}
			m.list.errMsg = errorText(msg.err)
			return m, nil
		}
		m.list.errMsg = ""
		m.list.setNotes(msg.notes)
		return m, nil

	case noteLoadedMsg:
		if msg.err != nil {
			if signedOutByServer(msg.err) {
				return m.toAuth(errorText(msg.err))
			}
			next, cmd := m.openList("")
			next.list.errMsg = errorText(msg.err)
			return next, cmd
		}
		m.note.note = msg.note
		m.currentScreen = screenNote
		return m, nil

	case noteDeletedMsg:
		m.note.busy = false
		m.note.confirmDelete = false
		if msg.err != nil {
			m.note.errMsg = errorText(msg.err)
			return m, nil
		}
		next, cmd := m.openList("note deleted")
		return next, tea.Batch(cmd, cmdClearStatus())

	case noteSharedMsg:
		m.share.busy = false
		if msg.err != nil {
			if signedOutByServer(msg.err) {
				return m.toAuth(errorText(msg.err))
			}
			m.share.errMsg = errorText(msg.err)
			return m, nil
		}
		m.share.errMsg = ""
		m.note.note = msg.note
		m.share.setNote(msg.note, m.services.NoteService.ShareLink(msg.note))
		return m, nil

	case sharedLoadedMsg:
		if msg.token != m.shared.token {
			return m, nil
		}
		m.shared.loading = false
		if msg.err != nil {
			m.shared.errMsg = errorText(msg.err)
			return m, nil
		}
		m.shared.errMsg = ""
		m.shared.note = msg.note
		return m, nil

	case draftLoadedMsg:
		return m.openEditor(editExisting, msg.note, msg.draft)

	case saveStatusMsg:
		if msg.gen != m.editor.gen {
			return m, nil
		}
		m.editor.status = msg.status
		m.editor.errMsg = ""
		if msg.err != nil {
			m.editor.errMsg = errorText(msg.err)
		}
		return m, m.editor.waitStatus()

	case savedNowMsg:
		if msg.gen != m.editor.gen || m.editor.closing {
			return m, nil
		}
		m.editor.status = msg.status
		m.editor.errMsg = ""
		if msg.err != nil {
			m.editor.errMsg = errorText(msg.err)
		}
		return m, nil

	case editorDoneMsg:
		return m.finishEditor(msg)

	case copiedMsg:
		if msg.err != nil {
			m.share.errMsg = "could not copy the link: " + msg.err.Error()
			return m, nil
		}
		m.share.status = "copied!"
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.share.status = ""
		m.list.status = ""
		m.note.status = ""
		return m, nil
	}

	switch m.currentScreen {
	case screenAuth:
		return m.updateAuth(msg)
	case screenList:
		return m.updateList(msg)
	case screenNote:
		return m.updateNote(msg)
	case screenShare:
		return m.updateShare(msg)
	case screenEditor:
		return m.updateEditor(msg)
	case screenShared:
		return m.updateShared(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	var body string
	switch m.currentScreen {
	case screenAuth:
		body = m.auth.View()
	case screenList:
		body = m.list.View()
		if m.email != "" {
			body = helpStyle.Render("signed in as "+m.email) + "\n\n" + body
		}
	case screenNote:
		body = m.note.View()
	case screenShare:
		body = m.share.View()
	case screenEditor:
		body = m.editor.View()
	case screenShared:
		body = m.shared.View()
	}

	return appStyle.Render(body)
}

// openList switches to the note list and reloads it.
func (m appModel) openList(status string) (appModel, tea.Cmd) {
	m.currentScreen = screenList
	m.list.loading = true
	m.list.asking = false
	m.list.errMsg = ""
	m.list.status = status
	return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadNotes())
}

func (m appModel) toAuth(errMsg string) (appModel, tea.Cmd) {
	m.currentScreen = screenAuth
	m.email = ""
	m.list = newListModel()
	m.auth.reset()
	m.auth.errMsg = errMsg
	return m, textinput.Blink
}

func (m appModel) openNote(note models.Note) appModel {
	m.note = noteModel{note: note}
	m.currentScreen = screenNote
	return m
}

func (m appModel) openEditor(kind editorKind, note models.Note, draft *models.Draft) (appModel, tea.Cmd) {
	m.editorGen++
	opts := editorOptions{
		gen:  m.editorGen,
		kind: kind,
		note: note,
	}

	switch kind {
	case editShared:
		opts.token = m.shared.token
		opts.writer = sharedWriter{notes: m.services.NoteService, token: m.shared.token}
	default:
		opts.writer = m.services.NoteService
		opts.drafts = m.services.NoteService
		opts.draft = draft
	}

	m.editor = newEditorModel(m.ctx, opts, m.width, m.height, m.logger)
	m.currentScreen = screenEditor
	return m, tea.Batch(m.editor.waitStatus(), textarea.Blink)
}

func (m appModel) finishEditor(msg editorDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.editor.gen {
		return m, nil
	}
	m.editor.release()

	if m.quitByUser {
		return m, nil
	}

	if m.editor.kind == editShared {
		m.shared.loading = true
		m.currentScreen = screenShared
		return m, m.cmdLoadShared(msg.token)
	}

	if msg.noteID == "" {
		return m.openList("")
	}

	if msg.status == autosave.Failed {
		m.note.status = "changes are kept as a draft and will be saved later"
	} else {
		m.note.status = ""
	}
	m.note.errMsg = ""
	return m, tea.Batch(m.cmdLoadNote(msg.noteID), cmdClearStatus())
}

func (m appModel) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			m.auth.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.auth.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.toggleReg):
			m.auth.signUp = !m.auth.signUp
			m.auth.errMsg = ""
			return m, nil
		case key.Matches(keyMsg, keys.esc):
			m.quitByUser = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.enter):
			if m.auth.submitting {
				return m, nil
			}
			email, password := m.auth.credentials()
			if email == "" || password == "" {
				m.auth.errMsg = "email and password are required"
				return m, nil
			}
			m.auth.errMsg = ""
			m.auth.submitting = true
			return m, m.cmdAuth(email, password, m.auth.signUp)
		}
	}

	var cmd tea.Cmd
	m.auth.inputs[m.auth.focus], cmd = m.auth.inputs[m.auth.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)

	if m.list.asking {
		if ok {
			switch {
			case key.Matches(keyMsg, keys.esc):
				m.list.asking = false
				m.list.linkInput.Blur()
				return m, nil
			case key.Matches(keyMsg, keys.enter):
				token := parseShareToken(m.list.linkInput.Value())
				if token == "" {
					m.list.errMsg = "paste a share link"
					return m, nil
				}
				m.list.asking = false
				m.list.errMsg = ""
				m.list.linkInput.Blur()
				m.shared = sharedModel{token: token, loading: true}
				m.currentScreen = screenShared
				return m, m.cmdLoadShared(token)
			}
		}
		var cmd tea.Cmd
		m.list.linkInput, cmd = m.list.linkInput.Update(msg)
		return m, cmd
	}

	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < len(m.list.notes)-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if note, ok := m.list.current(); ok {
			return m.openNote(note), nil
		}
	case key.Matches(keyMsg, keys.newNote):
		return m.openEditor(editNew, models.Note{}, nil)
	case key.Matches(keyMsg, keys.reload):
		if m.list.loading {
			return m, nil
		}
		return m.openList("")
	case key.Matches(keyMsg, keys.openLink):
		m.list.asking = true
		m.list.linkInput.SetValue("")
		return m, m.list.linkInput.Focus()
	case key.Matches(keyMsg, keys.signOut):
		return m, m.cmdSignOut()
	case key.Matches(keyMsg, keys.info):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	}

	return m, nil
}

func (m appModel) updateNote(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.note.busy {
		return m, nil
	}

	if m.note.confirmDelete {
		switch {
		case key.Matches(keyMsg, keys.yes):
			m.note.busy = true
			return m, m.cmdDelete(m.note.note.ID)
		case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
			m.note.confirmDelete = false
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.edit):
		return m, m.cmdLoadDraft(m.note.note)
	case key.Matches(keyMsg, keys.share):
		m.share = shareModel{}
		m.share.setNote(m.note.note, m.services.NoteService.ShareLink(m.note.note))
		m.currentScreen = screenShare
	case key.Matches(keyMsg, keys.delete):
		m.note.confirmDelete = true
		m.note.errMsg = ""
	case key.Matches(keyMsg, keys.esc):
		return m.openList("")
	}

	return m, nil
}

func (m appModel) updateShare(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.share.busy {
		return m, nil
	}

	actions := m.share.actions()
	switch {
	case key.Matches(keyMsg, keys.up):
		if m.share.idx > 0 {
			m.share.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.share.idx < len(actions)-1 {
			m.share.idx++
		}
	case key.Matches(keyMsg, keys.esc):
		m.note.note = m.share.note
		m.currentScreen = screenNote
	case key.Matches(keyMsg, keys.enter):
		action := actions[m.share.idx]
		m.share.errMsg = ""
		if action == actionCopyLink {
			return m, cmdCopy(m.share.link)
		}
		m.share.busy = true
		return m, m.cmdShareAction(action, m.share.note)
	}

	return m, nil
}

func (m appModel) updateShared(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		return m.openList("")
	case key.Matches(keyMsg, keys.reload):
		m.shared.loading = true
		m.shared.errMsg = ""
		return m, m.cmdLoadShared(m.shared.token)
	case key.Matches(keyMsg, keys.edit):
		if m.shared.canEdit() {
			return m.openEditor(editShared, m.shared.note, nil)
		}
	}

	return m, nil
}

func (m appModel) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editor.closing {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.editor.closing = true
			return m, m.editor.cmdFinish(m.ctx)
		case key.Matches(keyMsg, keys.preview):
			m.editor.preview = !m.editor.preview
			return m, nil
		case key.Matches(keyMsg, keys.save):
			return m, m.editor.cmdSaveNow(m.ctx)
		}
		if m.editor.preview {
			return m, nil
		}

		switch {
		case key.Matches(keyMsg, keys.backtab):
			m.editor.focusTitle()
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			if m.editor.focus == 0 {
				m.editor.focusBody()
			} else {
				m.editor.apply(editor.Tab)
			}
			return m, nil
		case key.Matches(keyMsg, keys.enter) && m.editor.focus == 0:
			m.editor.focusBody()
			return m, nil
		}

		if m.editor.focus == 1 {
			if handled := m.editor.handleBodyKey(keyMsg); handled {
				return m, nil
			}
		}
	}

	title, body := m.editor.title.Value(), m.editor.body.Value()

	var cmd tea.Cmd
	if m.editor.focus == 0 {
		m.editor.title, cmd = m.editor.title.Update(msg)
	} else {
		m.editor.body, cmd = m.editor.body.Update(msg)
	}
	if m.editor.title.Value() != title || m.editor.body.Value() != body {
		m.editor.edited()
	}
	return m, cmd
}

// handleBodyKey applies the markdown shortcuts. It reports false for keys
// the textarea should handle itself.
func (e *editorModel) handleBodyKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, keys.bold):
		e.apply(editor.Bold)
	case key.Matches(msg, keys.italic):
		e.apply(editor.Italic)
	case key.Matches(msg, keys.link):
		e.apply(editor.Link)
	case key.Matches(msg, keys.code):
		e.apply(editor.Code)
	case headingLevel(msg.String()) > 0:
		level := headingLevel(msg.String())
		e.apply(func(d editor.Doc) editor.Doc { return editor.Heading(d, level) })
	case key.Matches(msg, keys.enter):
		d, ok := editor.Enter(e.doc())
		if !ok {
			return false
		}
		e.setDoc(d)
	case msg.Paste && looksLikeHTML(string(msg.Runes)):
		html := string(msg.Runes)
		e.apply(func(d editor.Doc) editor.Doc { return editor.Paste(d, "", html) })
	default:
		return false
	}
	return true
}
