package tui

import (
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/models"
)

// writeClipboard is replaced in tests, where there is no clipboard.
var writeClipboard = clipboard.WriteAll

const statusTTL = 2 * time.Second

type draftLoadedMsg struct {
	note  models.Note
	draft *models.Draft
}

func (m appModel) cmdAuth(email, password string, signUp bool) tea.Cmd {
	ctx, auth := m.ctx, m.services.AuthService

	return func() tea.Msg {
		var (
			user models.User
			err  error
		)
		if signUp {
			user, err = auth.SignUp(ctx, email, password)
		} else {
			user, err = auth.SignIn(ctx, email, password)
		}
		return authDoneMsg{user: user, err: err}
	}
}

func (m appModel) cmdSignOut() tea.Cmd {
	ctx, auth := m.ctx, m.services.AuthService
	return func() tea.Msg {
		return signedOutMsg{err: auth.SignOut(ctx)}
	}
}

func (m appModel) cmdLoadNotes() tea.Cmd {
	ctx, notes := m.ctx, m.services.NoteService
	return func() tea.Msg {
		list, err := notes.List(ctx)
		return notesLoadedMsg{notes: list, err: err}
	}
}

func (m appModel) cmdLoadNote(noteID string) tea.Cmd {
	ctx, notes := m.ctx, m.services.NoteService
	return func() tea.Msg {
		note, err := notes.Get(ctx, noteID)
		return noteLoadedMsg{note: note, err: err}
	}
}

func (m appModel) cmdDelete(noteID string) tea.Cmd {
	ctx, notes := m.ctx, m.services.NoteService
	return func() tea.Msg {
		return noteDeletedMsg{noteID: noteID, err: notes.Delete(ctx, noteID)}
	}
}

func (m appModel) cmdShareAction(action shareAction, note models.Note) tea.Cmd {
	ctx, notes := m.ctx, m.services.NoteService
	return func() tea.Msg {
		var (
			updated models.Note
			err     error
		)
		switch action {
		case actionMakePublic:
			updated, err = notes.Share(ctx, note.ID)
		case actionTogglePublicEdit:
			updated, err = notes.SetPublicEdit(ctx, note.ID, !note.AllowPublicEdit)
		case actionStopSharing:
			updated, err = notes.StopSharing(ctx, note.ID)
		default:
			return nil
		}
		return noteSharedMsg{note: updated, err: err}
	}
}

func (m appModel) cmdLoadShared(token string) tea.Cmd {
	ctx, notes := m.ctx, m.services.NoteService
	return func() tea.Msg {
		note, err := notes.GetShared(ctx, token)
		return sharedLoadedMsg{token: token, note: note, err: err}
	}
}

// cmdLoadDraft looks for changes of note left by an earlier session.
func (m appModel) cmdLoadDraft(note models.Note) tea.Cmd {
	ctx, notes, log := m.ctx, m.services.NoteService, m.logger
	return func() tea.Msg {
		draft, err := notes.GetDraft(ctx, note.ID)
		if err != nil {
			if !errors.Is(err, store.ErrDraftNotFound) {
				log.Err(err).Str("func", "appModel.cmdLoadDraft").Msg("failed to read draft")
			}
			return draftLoadedMsg{note: note}
		}
		return draftLoadedMsg{note: note, draft: &draft}
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: writeClipboard(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
