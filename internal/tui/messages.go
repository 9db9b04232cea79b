package tui

import (
	"github.com/MKhiriev/go-notes/internal/autosave"
	"github.com/MKhiriev/go-notes/models"
)

type authDoneMsg struct {
	user models.User
	err  error
}

type signedOutMsg struct {
	err error
}

type notesLoadedMsg struct {
	notes []models.Note
	err   error
}

type noteLoadedMsg struct {
	note models.Note
	err  error
}

type noteDeletedMsg struct {
	noteID string
	err    error
}

// noteSharedMsg is the result of every share menu action.
type noteSharedMsg struct {
	note models.Note
	err  error
}

type sharedLoadedMsg struct {
	token string
	note  models.Note
	err   error
}

// saveStatusMsg carries autosave status changes of the editor with the
// given generation.
type saveStatusMsg struct {
	gen    int
	status autosave.Status
	err    error
}

// savedNowMsg reports the outcome of a save requested from the editor.
type savedNowMsg struct {
	gen    int
	status autosave.Status
	err    error
}

type editorDoneMsg struct {
	gen    int
	noteID string
	token  string
	status autosave.Status
	err    error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
