package tui

import (
	"strings"

	"github.com/MKhiriev/go-notes/models"
)

type shareAction int

const (
	actionMakePublic shareAction = iota
	actionCopyLink
	actionTogglePublicEdit
	actionStopSharing
)

type shareModel struct {
	note   models.Note
	link   string
	idx    int
	busy   bool
	status string
	errMsg string
}

func (m shareModel) actions() []shareAction {
	if !m.note.IsShared() {
		return []shareAction{actionMakePublic}
	}
	return []shareAction{actionCopyLink, actionTogglePublicEdit, actionStopSharing}
}

func (m shareModel) label(a shareAction) string {
	switch a {
	case actionMakePublic:
		return "make public"
	case actionCopyLink:
		return "copy link"
	case actionTogglePublicEdit:
		if m.note.AllowPublicEdit {
			return "allow public editing [x]"
		}
		return "allow public editing [ ]"
	case actionStopSharing:
		return "stop sharing"
	}
	return ""
}

// setNote clamps the cursor since the number of actions depends on the
// sharing state.
func (m *shareModel) setNote(note models.Note, link string) {
	m.note, m.link = note, link
	m.idx = max(0, min(m.idx, len(m.actions())-1))
}

func (m shareModel) View() string {
	var b strings.Builder

	if m.note.IsShared() {
		b.WriteString("this note is public\n")
		b.WriteString(m.link + "\n\n")
	} else {
		b.WriteString("this note is private\n\n")
	}

	for i, a := range m.actions() {
		cursor := "  "
		label := m.label(a)
		if i == m.idx {
			cursor = "> "
			label = selectedStyle.Render(label)
		}
		b.WriteString(cursor + label + "\n")
	}

	if m.busy {
		b.WriteString("\n" + statusStyle.Render("loading...") + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	return renderPage("share "+titleOrUntitled(m.note.Title), b.String(), "enter: select │ esc: back")
}
