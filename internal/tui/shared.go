package tui

import (
	"strings"

	"github.com/MKhiriev/go-notes/models"
)

// sharedModel shows a note opened by its share link.
type sharedModel struct {
	token   string
	note    models.Note
	loading bool
	errMsg  string
}

func (m sharedModel) canEdit() bool {
	return !m.loading && m.errMsg == "" && m.note.AllowPublicEdit
}

func (m sharedModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString(statusStyle.Render("loading...") + "\n")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	default:
		b.WriteString(titleStyle.Render(titleOrUntitled(m.note.Title)) + "\n")
		b.WriteString(helpStyle.Render("updated "+formatDate(m.note.UpdatedAt)) + "\n\n")
		b.WriteString(renderPreview(m.note.Content) + "\n")
	}

	help := "r: reload │ esc: back"
	if m.canEdit() {
		help = "e: edit │ " + help
	}
	return renderPage("shared note", b.String(), help)
}
