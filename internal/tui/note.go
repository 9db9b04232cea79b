package tui

import (
	"strings"

	"github.com/MKhiriev/go-notes/models"
)

type noteModel struct {
	note          models.Note
	confirmDelete bool
	busy          bool
	status        string
	errMsg        string
}

func (m noteModel) View() string {
	var b strings.Builder
	b.WriteString(helpStyle.Render("updated "+formatDate(m.note.UpdatedAt)) + "\n\n")
	b.WriteString(renderPreview(m.note.Content))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}
	if m.confirmDelete {
		b.WriteString("\n" + confirmModel{message: "are you sure?"}.View() + "\n")
	}

	return renderPage(titleOrUntitled(m.note.Title), b.String(), "e: edit │ s: share │ d: delete │ esc: back")
}
