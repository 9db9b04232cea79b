package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/go-notes/models"
)

const previewRunes = 120

type listModel struct {
	notes   []models.Note
	idx     int
	loading bool
	spinner spinner.Model
	status  string
	errMsg  string

	// asking is set while the shared link prompt is open.
	asking    bool
	linkInput textinput.Model
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	link := textinput.New()
	link.Placeholder = "http://host/s/token"
	link.CharLimit = 512
	link.Width = 60

	return listModel{spinner: s, linkInput: link}
}

func (m listModel) current() (models.Note, bool) {
	if len(m.notes) == 0 || m.idx < 0 || m.idx >= len(m.notes) {
		return models.Note{}, false
	}
	return m.notes[m.idx], true
}

// setNotes keeps the cursor on the same position when the list shrinks.
func (m *listModel) setNotes(notes []models.Note) {
	m.notes = notes
	m.idx = max(0, min(m.idx, len(notes)-1))
}

func (m listModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " loading...\n")
	case len(m.notes) == 0:
		b.WriteString("no notes yet.\n")
	default:
		for i, note := range m.notes {
			cursor := "  "
			title := titleOrUntitled(note.Title)
			if i == m.idx {
				cursor = "> "
				title = selectedStyle.Render(title)
			}
			shared := ""
			if note.IsShared() {
				shared = " [shared]"
			}
			fmt.Fprintf(&b, "%s%s%s\n", cursor, title, shared)
			if preview := note.Preview(previewRunes); preview != "" {
				b.WriteString("    " + helpStyle.Render(preview) + "\n")
			}
			b.WriteString("    " + helpStyle.Render(formatDate(note.UpdatedAt)) + "\n")
		}
	}

	if m.asking {
		b.WriteString("\nshared link  " + m.linkInput.View() + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	help := "n: new note │ enter: open │ r: reload │ o: open shared link │ x: sign out │ i: about │ q: quit"
	if m.asking {
		help = "enter: open │ esc: cancel"
	}
	return renderPage("notes", b.String(), help)
}

// parseShareToken accepts a full share link or a bare token.
func parseShareToken(input string) string {
	s := strings.TrimSpace(input)
	if idx := strings.LastIndex(s, "/s/"); idx != -1 {
		s = s[idx+len("/s/"):]
	}
	if idx := strings.IndexAny(s, "?#"); idx != -1 {
		s = s[:idx]
	}
	return strings.Trim(s, "/")
}
