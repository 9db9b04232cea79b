package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// authModel is the sign in / sign up form.
type authModel struct {
	inputs     []textinput.Model
	focus      int
	signUp     bool
	submitting bool
	errMsg     string
}

func newAuthModel() authModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return authModel{inputs: []textinput.Model{email, password}}
}

func (m *authModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *authModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m authModel) credentials() (email, password string) {
	return strings.TrimSpace(m.inputs[0].Value()), m.inputs[1].Value()
}

// reset keeps the email so that a user who signed out can sign back in.
func (m *authModel) reset() {
	m.inputs[1].SetValue("")
	m.submitting = false
	m.errMsg = ""
	if m.focus != 0 {
		m.focusPrev()
	}
}

func (m authModel) View() string {
	title, action, other := "sign in", "sign in", "create an account"
	if m.signUp {
		title, action, other = "sign up", "sign up", "I already have an account"
	}

	var b strings.Builder
	b.WriteString("email     ")
	b.WriteString(m.inputs[0].View())
	b.WriteString("\npassword  ")
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString(statusStyle.Render("loading..."))
	} else {
		b.WriteString("[" + action + "]")
	}
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return renderPage(title, b.String(), "tab: next field │ enter: "+action+" │ ctrl+t: "+other)
}
