package tui

type confirmModel struct {
	message string
}

func (m confirmModel) View() string {
	return overlayBoxStyle.Render(m.message + "\n\ny yes    n no")
}
