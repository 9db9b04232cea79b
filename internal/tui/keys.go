package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	newNote   key.Binding
	reload    key.Binding
	signOut   key.Binding
	openLink  key.Binding
	info      key.Binding
	edit      key.Binding
	share     key.Binding
	delete    key.Binding
	yes       key.Binding
	no        key.Binding
	toggleReg key.Binding
	preview   key.Binding
	bold      key.Binding
	italic    key.Binding
	link      key.Binding
	code      key.Binding
	save      key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("q")),
	newNote:   key.NewBinding(key.WithKeys("n")),
	reload:    key.NewBinding(key.WithKeys("r")),
	signOut:   key.NewBinding(key.WithKeys("x")),
	openLink:  key.NewBinding(key.WithKeys("o")),
	info:      key.NewBinding(key.WithKeys("i")),
	edit:      key.NewBinding(key.WithKeys("e")),
	share:     key.NewBinding(key.WithKeys("s")),
	delete:    key.NewBinding(key.WithKeys("d")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n")),
	toggleReg: key.NewBinding(key.WithKeys("ctrl+t")),
	preview:   key.NewBinding(key.WithKeys("ctrl+p")),
	bold:      key.NewBinding(key.WithKeys("alt+b")),
	italic:    key.NewBinding(key.WithKeys("alt+i")),
	link:      key.NewBinding(key.WithKeys("alt+k")),
	code:      key.NewBinding(key.WithKeys("alt+c")),
	save:      key.NewBinding(key.WithKeys("ctrl+s")),
}

// headingLevel returns the level of an alt+1..alt+6 key or 0.
func headingLevel(msg string) int {
	if len(msg) == len("alt+1") && msg[:4] == "alt+" && msg[4] >= '1' && msg[4] <= '6' {
		return int(msg[4] - '0')
	}
	return 0
}
