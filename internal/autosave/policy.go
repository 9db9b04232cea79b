package autosave

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Policy is the autosave delay together with the minimum trimmed lengths
// the title and the content must reach before anything is written.
type Policy struct {
	Delay      time.Duration
	MinTitle   int
	MinContent int
}

var (
	// ExistingNote applies to notes that already exist on the server,
	// including shared notes edited through their link.
	ExistingNote = Policy{Delay: 500 * time.Millisecond, MinTitle: 1, MinContent: 1}

	// NewNote waits longer and wants some content before the first insert.
	NewNote = Policy{Delay: time.Second, MinTitle: 1, MinContent: 3}
)

// Allows reports whether title and content are long enough to be saved.
func (p Policy) Allows(title, content string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(title)) >= max(p.MinTitle, 1) &&
		utf8.RuneCountInString(strings.TrimSpace(content)) >= max(p.MinContent, 1)
}
