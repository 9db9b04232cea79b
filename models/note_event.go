package models

// NoteEventType names what happened to a shared note.
type NoteEventType string

const (
	// NoteUpdated is sent after the title or content changed.
	NoteUpdated NoteEventType = "updated"

	// NoteUnshared is sent after the owner stopped sharing the note.
	NoteUnshared NoteEventType = "unshared"

	// NoteDeleted is sent after the owner deleted the note.
	NoteDeleted NoteEventType = "deleted"
)

// NoteEvent is pushed to live viewers of a shared note.
type NoteEvent struct {
	Type NoteEventType `json:"type"`
	Note Note          `json:"note"`
}

// Terminal reports whether no further events follow this one.
func (e NoteEvent) Terminal() bool {
	return e.Type == NoteUnshared || e.Type == NoteDeleted
}
