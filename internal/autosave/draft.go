package autosave

// Draft tracks the editor content against the last saved version.
type Draft struct {
	savedTitle   string
	savedContent string

	Title   string
	Content string
}

func NewDraft(title, content string) *Draft {
	return &Draft{
		savedTitle:   title,
		savedContent: content,
		Title:        title,
		Content:      content,
	}
}

func (d *Draft) Set(title, content string) {
	d.Title, d.Content = title, content
}

// Dirty reports whether the content differs from the last saved version.
func (d *Draft) Dirty() bool {
	return d.Title != d.savedTitle || d.Content != d.savedContent
}

// Ready reports whether the draft has unsaved changes that p allows to save.
func (d *Draft) Ready(p Policy) bool {
	return d.Dirty() && p.Allows(d.Title, d.Content)
}

// MarkSaved records title and content as the saved version. The current
// content may have moved on while the save was running.
func (d *Draft) MarkSaved(title, content string) {
	d.savedTitle, d.savedContent = title, content
}
