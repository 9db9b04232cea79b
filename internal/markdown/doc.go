// Package markdown renders note content to HTML and converts pasted HTML
// back to markdown.
//
// Rendering uses goldmark with GitHub flavoured extensions and hard line
// breaks. Raw HTML in a note is never passed through. Rendered pages can be
// memoized in a bbolt file keyed by the xxhash of the source.
package markdown
