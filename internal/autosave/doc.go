// Package autosave implements debounce-then-write saving of editor content.
//
// A [Draft] tracks what changed since the last save, a [Policy] decides
// when the content is worth saving, the [Debouncer] collapses bursts of
// edits into one call and the [Saver] turns that call into a create or an
// update against the server.
package autosave
