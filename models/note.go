// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// Note is the only domain entity of the application: a markdown document
// owned by a single user that can optionally be published via a share link.
//
// ShareToken is set only while the note is public. AllowPublicEdit has a
// meaning only for public notes and is reset whenever sharing stops.
type Note struct {
	// ID is the server-assigned UUID of the note.
	ID string `json:"id"`

	// UserID is the owner of the note. It is never exposed to anonymous
	// viewers of a shared note.
	UserID int64 `json:"user_id,omitempty"`

	Title   string `json:"title"`
	Content string `json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// IsPublic reports whether the note can be read through its share link.
	IsPublic bool `json:"is_public"`

	// ShareToken is the unguessable token embedded in the share link.
	// nil when the note is private.
	ShareToken *string `json:"share_token,omitempty"`

	// AllowPublicEdit lets anyone holding the share link change the title
	// and the content of the note.
	AllowPublicEdit bool `json:"allow_public_edit"`
}

// NoteContent is the editable part of a note sent on create and update.
type NoteContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ShareSettings toggles public editing of a shared note.
type ShareSettings struct {
	AllowPublicEdit bool `json:"allow_public_edit"`
}

// IsShared reports whether the note is reachable by its share link.
func (n Note) IsShared() bool {
	return n.IsPublic && n.ShareToken != nil && *n.ShareToken != ""
}

// Token returns the share token or an empty string for private notes.
func (n Note) Token() string {
	if n.ShareToken == nil {
		return ""
	}
	return *n.ShareToken
}

// Preview returns at most n runes of the note content with line breaks
// flattened to spaces.
func (n Note) Preview(limit int) string {
	content := strings.Join(strings.Fields(n.Content), " ")
	runes := []rune(content)
	if limit <= 0 || len(runes) <= limit {
		return content
	}
	return string(runes[:limit])
}

// Anonymous returns a copy of the note stripped of owner information, as it
// is exposed to viewers of a share link.
func (n Note) Anonymous() Note {
	n.UserID = 0
	return n
}

// EditableContent returns the title and content of the note.
func (n Note) EditableContent() NoteContent {
	return NoteContent{Title: n.Title, Content: n.Content}
}
