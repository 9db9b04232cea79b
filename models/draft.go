// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Draft is a locally persisted copy of unsaved editor content. It is written
// when an autosave fails and removed after the next successful save.
//
// NoteID is empty for a note that was never saved on the server.
type Draft struct {
	NoteID    string    `json:"note_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is the locally remembered sign-in.
type Session struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
