// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the go-notes server on behalf of the client.
//
// [ServerAdapter] is the CRUD contract the client consumes: sign up and sign
// in, note reads and writes by id, sharing, and reads and writes of shared
// notes by token. The package ships an HTTP implementation on top of resty
// ([NewHTTPServerAdapter]).
//
// Non-2xx responses are mapped to the sentinel errors in errors.go so that
// callers can branch with [errors.Is] (e.g. [ErrNotFound] for 404,
// [ErrForbidden] for a shared note that is read-only).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-notes/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines the client's communication with the go-notes server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token or an empty string.
	Token() string

	// Register creates an account. On success the issued token is stored
	// via SetToken.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login signs in. On success the issued token is stored via SetToken.
	Login(ctx context.Context, user models.User) (models.User, error)

	// CurrentUser returns the owner of the stored token. It is used to check
	// that a remembered session is still valid.
	CurrentUser(ctx context.Context) (models.User, error)

	ListNotes(ctx context.Context) ([]models.Note, error)
	GetNote(ctx context.Context, noteID string) (models.Note, error)
	CreateNote(ctx context.Context, content models.NoteContent) (models.Note, error)
	UpdateNote(ctx context.Context, noteID string, content models.NoteContent) (models.Note, error)
	DeleteNote(ctx context.Context, noteID string) error

	// ShareNote makes the note public; the server generates the token.
	ShareNote(ctx context.Context, noteID string) (models.Note, error)
	SetPublicEdit(ctx context.Context, noteID string, allow bool) (models.Note, error)
	StopSharing(ctx context.Context, noteID string) (models.Note, error)

	// GetSharedNote reads a note by its share token. No sign in is needed.
	GetSharedNote(ctx context.Context, token string) (models.Note, error)

	// UpdateSharedNote edits a shared note that allows public editing.
	UpdateSharedNote(ctx context.Context, token string, content models.NoteContent) (models.Note, error)

	// ShareURL returns the browser link of a share token.
	ShareURL(token string) string
}
