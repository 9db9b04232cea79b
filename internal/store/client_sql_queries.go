// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-notes/models"
)

// sqlite is the statement builder for SQLite (? placeholders).
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// sessionRowID is the only row id of the session table.
const sessionRowID = 1

func buildSaveSessionQuery(session models.Session) (string, []any, error) {
	return toSQL(sqlite.
		Insert("session").
		Columns("id", "email", "token", "created_at").
		Values(sessionRowID, session.Email, session.Token, session.CreatedAt).
		Suffix("ON CONFLICT(id) DO UPDATE SET email = excluded.email, token = excluded.token, created_at = excluded.created_at"))
}

func buildGetSessionQuery() (string, []any, error) {
	return toSQL(sqlite.
		Select("email", "token", "created_at").
		From("session").
		Where(sq.Eq{"id": sessionRowID}))
}

func buildDeleteSessionQuery() (string, []any, error) {
	return toSQL(sqlite.
		Delete("session").
		Where(sq.Eq{"id": sessionRowID}))
}

func buildSaveDraftQuery(draft models.Draft) (string, []any, error) {
	return toSQL(sqlite.
		Insert("drafts").
		Columns("note_id", "title", "content", "updated_at").
		Values(draft.NoteID, draft.Title, draft.Content, draft.UpdatedAt).
		Suffix("ON CONFLICT(note_id) DO UPDATE SET title = excluded.title, content = excluded.content, updated_at = excluded.updated_at"))
}

func buildGetDraftQuery(noteID string) (string, []any, error) {
	return toSQL(sqlite.
		Select("note_id", "title", "content", "updated_at").
		From("drafts").
		Where(sq.Eq{"note_id": noteID}))
}

func buildListDraftsQuery() (string, []any, error) {
	return toSQL(sqlite.
		Select("note_id", "title", "content", "updated_at").
		From("drafts").
		OrderBy("updated_at"))
}

func buildDeleteDraftQuery(noteID string) (string, []any, error) {
	return toSQL(sqlite.
		Delete("drafts").
		Where(sq.Eq{"note_id": noteID}))
}
