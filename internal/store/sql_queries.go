package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-notes/models"
)

// psql is the statement builder for PostgreSQL ($1, $2, ... placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{"user_id", "email", "password_hash", "created_at"}

var noteColumns = []string{
	"id",
	"user_id",
	"title",
	"content",
	"created_at",
	"updated_at",
	"is_public",
	"share_token",
	"allow_public_edit",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func toSQL(b sq.Sqlizer) (string, []any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// ── users ────────────────────────────────────────────────────────────────────

func buildCreateUserQuery(user models.User) (string, []any, error) {
	return toSQL(psql.
		Insert("users").
		Columns("email", "password_hash").
		Values(user.Email, user.PasswordHash).
		Suffix(returning(userColumns)))
}

func buildFindUserQuery(where sq.Eq) (string, []any, error) {
	return toSQL(psql.
		Select(userColumns...).
		From("users").
		Where(where))
}

// ── notes: owner ─────────────────────────────────────────────────────────────

func buildCreateNoteQuery(note models.Note) (string, []any, error) {
	return toSQL(psql.
		Insert("notes").
		Columns("id", "user_id", "title", "content").
		Values(note.ID, note.UserID, note.Title, note.Content).
		Suffix(returning(noteColumns)))
}

func buildGetNoteQuery(userID int64, noteID string) (string, []any, error) {
	return toSQL(psql.
		Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"id": noteID, "user_id": userID}))
}

func buildListNotesQuery(userID int64) (string, []any, error) {
	return toSQL(psql.
		Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id DESC"))
}

func buildUpdateNoteContentQuery(userID int64, noteID string, content models.NoteContent) (string, []any, error) {
	return toSQL(psql.
		Update("notes").
		Set("title", content.Title).
		Set("content", content.Content).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": noteID, "user_id": userID}).
		Suffix(returning(noteColumns)))
}

func buildDeleteNoteQuery(userID int64, noteID string) (string, []any, error) {
	return toSQL(psql.
		Delete("notes").
		Where(sq.Eq{"id": noteID, "user_id": userID}))
}

// buildSetSharingQuery writes all three sharing columns at once so that the
// notes_token_requires_public check constraint always sees a consistent row.
func buildSetSharingQuery(userID int64, noteID string, isPublic bool, token *string, allowPublicEdit bool) (string, []any, error) {
	return toSQL(psql.
		Update("notes").
		Set("is_public", isPublic).
		Set("share_token", token).
		Set("allow_public_edit", allowPublicEdit).
		Where(sq.Eq{"id": noteID, "user_id": userID}).
		Suffix(returning(noteColumns)))
}

func buildSetPublicEditQuery(userID int64, noteID string, allow bool) (string, []any, error) {
	return toSQL(psql.
		Update("notes").
		Set("allow_public_edit", allow).
		Where(sq.Eq{"id": noteID, "user_id": userID, "is_public": true}).
		Suffix(returning(noteColumns)))
}

// ── notes: share link ────────────────────────────────────────────────────────

func buildGetSharedNoteQuery(token string) (string, []any, error) {
	return toSQL(psql.
		Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"share_token": token, "is_public": true}))
}

func buildUpdateSharedNoteQuery(token string, content models.NoteContent) (string, []any, error) {
	return toSQL(psql.
		Update("notes").
		Set("title", content.Title).
		Set("content", content.Content).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"share_token": token, "is_public": true, "allow_public_edit": true}).
		Suffix(returning(noteColumns)))
}
