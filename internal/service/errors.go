package service

import "errors"

var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrWrongPassword           = errors.New("wrong password")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)

// Note errors.
var (
	// ErrEmptyNote is returned when a title or a content is blank.
	ErrEmptyNote = errors.New("title and content are required")

	// ErrTitleTooLong is returned when a title exceeds maxTitleRunes.
	ErrTitleTooLong = errors.New("title is too long")

	// ErrContentTooLarge is returned when a content exceeds maxContentBytes.
	ErrContentTooLarge = errors.New("content is too large")

	// ErrInvalidNoteID is returned when a note id is not a UUID.
	ErrInvalidNoteID = errors.New("invalid note id")

	// ErrNoUserID is returned when an owner operation runs without an
	// authenticated user.
	ErrNoUserID = errors.New("no user id was given")

	// ErrShareTokenGeneration is returned when no unique share token could
	// be produced.
	ErrShareTokenGeneration = errors.New("share token generation failed")
)

// Share link errors.
var (
	// ErrNoteNotShared is returned for share links that do not resolve to a
	// public note. Its text is shown to anonymous visitors as is.
	ErrNoteNotShared = errors.New("note not found or not shared")

	// ErrPublicEditNotAllowed is returned when a share link visitor tries to
	// edit a note whose owner did not allow public editing.
	ErrPublicEditNotAllowed = errors.New("public editing is not allowed for this note")
)

// Client errors.
var (
	// ErrSessionExpired is returned by RestoreSession when the remembered
	// token can no longer be used. The local session is removed.
	ErrSessionExpired = errors.New("session expired, please sign in again")

	// ErrIntegrityCheckFailed is returned when the server rejects the
	// HashSHA256 signature of a request.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrNothingToImport is returned when an import pattern matches no
	// markdown or html files.
	ErrNothingToImport = errors.New("no markdown or html files matched")

	// ErrEmptyExportDir is returned when no export directory is given.
	ErrEmptyExportDir = errors.New("export directory is not specified")
)
