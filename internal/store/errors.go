package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user with the same email is
	// already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a user lookup matches no rows.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoteNotFound is returned when the note does not exist, belongs to
	// another user, or (for share token lookups) is not public.
	ErrNoteNotFound = errors.New("note not found")

	// ErrNoteNotShared is returned when a public-edit change targets a
	// private note.
	ErrNoteNotShared = errors.New("note is not shared")

	// ErrShareTokenConflict is returned when a freshly generated share token
	// collides with an existing one.
	ErrShareTokenConflict = errors.New("share token already in use")
)

// Client-side store errors.
var (
	// ErrLocalSessionNotFound is returned when no signed-in session is stored
	// on this device.
	ErrLocalSessionNotFound = errors.New("local session not found")

	// ErrDraftNotFound is returned when no unsaved draft exists for a note.
	ErrDraftNotFound = errors.New("draft not found")
)

// Low-level database operation errors, wrapped together with the driver
// error as fmt.Errorf("%w: %w", ErrX, err).
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to executing statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
