package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"user_id,omitempty"`

	// Email is the unique sign-in identifier, stored lower-cased.
	Email string `json:"email"`

	// Password is the plain-text password sent on sign in and sign up.
	// It is never stored nor returned by the server.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash persisted in the database.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a copy of the user without credentials.
func (u User) Public() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}
