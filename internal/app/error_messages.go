// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the error messages written into {"error": "..."}
// response bodies. The server writes them and the client matches them to
// restore typed errors, so both sides share this list.
package app

const (
	MsgInvalidDataProvided      = "invalid data provided"
	MsgInvalidJSON              = "invalid JSON was passed"
	MsgWrongEmailPassword       = "wrong email or password"
	MsgTokenIsExpiredOrInvalid  = "token is expired or invalid"
	MsgEmptyAuthorizationHeader = "empty `Authorization` header"
	MsgIntegrityCheckFailed     = "integrity check failed"
	MsgEmailAlreadyExists       = "email already exists"
	MsgUserNotFound             = "no user was found"

	MsgEmptyNote       = "title and content are required"
	MsgTitleTooLong    = "title is too long"
	MsgContentTooLarge = "content is too large"
	MsgNoteNotFound    = "note not found"

	// MsgNoteNotShared is also shown on the share page, so it does not tell
	// a missing note from a private one.
	MsgNoteNotShared        = "note not found or not shared"
	MsgNoteIsPrivate        = "note is not shared"
	MsgPublicEditNotAllowed = "public editing is not allowed for this note"
)
