// Package utils provides helpers shared by the go-notes server and client:
// typed context keys, request hashing, JSON responses, the resty HTTP client,
// JWT handling, identifier and share token generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey stores the authenticated user identifier (int64).
	UserIDCtxKey = contextKey("userID")

	// ShareTokenCtxKey stores the share token a request was made through.
	ShareTokenCtxKey = contextKey("shareToken")
)

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext retrieves the user identifier from the context.
// ok is false when the value is missing or is not an int64.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// WithShareToken returns a copy of ctx carrying the share token.
func WithShareToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ShareTokenCtxKey, token)
}

// GetShareTokenFromContext retrieves the share token from the context.
func GetShareTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ShareTokenCtxKey).(string)
	return token, ok && token != ""
}
