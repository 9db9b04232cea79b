package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a signed JWT issued on sign in and sign up.
//
// The embedded [jwt.Token] is used for signing and claim inspection on the
// server; only SignedString travels to the client, inside the
// "Authorization: Bearer" header.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form of the token.
	SignedString string `json:"-"`

	// UserID is the parsed "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the "sub" claim as a base-10 user identifier.
func (t *Token) GetUserID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Bearer returns the value of the Authorization header carrying the token.
func (t *Token) Bearer() string {
	return "Bearer " + t.SignedString
}

// String implements [fmt.Stringer].
func (t *Token) String() string {
	return t.SignedString
}
