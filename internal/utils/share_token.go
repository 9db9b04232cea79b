package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// shareTokenBytes is the amount of randomness in a share token: 192 bits,
// 32 characters once encoded.
const shareTokenBytes = 24

// ShareTokenGenerator produces unguessable URL-safe share tokens.
type ShareTokenGenerator struct{}

func NewShareTokenGenerator() *ShareTokenGenerator {
	return &ShareTokenGenerator{}
}

// Generate returns a new random token encoded with unpadded base64url.
func (g *ShareTokenGenerator) Generate() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// IsShareToken reports whether s has the shape of a generated share token.
func IsShareToken(s string) bool {
	if len(s) != base64.RawURLEncoding.EncodedLen(shareTokenBytes) {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(s)
	return err == nil
}
