package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareTokenGenerator_Generate(t *testing.T) {
	g := NewShareTokenGenerator()

	seen := make(map[string]struct{})
	for range 100 {
		token, err := g.Generate()
		require.NoError(t, err)
		assert.Len(t, token, 32)
		assert.True(t, IsShareToken(token))
		assert.NotContains(t, token, "=")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "+")

		_, dup := seen[token]
		assert.False(t, dup)
		seen[token] = struct{}{}
	}
}

func TestIsShareToken(t *testing.T) {
	assert.False(t, IsShareToken(""))
	assert.False(t, IsShareToken("short"))
	assert.False(t, IsShareToken("!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"))
}

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	a, b := g.Generate(), g.Generate()
	assert.True(t, IsUUID(a))
	assert.NotEqual(t, a, b)
	assert.False(t, IsUUID("not-a-uuid"))
}
