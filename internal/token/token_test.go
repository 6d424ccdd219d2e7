package token

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	g := NewGenerator()

	tok, err := g.Generate()
	require.NoError(t, err)

	assert.Len(t, tok, ByteLength*2)

	decoded, err := hex.DecodeString(tok)
	require.NoError(t, err)
	assert.Len(t, decoded, ByteLength)
}

func TestGenerateUniqueness(t *testing.T) {
	g := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok, err := g.Generate()
		require.NoError(t, err)
		assert.False(t, seen[tok], "duplicate token generated")
		seen[tok] = true
	}
}
