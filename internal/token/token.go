// Package token produces the opaque access tokens embedded in shareable quiz
// links. Tokens carry no semantic content; lookups are by exact equality
// against the stored value.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ByteLength is the raw entropy per token. 32 bytes (256 bits) hex-encodes to
// the 64-character tokens the quiz_links schema stores.
const ByteLength = 32

type Generator interface {
	Generate() (string, error)
}

type generator struct{}

func NewGenerator() Generator {
	return &generator{}
}

// Generate returns a 64-character lowercase hex token from a cryptographically
// secure source. Persistence and uniqueness are the caller's responsibility; a
// collision on insert should be treated as retryable.
func (g *generator) Generate() (string, error) {
	buf := make([]byte, ByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes for link token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
