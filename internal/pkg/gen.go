package pkg

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"
)

// NewGameID - generates a unique id for a game session.
func NewGameID() string {
	return uuid.NewString()
}

// NewConnectionID - generates a new unique connection id.
func NewConnectionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.NewString()
	}

	return base64.RawURLEncoding.EncodeToString(b)
}
