package uid

import "github.com/google/uuid"

// GenerateGameID returns a fresh game identifier.
func GenerateGameID() string {
	return uuid.NewString()
}
