package pkg

import "github.com/google/uuid"

// GenerateGameID - generates a unique identifier for the room.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateSessionID - generates a unique identifier for a connection.
func GenerateSessionID() string {
	return uuid.NewString()
}
