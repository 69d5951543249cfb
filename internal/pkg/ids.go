package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	roomCodeLength = 6
	roomCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateGameID - returns a random UUID for a game document.
func GenerateGameID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}

	return id.String(), nil
}

// GeneratePlayerID - returns a random UUID for a player session.
func GeneratePlayerID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate player id: %w", err)
	}

	return id.String(), nil
}

// GenerateRoomCode - returns a short upper-case code players can type to join a private room.
func GenerateRoomCode() (string, error) {
	code := make([]byte, roomCodeLength)
	limit := big.NewInt(int64(len(roomCodeChars)))

	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate room code: %w", err)
		}

		code[i] = roomCodeChars[n.Int64()]
	}

	return string(code), nil
}
