package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateCheckInToken returns a 64-character hex string backed by 32 bytes
// of crypto/rand entropy, used as the opaque QR check-in token.
func GenerateCheckInToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
