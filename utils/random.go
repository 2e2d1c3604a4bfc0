package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RequestID returns a random hex identifier used to correlate
// client requests in server logs.
func RequestID() (string, error) {
	byt := make([]byte, 8)

	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	return hex.EncodeToString(byt), nil
}
