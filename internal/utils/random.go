package utils

import (
	cryptoRand "crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomSecret generates a cryptographically secure random string using
// crypto/rand, URL-safe base64 encoded (A-Z, a-z, 0-9, -, _). Suitable for
// access keys and other security-sensitive identifiers.
func RandomSecret(length int) string {
	if length <= 0 {
		length = 32
	}

	// base64 encoding produces 4 chars per 3 bytes
	bytesNeeded := (length*3 + 3) / 4

	randomBytes := make([]byte, bytesNeeded)
	if _, err := cryptoRand.Read(randomBytes); err != nil {
		// crypto/rand failure indicates a serious system problem.
		panic(fmt.Sprintf("crypto/rand.Read failed: %v", err))
	}

	encoded := base64.RawURLEncoding.EncodeToString(randomBytes)
	if len(encoded) > length {
		return encoded[:length]
	}
	return encoded
}
