// Package token issues the opaque secrets embedded in check-in QR codes.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes is 32 random bytes (256 bits), double the 128-bit floor
// required to make guessing within a request's lifetime infeasible.
const tokenBytes = 32

// GenerateSecureToken returns a URL-safe opaque token from the OS
// CSPRNG. Stateless and safe for concurrent use.
func GenerateSecureToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
