package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

const TokenPrefix = "es_live_"

// GenerateSessionToken creates a random session token and its SHA256 hash.
//
// Returns:
//   - token: the value handed to the user once (e.g. "es_live_3f9a...")
//   - tokenHash: the hash kept in the database
//
// Example:
//
//	token, tokenHash, err := GenerateSessionToken()
func GenerateSessionToken() (string, string, error) {
	// 1. Generate 32 random bytes
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	// 2. Hex encode and prefix
	token := TokenPrefix + hex.EncodeToString(raw)

	// 3. Hash it - this is what we store
	return token, HashToken(token), nil
}

// HashToken returns the hex SHA256 of a token. Plain tokens are never stored.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ValidateToken checks a provided token against a stored hash in constant time.
func ValidateToken(providedToken, storedHash string) bool {
	computed := HashToken(providedToken)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
