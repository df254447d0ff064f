package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// giftSecretBytes is the entropy of a gift claim secret. 24 random bytes
// hex-encode to a 48-character secret.
const giftSecretBytes = 24

// GenerateGiftSecret mints a high-entropy claim secret from the OS
// CSPRNG. The secret is handed to the sender exactly once and is never
// persisted; only its hash is stored.
func GenerateGiftSecret() (string, error) {
	buf := make([]byte, giftSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating gift secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashSecret computes the hex SHA-256 digest of a claim secret. The
// digest is deterministic, so it doubles as the lookup key for claiming
// a gift.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
