package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Sum returns the hex encoded SHA-256 digest of data
func SHA256Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
