package rules

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Digest returns the hex encoded SHA3-256 digest of a rule file's content.
// Run history stores it to notice edits that leave the rule count unchanged.
func Digest(text string) string {
	sum := sha3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
