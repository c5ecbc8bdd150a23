// Package checksum fingerprints note content recorded in the rollover history.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

const prefix = "sha256:"

// Of returns the prefixed hex SHA-256 digest of a note's content.
func Of(content string) string {
	h := sha256.Sum256([]byte(content))
	return prefix + hex.EncodeToString(h[:])
}

