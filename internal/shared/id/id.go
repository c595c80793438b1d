// Package id provides audit run identifiers and input digests.
package id

import (
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// RunPrefix marks audit run ids in logs and URLs.
const RunPrefix = "run"

// NewRun returns a unique id for one audit run.
func NewRun() string {
	return RunPrefix + "_" + uuid.NewString()
}

// Digest returns a stable fingerprint of the input markup, used to spot
// repeat submissions of the same document.
func Digest(markup string) string {
	sum := blake2b.Sum256([]byte(markup))
	return hex.EncodeToString(sum[:16])
}
