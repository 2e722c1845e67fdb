// Package fingerprint turns caller identifiers into stable, non-reversible
// tokens for the submission ledger.
package fingerprint

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Hasher produces keyed BLAKE2b-256 digests. The zero value hashes without
// a key.
type Hasher struct {
	key []byte
}

// New returns a Hasher keyed with secret. A secret longer than 64 bytes is
// truncated to the BLAKE2b key limit.
func New(secret string) *Hasher {
	k := []byte(secret)
	if len(k) > blake2b.Size {
		k = k[:blake2b.Size]
	}
	return &Hasher{key: k}
}

// Of returns the hex digest of v, or "" when v is blank.
func (h *Hasher) Of(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	var key []byte
	if h != nil {
		key = h.key
	}
	d, err := blake2b.New256(key)
	if err != nil {
		// only possible with a key over 64 bytes, which New prevents
		return ""
	}
	d.Write([]byte(v))
	return hex.EncodeToString(d.Sum(nil))
}
