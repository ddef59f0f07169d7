package tagged

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash computes a content-addressed identity for v.
// Format: hex(SHA256(domain + 0x00 + canonical(v))).
// The null byte separator prevents domain/data boundary ambiguity; the
// domain carries a version suffix so the algorithm can migrate.
func Hash(domain string, v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", domain, err)
	}
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}
