package changedetect

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// ComputeHash returns the SHA-256 of an asset's canonical form as a
// lowercase hex string. Identical logical assets hash identically
// regardless of key insertion order or volatile field values.
func ComputeHash(asset map[string]any) (string, error) {
	normalized, err := Normalize(asset)
	if err != nil {
		return "", err
	}

	canonical, err := canonicalJSON(normalized)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%x", sum), nil
}

// Equal reports whether two assets carry the same material content.
func Equal(a, b map[string]any) (bool, error) {
	ha, err := ComputeHash(a)
	if err != nil {
		return false, err
	}
	hb, err := ComputeHash(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

// HashComponents returns the normalized form that would be hashed, for
// debugging which fields contribute to the digest.
func HashComponents(asset map[string]any) (map[string]any, error) {
	return Normalize(asset)
}

// canonicalJSON serializes with sorted keys, no incidental whitespace and
// no HTML escaping.
func canonicalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("serializing canonical form: %w", err)
	}
	// Encode appends a newline that is not part of the canonical form.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
