package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes the SHA-256 of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKey derives the cache key for a rendered artifact. The key covers
// everything the output depends on: the raw source document, the
// discovery mode, the output format, and the render options. Options are
// folded in via their JSON form, so any field change invalidates the key.
func RenderKey(doc []byte, mode, format string, opts any) string {
	optJSON, _ := json.Marshal(opts)
	h := sha256.New()
	h.Write(doc)
	h.Write(optJSON)
	fmt.Fprintf(h, "%s|%s", mode, format)
	return fmt.Sprintf("render:%s", hex.EncodeToString(h.Sum(nil)))
}
