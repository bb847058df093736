package localizer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// HashSnapshot fingerprints the translatable content of a snapshot.
//
// The snapshot is serialized as canonical JSON (encoding/json emits map keys
// in sorted order and struct fields in declaration order), so the digest is
// independent of the insertion order of block data keys. A stored translation
// whose SourceHash no longer matches the live snapshot's hash is outdated.
func HashSnapshot(s *ContentSnapshot) string {
	if s == nil {
		return ""
	}
	b, err := json.Marshal(s)
	if err != nil {
		// Block data holding non-serializable values only occurs for
		// snapshots built by hand; the Go-syntax form is still stable.
		b = []byte(fmt.Sprintf("%#v", s))
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])
}

// CacheKey generates a cache key for a text hash and locale pair.
func CacheKey(hash, sourceLang, targetLang string) string {
	return hash + ":" + sourceLang + ":" + targetLang
}
