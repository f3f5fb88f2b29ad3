package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion is bumped whenever the layout wire format changes, so entries
// written by older builds are never decoded.
const keyVersion = "v1"

// hashKey builds "<kind>:<version>:<sha256 of the JSON-encoded parts>".
// Parts are plain strings and option structs, which always marshal.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return kind + ":" + keyVersion + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
