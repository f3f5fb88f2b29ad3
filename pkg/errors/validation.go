package errors

import (
	"strings"
	"unicode"
)

// MaxIDLength is the longest identifier accepted for nodes, edges and containers.
const MaxIDLength = 256

// ValidateID validates an entity identifier for safety and correctness.
// kind names the entity in the error message ("node", "edge", "container").
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No leading or trailing whitespace
//   - Maximum length of MaxIDLength bytes
//
// Identifiers end up in DOT files, cache keys and JSON documents, so anything
// that would need escaping in all three is rejected here.
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id contains invalid control characters", kind)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "%s id %q has surrounding whitespace", kind, id)
	}

	return nil
}

// ValidateName validates a human-readable name (container names, diagram titles).
// Names may contain spaces but not control characters.
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "%s name cannot be empty", kind)
	}
	for _, r := range name {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return New(ErrCodeInvalidInput, "%s name contains invalid control characters", kind)
		}
	}
	return nil
}
