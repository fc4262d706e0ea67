package errors

import (
	"strings"
	"unicode"
)

// ValidateRoomName validates a room name for safety and correctness.
// Room names end up verbatim in output documents (JSON keys, SVG text, DOT
// node IDs), so the rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateRoomName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRoom, "room name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidRoom, "room name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRoom, "room name contains invalid control characters")
		}
	}

	if strings.Contains(name, "\x00") {
		return New(ErrCodeInvalidRoom, "room name contains null byte")
	}

	return nil
}

// ValidatePlanName validates a plan name (used for output prefixes and file
// names). Same character rules as room names, plus no path separators.
func ValidatePlanName(name string) error {
	if name == "" {
		return nil // Plan names are optional
	}

	if err := ValidateRoomName(name); err != nil {
		return New(ErrCodeInvalidPlan, "invalid plan name: %s", UserMessage(err))
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPlan, "plan name cannot contain path separators")
	}

	return nil
}
