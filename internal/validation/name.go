package validation

import (
	"strings"
)

// ValidateName validates profile name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return newError("name is required")
	}

	if len(trimmed) > 100 {
		return newError("name is too long (max 100 characters)")
	}

	return nil
}
