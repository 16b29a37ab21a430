package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// componentNameRegex matches valid component name tokens: alphanumerics and
// underscores, same character class the line grammar uses.
var componentNameRegex = regexp.MustCompile(`^\w+$`)

// ValidateComponentName validates a component name token.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Alphanumeric and underscore only
//   - Maximum length of 64 characters
func ValidateComponentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "component name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "component name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "component name contains control characters")
		}
	}

	if !componentNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid component name: %q", name)
	}

	return nil
}

// valueTokenRegex matches a value token: alphanumerics, underscores, and dots,
// no embedded spaces.
var valueTokenRegex = regexp.MustCompile(`^[\w.]+$`)

// ValidateValueToken validates an optional component value token ("330",
// "9V", "10uF"). The empty string is valid (value omitted).
func ValidateValueToken(value string) error {
	if value == "" {
		return nil
	}
	if strings.ContainsAny(value, " \t") {
		return New(ErrCodeInvalidInput, "value cannot contain spaces: %q", value)
	}
	if !valueTokenRegex.MatchString(value) {
		return New(ErrCodeInvalidInput, "invalid value token: %q", value)
	}
	return nil
}

// ValidateOutputPath validates an output file path for artifact writes.
// It prevents path traversal out of the working tree and rejects unprintable
// characters.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	return nil
}
