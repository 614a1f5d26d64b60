package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates an input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style paths)
//
// Absolute paths and parent references are allowed: paths come from the
// local user, not from a remote caller.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// elementIDRegex matches identifiers that are safe both as an HTML id and
// inside an SVG url(#...) reference.
var elementIDRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateElementID validates the id of the container element that hosts the diagram.
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "element id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "element id too long (max 128 characters)")
	}
	if !elementIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid element id: %q", id)
	}
	return nil
}

// ValidateIDPrefix validates a prefix prepended to generated gradient ids.
// An empty prefix is valid.
func ValidateIDPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if err := ValidateElementID(prefix); err != nil {
		return New(ErrCodeInvalidInput, "invalid id prefix: %q", prefix)
	}
	return nil
}
