package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxPrefixLength bounds export filename prefixes.
const maxPrefixLength = 64

// prefixRegex matches file prefixes that are safe on every common file system.
var prefixRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidatePrefix validates an export filename prefix.
// Export files are named <prefix>-<unixMillis>[-<page>].png, so the prefix
// must be a plain basename fragment:
//   - No empty prefixes
//   - No path separators or traversal sequences
//   - No control characters
//   - Maximum length of 64 characters
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidInput, "file prefix cannot be empty")
	}
	if len(prefix) > maxPrefixLength {
		return New(ErrCodeInvalidInput, "file prefix too long (max %d characters)", maxPrefixLength)
	}
	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "file prefix contains invalid control characters")
		}
	}
	if strings.Contains(prefix, "..") || strings.ContainsAny(prefix, `/\`) {
		return New(ErrCodeInvalidInput, "file prefix cannot contain path components: %q", prefix)
	}
	if !prefixRegex.MatchString(prefix) {
		return New(ErrCodeInvalidInput, "invalid file prefix: %q", prefix)
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateScale validates a raster scale factor.
func ValidateScale(scale float64) error {
	if scale <= 0 || scale > 8 {
		return New(ErrCodeInvalidConfig, "scale must be in (0, 8], got %g", scale)
	}
	return nil
}
