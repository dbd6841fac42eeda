// Package shared provides small helpers used by the types, core and
// adapters packages of changes2aptly.
package shared

import (
	"fmt"
	"strings"
)

// IsHex reports whether value is non-empty and consists only of
// hexadecimal digits in either case.
func IsHex(value string) bool {
	if value == "" {
		return false
	}
	for _, c := range value {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// IsHexDigest reports whether value is a hex digest of exactly length
// characters.
func IsHexDigest(value string, length int) bool {
	return len(value) == length && IsHex(value)
}

// ReplaceSuffix swaps suffix for replacement at the end of value. Values
// without the suffix only get the replacement appended.
func ReplaceSuffix(value string, suffix string, replacement string) string {
	return strings.TrimSuffix(value, suffix) + replacement
}

// FileError formats the context attached to errors about a single file
// listed in a changes file.
func FileError(name string, path string) error {
	return fmt.Errorf("file=%s changes=%s", name, path)
}
