package sanitize

import "strings"

// Replacement is written in place of every character outside [A-Za-z0-9_].
const Replacement = '_'

// Sanitize maps a relative resource path to an identifier made only of
// [A-Za-z0-9_]. Every other rune becomes a single underscore; each byte of
// invalid UTF-8 also becomes one underscore. Runs of underscores are kept
// and case is preserved, so distinct paths can collide:
//   - "a/b.txt" -> "a_b_txt"
//   - "a-b.txt" -> "a_b_txt"
func Sanitize(relativePath string) string {
	var b strings.Builder

	b.Grow(len(relativePath))

	for _, r := range relativePath {
		if IsIdentifierRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(Replacement)
		}
	}

	return b.String()
}

// IsIdentifierRune reports whether r is kept as-is by Sanitize.
func IsIdentifierRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	default:
		return r == '_'
	}
}

// IsIdentifier reports whether s is non-empty and already consists only of
// characters Sanitize would keep.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !IsIdentifierRune(r) {
			return false
		}
	}

	return true
}
