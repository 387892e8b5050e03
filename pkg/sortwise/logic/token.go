package logic

import "strings"

// NormalizeSymbol canonicalizes a free-text phrase into an identifier-safe
// token usable as a logical constant or predicate name. Characters outside
// letters, digits, underscore and space are stripped; the remainder is
// lowercased, split on whitespace and joined with '_'.
//
// Two phrases that normalize to the same token denote the same symbol.
// A phrase that normalizes to "" is not a valid symbol.
func NormalizeSymbol(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(' ')
		}
	}
	parts := strings.Fields(b.String())
	return strings.Join(parts, "_")
}

// Display returns the presentation form of a token: first byte capitalized.
// Tokens are ASCII by construction, so byte-level capitalization is safe.
func Display(token string) string {
	if token == "" {
		return ""
	}
	c := token[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return string(c) + token[1:]
}
