// Package normalize holds small canonicalization helpers applied before
// values are persisted or compared.
package normalize

import "strings"

// Email lowercases and trims an email address so lookups are
// case-insensitive regardless of how the address was typed.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Field trims surrounding whitespace from a free-form form field.
func Field(s string) string {
	return strings.TrimSpace(s)
}
