// Package normalize holds small canonicalization helpers applied to
// user-supplied identity fields before storage or lookup.
package normalize

import "strings"

// Username trims whitespace but preserves case for display.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// UsernameCI returns the case-insensitive lookup form of a username.
func UsernameCI(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role lowercases and trims a role name.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AuthMethod lowercases and trims an auth method name.
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
