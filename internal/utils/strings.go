package utils

import "strings"

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeSeat cleans a user-supplied seat number ("  3a " -> "3A").
func NormalizeSeat(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
