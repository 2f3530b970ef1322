// Package strings provides character-class helpers shared by the form
// validators. Digit and letter classes are ASCII only.
package strings

import (
	"strings"
)

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// DigitsOnly drops every character that is not 0-9.
//
// Example:
//
//	DigitsOnly("$1.250.000 COP")
//	// Returns: "1250000"
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// CountDigits counts the 0-9 characters in s.
func CountDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			n++
		}
	}
	return n
}

// AllDigits reports whether s is non-empty and made only of 0-9.
func AllDigits(s string) bool {
	if s == "" {
		return false
	}
	return CountDigits(s) == len(s)
}

// ContainsLetter reports whether s has at least one a-z or A-Z character.
func ContainsLetter(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
