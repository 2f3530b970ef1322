// Package email masks addresses before they reach log lines.
package email

import (
	"strings"
)

// Mask keeps the first character of the local part and the full domain.
// Values without a usable local part are fully masked.
//
// Example:
//
//	Mask("ana.perez@example.com")
//	// Returns: "a***@example.com"
func Mask(address string) string {
	address = strings.TrimSpace(address)
	at := strings.LastIndexByte(address, '@')
	if at <= 0 {
		return "***"
	}
	local, domain := address[:at], address[at+1:]
	runes := []rune(local)
	return string(runes[0]) + "***@" + domain
}
