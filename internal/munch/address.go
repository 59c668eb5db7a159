package munch

import (
	"regexp"
	"strings"
)

var streetAddressPattern = regexp.MustCompile(`^\d+\s+[\w\s.]+,\s*([A-Z]{2})$`)

// TrimStateAndCountry drops the trailing state and country segments from a
// formatted address so only the street and city remain. Addresses with two or
// fewer comma-separated parts are returned unchanged.
func TrimStateAndCountry(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) <= 2 {
		return address
	}
	return strings.TrimSpace(strings.Join(parts[:len(parts)-2], ","))
}

// IsValidAddress reports whether the input looks like a street address.
// The empty string is considered valid so an untouched input field does not
// flag an error.
func IsValidAddress(address string) bool {
	if address == "" {
		return true
	}
	return streetAddressPattern.MatchString(address)
}
