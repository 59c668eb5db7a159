package munch

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultPhoneRegion = "US"

// DisplayPhone returns the human-readable phone for a business. The directory
// API usually supplies one; when it does not, the raw E.164 number is
// formatted for the given region (national form for domestic numbers,
// international otherwise). Region defaults to US.
func DisplayPhone(display, raw, region string) string {
	display = strings.TrimSpace(display)
	if display != "" {
		return display
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = defaultPhoneRegion
	}

	parsed, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return raw
	}

	if phonenumbers.GetRegionCodeForNumber(parsed) == region {
		return phonenumbers.Format(parsed, phonenumbers.NATIONAL)
	}
	return phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL)
}
