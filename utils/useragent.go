package utils

import (
	ua "github.com/mileusna/useragent"
)

// ParseUserAgent extracts browser, OS and device type from a User-Agent
// string for login audit logging.
func ParseUserAgent(userAgent string) (browser, os, device string) {
	if userAgent == "" {
		return "Unknown Browser", "Unknown OS", "Desktop"
	}

	parsed := ua.Parse(userAgent)

	browser = parsed.Name
	if browser == "" {
		browser = "Unknown Browser"
	}

	os = parsed.OS
	if os == "" {
		os = "Unknown OS"
	}

	switch {
	case parsed.Mobile:
		device = "Mobile"
	case parsed.Tablet:
		device = "Tablet"
	default:
		device = "Desktop"
	}

	return browser, os, device
}
