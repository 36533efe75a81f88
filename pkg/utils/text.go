package utils

import (
	"regexp"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// CleanText removes extra whitespace and normalizes text
func CleanText(text string) string {
	// Collapse runs of whitespace to single spaces
	text = spaceRe.ReplaceAllString(text, " ")

	// Trim leading and trailing whitespace
	text = strings.TrimSpace(text)

	return text
}

// StripControl removes control characters (C0, DEL and C1) from a string.
// Spreadsheet writers reject cells containing them.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		return r
	}, s)
}

// HostOf extracts the lowercased host from a URL-ish string without
// requiring it to parse. Port numbers are kept out.
func HostOf(rawURL string) string {
	s := rawURL
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
	}
	if idx := strings.IndexAny(s, "/?#"); idx >= 0 {
		s = s[:idx]
	}
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[:idx]
	}
	return strings.ToLower(s)
}
