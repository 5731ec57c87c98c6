package discovery

import (
	"regexp"
	"strings"
)

// Provenance tags recorded alongside an extracted contact email.
const (
	// EmailSourceAbout marks an email found in the channel title or
	// description returned by the stats call.
	EmailSourceAbout = "about"
	// EmailSourceVideo marks an email found by the deep scan over recent
	// upload descriptions.
	EmailSourceVideo = "video"
)

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// emailDenylist suppresses placeholder addresses. Substring match on the
// lower-cased candidate, so "test" also rejects test123@ and @testmail.
var emailDenylist = []string{"example.com", "noreply", "test"}

// ExtractEmail returns the first plausible contact email in text, or the
// empty string. Deterministic and pure; callers chain it over multiple
// text sources in priority order and keep the first hit.
func ExtractEmail(text string) string {
	for _, candidate := range emailPattern.FindAllString(text, -1) {
		if !denylisted(candidate) {
			return candidate
		}
	}
	return ""
}

func denylisted(email string) bool {
	lower := strings.ToLower(email)
	for _, marker := range emailDenylist {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
