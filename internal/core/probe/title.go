package probe

import (
	"regexp"
	"strings"
)

// Browsers that cannot be queried directly expose the page only through the
// window title. Extraction tries, in order: a "Title – Domain" delimiter
// split, a "Title (Domain)" parenthetical, a "Domain: Title" colon split, a
// raw URL substring, and finally a bare domain-shaped substring.

var (
	// label(.label)+ with a TLD of at least two characters
	domainRe = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`)

	urlRe        = regexp.MustCompile(`https?://[^\s")]+`)
	bareDomainRe = regexp.MustCompile(`[a-zA-Z0-9][a-zA-Z0-9-]*(\.[a-zA-Z0-9][a-zA-Z0-9-]*)+\.?`)
)

// Internal/ephemeral browser pages carry no activity content
var internalURLPrefixes = []string{
	"about:",
	"chrome://",
	"chrome-extension://",
	"edge://",
	"brave://",
	"opera://",
	"vivaldi://",
	"arc://",
	"moz-extension://",
	"safari-web-extension://",
	"chrome-search://",
	"devtools://",
	"view-source:",
}

var internalPageNames = []string{
	"newtab",
	"new tab",
	"start page",
	"speed dial",
}

// IsValidDomain reports whether s looks like a registrable domain:
// dot-separated labels with a TLD of two or more letters.
func IsValidDomain(s string) bool {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	if !strings.Contains(s, ".") {
		return false
	}
	return domainRe.MatchString(s)
}

// IsInternalURL reports whether the URL is a browser-internal page
// (new tab, extension, about:, internal resource schemes).
func IsInternalURL(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))
	for _, prefix := range internalURLPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	for _, name := range internalPageNames {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

// StripWWW normalizes a domain by removing a single leading "www." label.
// Idempotent: stripping an already-stripped domain is a no-op.
func StripWWW(domain string) string {
	return strings.TrimPrefix(domain, "www.")
}

// DomainFromURL extracts the host portion of a URL string
func DomainFromURL(url string) string {
	s := strings.TrimSpace(url)
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
	}
	for _, sep := range []string{"/", "?", "#", ":"} {
		if idx := strings.Index(s, sep); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.ToLower(s)
}

// ExtractFromTitle attempts to recover the page domain (and URL when one is
// embedded verbatim) from a browser window title. Returns empty strings
// when nothing domain-shaped is found.
func ExtractFromTitle(title string) (domain, url string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ""
	}

	// 1. "Title – Domain" style: the page domain trails a dash separator
	for _, sep := range []string{" - ", " – ", " — "} {
		if idx := strings.LastIndex(title, sep); idx >= 0 {
			candidate := cleanCandidate(title[idx+len(sep):])
			if IsValidDomain(candidate) {
				return strings.ToLower(candidate), ""
			}
		}
	}

	// 2. "Title (Domain)" parenthetical
	if open := strings.LastIndex(title, "("); open >= 0 {
		if close := strings.Index(title[open:], ")"); close > 0 {
			candidate := cleanCandidate(title[open+1 : open+close])
			if IsValidDomain(candidate) {
				return strings.ToLower(candidate), ""
			}
		}
	}

	// 3. "Domain: Title" colon split
	if idx := strings.Index(title, ":"); idx > 0 {
		candidate := cleanCandidate(title[:idx])
		if IsValidDomain(candidate) {
			return strings.ToLower(candidate), ""
		}
	}

	// 4. Raw URL substring
	if match := urlRe.FindString(title); match != "" {
		if !IsInternalURL(match) {
			if d := DomainFromURL(match); IsValidDomain(d) {
				return d, match
			}
		}
	}

	// 5. Bare domain-shaped substring
	for _, match := range bareDomainRe.FindAllString(title, -1) {
		candidate := cleanCandidate(match)
		if IsValidDomain(candidate) {
			return strings.ToLower(candidate), ""
		}
	}

	return "", ""
}

// cleanCandidate trims punctuation and scheme noise around a domain candidate
func cleanCandidate(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.Trim(s, ".,;")
	if idx := strings.IndexAny(s, "/? "); idx >= 0 {
		s = s[:idx]
	}
	return s
}
