package github

import (
	"regexp"
	"strconv"
)

// PageLink is the parsed form of the leading pagination Link header entry.
type PageLink struct {
	// URL is the target of the link relation.
	URL string

	// Page is the page number extracted from the URL's page= parameter.
	Page int

	// Rel is the link relation, e.g. "next" or "prev".
	Rel string
}

// linkPattern matches the leading entry of a Link header:
// <url>; rel="relation". The URL character class is deliberately
// conservative, and the URL must end in its page= parameter, which is
// where GitHub puts it.
var linkPattern = regexp.MustCompile(`^<([A-Za-z0-9/:.?_&=%-]+page=([0-9]+))>;\s*rel="([a-z]+)"`)

// ParseLink parses the raw value of a pagination Link header.
// A missing, empty or unrecognised header returns ok=false; it is never
// an error, just "no further pages".
func ParseLink(header string) (PageLink, bool) {
	if header == "" {
		return PageLink{}, false
	}

	matches := linkPattern.FindStringSubmatch(header)
	if matches == nil {
		return PageLink{}, false
	}

	// The character class guarantees digits.
	page, _ := strconv.Atoi(matches[2])

	return PageLink{
		URL:  matches[1],
		Page: page,
		Rel:  matches[3],
	}, true
}

// NextPageURL returns the URL to request next, if the header's leading
// entry is a "next" relation.
func NextPageURL(header string) (string, bool) {
	link, ok := ParseLink(header)
	if !ok || link.Rel != "next" {
		return "", false
	}
	return link.URL, true
}
