package library

import (
	"net/url"
	"strings"
)

// normalizeText lowercases and collapses whitespace for search matching.
func normalizeText(t string) string {
	return strings.Join(strings.Fields(strings.ToLower(t)), " ")
}

// normalizeFeedURL gives two spellings of the same feed the same key:
// lowercase scheme and host, no fragment, no tracking params, no trailing slash.
func normalizeFeedURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "fbclid" || lk == "gclid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return strings.TrimRight(u.String(), "/")
}
