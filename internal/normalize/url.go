package normalize

import (
	"net/url"
	"strings"
)

// Website cleans a free-text website value for a canonical document.
// A missing scheme becomes https. Values that still do not parse as an
// absolute http(s) URL with a dotted host and no userinfo return "".
func Website(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + strings.TrimPrefix(s, "//")
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.User != nil {
		return ""
	}
	if !strings.Contains(u.Hostname(), ".") || strings.ContainsAny(u.Host, " ") {
		return ""
	}
	return u.String()
}
