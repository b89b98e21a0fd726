package navigation

import (
	"fmt"
	"net/url"
	"strings"
)

// Escape percent-encodes every byte of s outside the RFC 3986 unreserved set
// (letters, digits, "-", "_", ".", "~") as uppercase %XX. The sidecar decodes
// the open query parameter with the same table, so this must not use the
// space-to-plus form encoding of net/url.QueryEscape.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9',
			c == '-', c == '_', c == '.', c == '~':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// BaseURL returns the sidecar's root URL for the given port.
func BaseURL(port uint16) string {
	return fmt.Sprintf("http://127.0.0.1:%d", port)
}

// OpenURL returns the navigation target that instructs the sidecar to open
// the named container.
func OpenURL(port uint16, fileName string) string {
	return fmt.Sprintf("%s/?open=%s", BaseURL(port), Escape(fileName))
}

// Allowed reports whether the window may navigate to rawURL. Only the local
// sidecar and internal pages are permitted; everything else is refused so a
// link inside served content cannot take over the window.
func Allowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme == "about" {
		return true
	}
	host := u.Hostname()
	return host == "127.0.0.1" || host == "localhost"
}
