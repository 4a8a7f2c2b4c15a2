package httputil

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// maxDetailPathLen bounds upstream detail paths. Anything longer is
// almost certainly garbage and would bloat cache keys.
const maxDetailPathLen = 512

// ValidateURL checks that a URL is well-formed and uses HTTPS.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("only HTTPS URLs are allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// ValidateDetailPath checks an upstream detail path. Detail paths are
// opaque and may legitimately contain slashes and unicode, so only
// control characters, traversal sequences, and excessive length are
// rejected.
func ValidateDetailPath(path string) error {
	if path == "" {
		return fmt.Errorf("detail path cannot be empty")
	}
	if len(path) > maxDetailPathLen {
		return fmt.Errorf("detail path too long: %d bytes", len(path))
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("detail path contains traversal: %q", path)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("detail path contains control character: %q", path)
		}
	}
	return nil
}
