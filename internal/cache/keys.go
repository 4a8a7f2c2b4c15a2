package cache

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// maxDetailKeyLen bounds detail keys for the shared store. The bound
// trades reversibility on over-long paths for a predictable key size.
const maxDetailKeyLen = 96

// CategoryKey derives the fingerprint for a category page request.
func CategoryKey(action string, page int) string {
	return fmt.Sprintf("%s_%d", action, page)
}

// SearchKey derives the fingerprint for a search request: case-folded
// query with whitespace runs collapsed to underscores.
func SearchKey(query string) string {
	folded := strings.ToLower(strings.TrimSpace(query))
	return "search_" + strings.Join(strings.Fields(folded), "_")
}

// DetailKey derives the fingerprint for a detail request. Detail paths
// carry slashes and unicode, so the raw path is unusable as a store
// key; a reversible URL-safe base64 encoding is used instead,
// truncated to the key bound.
func DetailKey(detailPath string) string {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(detailPath))
	if len(encoded) > maxDetailKeyLen {
		encoded = encoded[:maxDetailKeyLen]
	}
	return "detail_" + encoded
}
