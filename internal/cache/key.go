package cache

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// GenerateKey derives a stable cache key from a set of source/filter tokens
// and a result limit. Tokens are normalized (scheme, trailing slash, and feed
// suffix stripped) and sorted before hashing, so the key is independent of
// input ordering.
func GenerateKey(tokens []string, limit int) string {
	normalized := make([]string, 0, len(tokens))
	for _, t := range tokens {
		n := normalizeToken(t)
		if n != "" {
			normalized = append(normalized, n)
		}
	}
	sort.Strings(normalized)

	payload := strings.Join(normalized, "|") + fmt.Sprintf("|limit=%d", limit)
	sum := sha256.Sum256([]byte(payload))
	return fmt.Sprintf("%x", sum[:16])
}

func normalizeToken(token string) string {
	t := strings.TrimSpace(strings.ToLower(token))
	t = strings.TrimPrefix(t, "https://")
	t = strings.TrimPrefix(t, "http://")
	t = strings.TrimSuffix(t, "/")
	t = strings.TrimSuffix(t, "/feed")
	return t
}
