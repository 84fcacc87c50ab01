package pathgraph

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// matchKeyCaches holds the two process-wide, append-only normalization
// caches spec.md §3.1 and §9 call for: one for case-sensitive graphs (NFKD
// only) and one for case-insensitive graphs (NFKD then lowercased with
// strings.ToLower).
// They are safe to share across graph instances on a single thread, and
// safe for concurrent use since sync.Map tolerates concurrent readers even
// though the graph itself is not thread-safe internally.
var matchKeyCaches = [2]sync.Map{}

// matchKey computes the normalized comparison key for name under the given
// case-sensitivity mode, consulting (and populating) the shared cache.
func matchKey(name string, caseSensitive bool) string {
	cacheIndex := 0
	if !caseSensitive {
		cacheIndex = 1
	}
	cache := &matchKeyCaches[cacheIndex]

	if cached, ok := cache.Load(name); ok {
		return cached.(string)
	}

	normalized := norm.NFKD.String(name)
	if !caseSensitive {
		normalized = strings.ToLower(normalized)
	}

	cache.Store(name, normalized)
	return normalized
}
