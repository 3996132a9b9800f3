package cache

// This is a cache of per-class summaries across incremental runs. The idea
// is that a consumer which only needs a class's summary (its shape, not
// its method bodies) can skip recomputation entirely when the class's
// combined version is unchanged. This only works if:
//
//   - The summaries in the cache are considered immutable. They are shared
//     between runs; a consumer that wants to modify one must copy it.
//
//   - Entries are only reused under a complete cache key. The class-level
//     version does not cover member collections, so keys must come from
//     version.CacheKey with every consulted member version included.
//     Caching under the class-level version alone reuses stale summaries
//     when a single method body changes.
//
//   - An absent key is never cached and never hits: a class whose version
//     chain contains an unversionable member must be recomputed each run.

import (
	"sync"

	"github.com/goccy/go-json"

	"github.com/voltlang/voltlink/internal/ast"
	"github.com/voltlang/voltlink/internal/version"
)

type CacheSet struct {
	InfoCache InfoCache
}

func MakeCacheSet() *CacheSet {
	return &CacheSet{
		InfoCache: InfoCache{
			entries: make(map[string]ast.ClassInfo),
		},
	}
}

type InfoCache struct {
	mutex   sync.Mutex
	entries map[string]ast.ClassInfo
}

// infoKey is the map key: the class's stable name plus its combined
// version, JSON-encoded so the two parts cannot be confused with each
// other however they are spelled.
type infoKey struct {
	EncodedName string `json:"encodedName"`
	CacheKey    string `json:"cacheKey"`
}

func encodeInfoKey(encodedName string, key version.Token) string {
	bytes, err := json.Marshal(infoKey{EncodedName: encodedName, CacheKey: key.Value()})
	if err != nil {
		panic("Internal error")
	}
	return string(bytes)
}

// Get returns the cached summary for the class if one was stored under the
// exact same combined version key. An absent key never hits.
func (c *InfoCache) Get(encodedName string, key version.Token) (ast.ClassInfo, bool) {
	if !key.OK() {
		return ast.ClassInfo{}, false
	}
	mapKey := encodeInfoKey(encodedName, key)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	info, ok := c.entries[mapKey]
	if !ok {
		return ast.ClassInfo{}, false
	}
	return info, true
}

// Put stores a summary under its combined version key. Storing under an
// absent key is a no-op: such classes must be recomputed every run.
func (c *InfoCache) Put(encodedName string, key version.Token, info ast.ClassInfo) {
	if !key.OK() {
		return
	}
	mapKey := encodeInfoKey(encodedName, key)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[mapKey] = info
}

func (c *InfoCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}
