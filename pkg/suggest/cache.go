package suggest

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of queries a Cache remembers.
const DefaultCacheSize = 4096

// Cache remembers recent suggestion results. It is safe for concurrent use.
type Cache struct {
	lru     *lru.Cache[string, []Result]
	maxSize int
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCache returns a cache holding up to size queries.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	l, err := lru.NewWithEvict(size, func(key string, _ []Result) {
		log.Debugf("Evicted %q from suggestion cache", key)
	})
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l, maxSize: size}, nil
}

// CacheKey identifies a query by word and every option that changes results.
func CacheKey(word string, opts Options) string {
	var sb strings.Builder
	sb.WriteString(word)
	sb.WriteByte(0)
	sb.WriteString(strconv.Itoa(opts.NumSuggestions))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(opts.ChangeLimit))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatBool(opts.IncludeTies))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatBool(opts.IgnoreCase))
	sb.WriteByte(',')
	sb.WriteString(opts.CompoundMethod.String())
	sb.WriteByte(',')
	sb.WriteString(opts.CompoundSeparator)
	return sb.String()
}

// Get returns a copy of the cached results for key.
func (c *Cache) Get(key string) ([]Result, bool) {
	res, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return append([]Result(nil), res...), true
}

// Add stores results under key.
func (c *Cache) Add(key string, res []Result) {
	c.lru.Add(key, append([]Result(nil), res...))
}

// Suggest answers from the cache or asks s and remembers the answer. Queries
// with a custom filter bypass the cache.
func (c *Cache) Suggest(s Suggester, word string, opts Options) []Result {
	if opts.Filter != nil {
		return s.Suggest(word, opts)
	}
	key := CacheKey(word, opts)
	if res, ok := c.Get(key); ok {
		return res
	}
	res := s.Suggest(word, opts)
	c.Add(key, res)
	return res
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// Stats reports cache usage.
func (c *Cache) Stats() map[string]int {
	return map[string]int{
		"cacheEntries": c.lru.Len(),
		"maxEntries":   c.maxSize,
		"cacheHits":    int(c.hits.Load()),
		"cacheMisses":  int(c.misses.Load()),
	}
}
