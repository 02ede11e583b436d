package suggest

import (
	"testing"

	"github.com/bastiangx/wordtrie/pkg/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSuggest(t *testing.T) {
	d := dict("talk", "talks", "walk", "walks")
	c, err := NewCache(8)
	require.NoError(t, err)

	opts := DefaultOptions()
	first := c.Suggest(d, "talks", opts)
	second := c.Suggest(d, "talks", opts)
	assert.Equal(t, first, second)

	stats := c.Stats()
	assert.Equal(t, 1, stats["cacheHits"])
	assert.Equal(t, 1, stats["cacheMisses"])
	assert.Equal(t, 1, stats["cacheEntries"])
	assert.Equal(t, 8, stats["maxEntries"])

	// Results handed out are copies.
	second[0].Word = "changed"
	third := c.Suggest(d, "talks", opts)
	assert.Equal(t, "talks", third[0].Word)
}

func TestCacheKeyOptions(t *testing.T) {
	opts := DefaultOptions()
	base := CacheKey("talks", opts)

	tests := []struct {
		name   string
		modify func(o *Options)
	}{
		{"limit", func(o *Options) { o.NumSuggestions = 3 }},
		{"change limit", func(o *Options) { o.ChangeLimit = 2 }},
		{"ties", func(o *Options) { o.IncludeTies = true }},
		{"case", func(o *Options) { o.IgnoreCase = false }},
		{"compound", func(o *Options) { o.CompoundMethod = walker.SeparateWords }},
		{"separator", func(o *Options) { o.CompoundSeparator = "+" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := opts
			tt.modify(&o)
			assert.NotEqual(t, base, CacheKey("talks", o))
		})
	}
	assert.NotEqual(t, base, CacheKey("walks", opts))
}

func TestCacheBypassesFilter(t *testing.T) {
	d := dict("talk", "talks", "walk", "walks")
	c, err := NewCache(0)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Filter = func(w string, _ int) bool { return w != "talk" }
	got := c.Suggest(d, "talks", opts)
	assert.NotContains(t, words(got), "talk")

	stats := c.Stats()
	assert.Zero(t, stats["cacheEntries"])
	assert.Zero(t, stats["cacheMisses"])
	assert.Equal(t, DefaultCacheSize, stats["maxEntries"])
}

func TestCachePurge(t *testing.T) {
	d := dict("talk")
	c, err := NewCache(2)
	require.NoError(t, err)
	c.Suggest(d, "talk", DefaultOptions())
	c.Suggest(d, "tlak", DefaultOptions())
	c.Suggest(d, "tak", DefaultOptions())
	assert.Equal(t, 2, c.Stats()["cacheEntries"])

	c.Purge()
	assert.Zero(t, c.Stats()["cacheEntries"])
	_, ok := c.Get(CacheKey("talk", DefaultOptions()))
	assert.False(t, ok)
}
