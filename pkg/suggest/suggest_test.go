package suggest

import (
	"slices"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/bastiangx/wordtrie/pkg/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dict(words ...string) *Dictionary {
	return NewDictionary(trie.NewBuilder().InsertList(words).BuildDAWG())
}

func words(res []Result) []string {
	out := make([]string, len(res))
	for i, r := range res {
		out[i] = r.Word
	}
	return out
}

func TestSuggestCosts(t *testing.T) {
	d := dict("talk", "talks", "talked", "talker", "walk", "walks")
	opts := DefaultOptions()
	got := d.Suggest("talks", opts)
	want := []Result{
		{"talks", 0},
		{"talk", 96},
		{"walks", 99},
		{"talked", 189},
		{"talker", 189},
		{"walk", 195},
	}
	assert.Equal(t, want, got)
}

func TestSuggestLimit(t *testing.T) {
	d := dict("talk", "talks", "talked", "talker", "walk", "walks")
	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"none", 0, []string{}},
		{"one", 1, []string{"talks"}},
		{"three", 3, []string{"talks", "talk", "walks"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.NumSuggestions = tt.n
			assert.Equal(t, tt.want, d.SuggestWords("talks", opts))
		})
	}
}

func TestSuggestTies(t *testing.T) {
	d := dict("cat", "bat", "hat", "rat")
	opts := DefaultOptions()
	opts.NumSuggestions = 1
	assert.Equal(t, []string{"bat"}, d.SuggestWords("zat", opts))

	opts.IncludeTies = true
	got := d.Suggest("zat", opts)
	assert.Equal(t, []string{"bat", "cat", "hat", "rat"}, words(got))
	// one substitution plus the short word charge for three runes
	for _, r := range got {
		assert.Equal(t, 99+wordLengthCost[3], r.Cost)
	}
}

func TestSuggestEmpty(t *testing.T) {
	d := dict("walk")
	assert.Empty(t, d.Suggest("", DefaultOptions()))
	assert.Empty(t, Suggest(nil, "walk", DefaultOptions()))
	assert.Empty(t, dict().Suggest("walk", DefaultOptions()))
}

func TestSuggestVisualSimilarity(t *testing.T) {
	d := dict("café", "cafe")
	got := d.Suggest("cafë", DefaultOptions())
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Cost)
	assert.Equal(t, 1, got[1].Cost)
}

func TestSuggestNaturalCompounds(t *testing.T) {
	// Running* and *pod
	d := dict("Running", "~running", "Running+", "~running+", "pod", "+pod")
	tests := []struct {
		name       string
		ignoreCase bool
		want       []Result
	}{
		{"ignore case", true, []Result{{"runningpod", 0}, {"Runningpod", 1}}},
		{"match case", false, []Result{{"Runningpod", 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.NumSuggestions = 4
			opts.ChangeLimit = 1
			opts.IgnoreCase = tt.ignoreCase
			assert.Equal(t, tt.want, d.Suggest("runningpod", opts))
		})
	}
}

func TestSuggestCompoundMethod(t *testing.T) {
	d := dict("walk", "talk", "joy")
	opts := DefaultOptions()
	opts.NumSuggestions = 1
	opts.CompoundMethod = walker.SeparateWords
	assert.Equal(t, []Result{{"walk talk", 99}}, d.Suggest("walktalk", opts))

	opts.CompoundMethod = walker.CompoundNone
	assert.NotContains(t, d.SuggestWords("walktalk", opts), "walk talk")
}

func TestSuggestCompoundDictionary(t *testing.T) {
	// walk* talk* *ing* *stick tree
	d := dict(
		"walk", "walk+", "talk", "talk+",
		"ing", "ing+", "+ing", "+ing+",
		"stick", "+stick",
		"tree",
	)
	opts := DefaultOptions()
	opts.NumSuggestions = 2
	assert.Equal(t, []Result{{"walkingstick", 0}, {"talkingstick", 99}}, d.Suggest("walkingstick", opts))

	opts.NumSuggestions = 10
	assert.NotContains(t, d.SuggestWords("walkingtree", opts), "walkingtree")
	assert.NotContains(t, d.SuggestWords("walkingstick", opts), "walkingtree")
}

func TestSuggestForbidden(t *testing.T) {
	d := dict("walk", "walks", "talk", "!walks")
	got := d.SuggestWords("walkz", DefaultOptions())
	assert.Contains(t, got, "walk")
	assert.NotContains(t, got, "walks")
	assert.NotContains(t, got, "!walks")
}

func TestSuggestFilter(t *testing.T) {
	d := dict("talk", "talks", "walk", "walks")
	opts := DefaultOptions()
	opts.Filter = func(w string, _ int) bool { return !strings.HasPrefix(w, "w") }
	got := d.SuggestWords("talks", opts)
	assert.Equal(t, []string{"talks", "talk"}, got)
}

func TestSuggestCompoundSeparator(t *testing.T) {
	d := dict("walk", "talk", "walktalk", "!walktalk")
	opts := DefaultOptions()
	opts.CompoundMethod = walker.JoinWords
	opts.CompoundSeparator = "+"
	got := d.SuggestWords("walktalk", opts)
	assert.NotContains(t, got, "walktalk")
	assert.NotContains(t, got, "walk+talk")
}

func TestGenSuggestionsIntoCollector(t *testing.T) {
	d := dict("talk", "talks", "walk", "walks", "!talks")
	c := NewCollector("talks", CollectorOptions{NumSuggestions: 3, IgnoreCase: true})
	d.GenSuggestions(c, walker.CompoundNone)
	got := c.Suggestions()
	assert.Equal(t, []string{"talk", "walks", "walk"}, words(got))
}

func TestSuggestMultipleRoots(t *testing.T) {
	a := trie.FromWords("talk").Root()
	b := trie.FromWords("walk").Root()
	got := Suggest([]*trie.Root{a, b}, "talk", DefaultOptions())
	assert.Equal(t, []Result{{"talk", 0}, {"walk", 99}}, got)
}

func TestSearchStop(t *testing.T) {
	d := dict("talk", "talks", "walk", "walks")
	s := NewSearch(d.Root(), "talks", GenOptions{ChangeLimit: 5})
	var seen []string
	fb := Continue(1000)
	for {
		r, ok := s.Next(fb)
		if !ok {
			break
		}
		if r != nil {
			seen = append(seen, r.Word)
			fb = Stop
		}
	}
	assert.Len(t, seen, 1)
	_, ok := s.Next(Continue(1000))
	assert.False(t, ok)
}

func TestDictionaryIsSuggester(t *testing.T) {
	var s Suggester = dict("walk", "talk")
	assert.True(t, s.Has("walk", false))
	assert.False(t, s.Has("wlak", false))
	assert.Equal(t, 2, s.Size())
	assert.True(t, slices.Contains(words(s.Suggest("wakl", DefaultOptions())), "walk"))
}

func BenchmarkSuggest(b *testing.B) {
	d := dict("talk", "talks", "talked", "talker", "talking",
		"walk", "walks", "walked", "walker", "walking",
		"joy", "joyful", "joyfully", "joyfulness")
	opts := DefaultOptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Suggest("walkng", opts)
	}
}
