// Package suggest finds the dictionary words closest to a misspelled word.
//
// A Search sweeps a weighted edit distance matrix along a hinted trie walk and
// yields candidates one at a time. A Collector consumes them, keeps the best
// few and keeps lowering the cost budget the search works under.
package suggest

import (
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/bastiangx/wordtrie/pkg/walker"
)

// GenSuggestions chains one search per root.
func GenSuggestions(roots []*trie.Root, word string, opts GenOptions) Generator {
	gens := make([]Generator, 0, len(roots))
	for _, r := range roots {
		gens = append(gens, NewSearch(r, word, opts))
	}
	return Chain(gens...)
}

// Suggest collects the best corrections of word from roots.
func Suggest(roots []*trie.Root, word string, opts Options) []Result {
	c := NewCollector(word, opts.collector())
	if word == "" || c.NumSuggestions() == 0 {
		return []Result{}
	}
	c.Collect(GenSuggestions(roots, word, opts.gen()))
	return c.Suggestions()
}

// Dictionary adds suggestion queries to a trie.
type Dictionary struct {
	*trie.Trie
}

// NewDictionary wraps t.
func NewDictionary(t *trie.Trie) *Dictionary {
	return &Dictionary{Trie: t}
}

// Suggest returns corrections of word, best first. Forbidden words are never
// returned. When opts.CompoundSeparator is set it is removed from candidates
// before the forbidden check and the caller's filter run.
func (d *Dictionary) Suggest(word string, opts Options) []Result {
	adjust := func(w string) string { return w }
	if sep := opts.CompoundSeparator; sep != "" {
		adjust = func(w string) string { return strings.ReplaceAll(w, sep, "") }
	}
	userFilter := opts.Filter
	opts.Filter = func(w string, cost int) bool {
		w = adjust(w)
		if d.IsForbiddenWord(w) {
			return false
		}
		return userFilter == nil || userFilter(w, cost)
	}
	return Suggest([]*trie.Root{d.Root()}, word, opts)
}

// SuggestWords is Suggest without costs.
func (d *Dictionary) SuggestWords(word string, opts Options) []string {
	res := d.Suggest(word, opts)
	out := make([]string, len(res))
	for i, r := range res {
		out[i] = r.Word
	}
	return out
}

// GenSuggestions feeds c with corrections of c.Word(). The collector's change
// limit and case handling drive the search.
func (d *Dictionary) GenSuggestions(c *Collector, method walker.CompoundMethod) {
	gen := NewSearch(d.Root(), c.Word(), GenOptions{
		CompoundMethod: method,
		ChangeLimit:    c.ChangeLimit(),
		IgnoreCase:     c.IgnoreCase(),
	})
	c.CollectWith(gen, func(w string, _ int) bool { return !d.IsForbiddenWord(w) })
}
