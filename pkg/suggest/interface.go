package suggest

import "github.com/bastiangx/wordtrie/pkg/walker"

// Suggester defines the queries a spelling dictionary answers.
type Suggester interface {
	// Has reports whether word is accepted, ignoring case.
	Has(word string, allowCompound bool) bool

	// Suggest returns corrections of word, best first.
	Suggest(word string, opts Options) []Result

	// GenSuggestions streams corrections of the collector's word into it.
	GenSuggestions(c *Collector, method walker.CompoundMethod)

	// Size returns the number of stored words.
	Size() int
}

var _ Suggester = (*Dictionary)(nil)
