package suggest

import (
	"time"

	"github.com/bastiangx/wordtrie/pkg/walker"
)

const (
	// DefaultNumSuggestions is the default number of results.
	DefaultNumSuggestions = 10
	// DefaultChangeLimit caps the number of edits considered.
	DefaultChangeLimit = 5
	// DefaultTimeout bounds a Collect call.
	DefaultTimeout = time.Second
)

// FilterFunc rejects candidates before they are collected.
type FilterFunc func(word string, cost int) bool

// GenOptions controls a suggestion search.
type GenOptions struct {
	CompoundMethod walker.CompoundMethod
	ChangeLimit    int
	IgnoreCase     bool
}

// CollectorOptions controls result aggregation.
type CollectorOptions struct {
	NumSuggestions int
	ChangeLimit    int
	IncludeTies    bool
	IgnoreCase     bool
	Timeout        time.Duration
	Filter         FilterFunc
}

// Options is the full set used by Trie level suggest calls.
type Options struct {
	NumSuggestions int
	ChangeLimit    int
	IncludeTies    bool
	IgnoreCase     bool
	Timeout        time.Duration
	CompoundMethod walker.CompoundMethod
	// CompoundSeparator is removed from candidates before filtering.
	CompoundSeparator string
	Filter            FilterFunc
}

// DefaultOptions returns the standard suggestion settings.
func DefaultOptions() Options {
	return Options{
		NumSuggestions: DefaultNumSuggestions,
		ChangeLimit:    DefaultChangeLimit,
		IgnoreCase:     true,
		Timeout:        DefaultTimeout,
	}
}

func (o Options) gen() GenOptions {
	return GenOptions{
		CompoundMethod: o.CompoundMethod,
		ChangeLimit:    o.ChangeLimit,
		IgnoreCase:     o.IgnoreCase,
	}
}

func (o Options) collector() CollectorOptions {
	return CollectorOptions{
		NumSuggestions: o.NumSuggestions,
		ChangeLimit:    o.ChangeLimit,
		IncludeTies:    o.IncludeTies,
		IgnoreCase:     o.IgnoreCase,
		Timeout:        o.Timeout,
		Filter:         o.Filter,
	}
}
