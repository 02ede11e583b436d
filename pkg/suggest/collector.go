package suggest

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// maxAllowedCostScale is a little over maxCostScale so that short words still
// get suggestions.
const maxAllowedCostScale = 1.03 * maxCostScale

const extraWordCost = 5

// wordLengthCost penalizes very short words, alone or as part of a candidate.
var wordLengthCost = [...]int{0, 50, 25, 5, 0}

// Collector keeps the best candidates seen so far and tells the generator
// how expensive further candidates may be.
type Collector struct {
	word     string
	opts     CollectorOptions
	maxCost  int
	sugs     map[string]*Result
	remain   time.Duration
	collator *collate.Collator
}

// NewCollector returns a collector for corrections of word.
func NewCollector(word string, opts CollectorOptions) *Collector {
	if opts.ChangeLimit <= 0 {
		opts.ChangeLimit = DefaultChangeLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	opts.NumSuggestions = max(opts.NumSuggestions, 0)
	n := utf8.RuneCountInString(word)
	return &Collector{
		word:     word,
		opts:     opts,
		maxCost:  scaledCost(n, maxAllowedCostScale, opts.ChangeLimit),
		sugs:     make(map[string]*Result),
		remain:   opts.Timeout,
		collator: collate.New(language.Und),
	}
}

// Word returns the word being corrected.
func (c *Collector) Word() string { return c.word }

// MaxCost is the current acceptance threshold.
func (c *Collector) MaxCost() int { return c.maxCost }

// ChangeLimit returns the effective edit limit.
func (c *Collector) ChangeLimit() int { return c.opts.ChangeLimit }

// NumSuggestions returns the requested result count.
func (c *Collector) NumSuggestions() int { return c.opts.NumSuggestions }

// IgnoreCase reports whether the collector was set up for folded matching.
func (c *Collector) IgnoreCase() bool { return c.opts.IgnoreCase }

// Add offers one candidate and returns the updated threshold.
func (c *Collector) Add(r Result) int {
	cost := r.Cost + partsCost(r.Word)
	if cost > c.maxCost {
		return c.maxCost
	}
	if c.opts.Filter != nil && !c.opts.Filter(r.Word, cost) {
		return c.maxCost
	}
	if known, ok := c.sugs[r.Word]; ok {
		known.Cost = min(known.Cost, cost)
		return c.maxCost
	}
	c.sugs[r.Word] = &Result{Word: r.Word, Cost: cost}
	if cost < c.maxCost && len(c.sugs) > c.opts.NumSuggestions {
		c.dropMax()
	}
	return c.maxCost
}

// dropMax lowers the threshold to the cost of the last wanted result and
// discards everything beyond it except ties.
func (c *Collector) dropMax() {
	if len(c.sugs) < 2 || c.opts.NumSuggestions == 0 {
		clear(c.sugs)
		return
	}
	sorted := c.sorted()
	i := c.opts.NumSuggestions - 1
	c.maxCost = sorted[i].Cost
	for i < len(sorted) && sorted[i].Cost <= c.maxCost {
		i++
	}
	for ; i < len(sorted); i++ {
		delete(c.sugs, sorted[i].Word)
	}
}

// Collect drives src until it is exhausted or the time budget runs out.
// Time spent is deducted from the budget of later calls.
func (c *Collector) Collect(src Generator) {
	c.CollectWith(src, nil)
}

// CollectWith is Collect with an extra filter applied to raw candidates.
func (c *Collector) CollectWith(src Generator, filter FilterFunc) {
	if c.remain < 0 {
		return
	}
	timeout := c.remain
	start := time.Now()
	stop := false
	for {
		fb := Continue(c.maxCost)
		if stop {
			fb = Stop
		}
		r, ok := src.Next(fb)
		if !ok {
			break
		}
		if time.Since(start) > timeout {
			stop = true
		}
		if r != nil && (filter == nil || filter(r.Word, r.Cost)) {
			c.Add(*r)
		}
	}
	c.remain -= time.Since(start)
}

// Suggestions returns the collected results, best first.
func (c *Collector) Suggestions() []Result {
	sorted := c.sorted()
	if !c.opts.IncludeTies && len(sorted) > c.opts.NumSuggestions {
		sorted = sorted[:c.opts.NumSuggestions]
	}
	out := make([]Result, len(sorted))
	for i, r := range sorted {
		out[i] = *r
	}
	return out
}

func (c *Collector) sorted() []*Result {
	out := make([]*Result, 0, len(c.sugs))
	for _, r := range c.sugs {
		out = append(out, r)
	}
	slices.SortFunc(out, c.compare)
	return out
}

func (c *Collector) compare(a, b *Result) int {
	if a.Cost != b.Cost {
		return a.Cost - b.Cost
	}
	la, lb := utf8.RuneCountInString(a.Word), utf8.RuneCountInString(b.Word)
	if la != lb {
		return la - lb
	}
	if r := c.collator.CompareString(a.Word, b.Word); r != 0 {
		return r
	}
	return strings.Compare(a.Word, b.Word)
}

// partsCost is the extra cost of splitting a candidate into several words.
func partsCost(word string) int {
	cost, parts, n := 0, 1, 0
	for _, r := range word {
		if isSeparator(r) {
			cost += lengthCost(n)
			parts++
			n = 0
			continue
		}
		n++
	}
	cost += lengthCost(n)
	return cost + (parts-1)*extraWordCost
}

func lengthCost(n int) int {
	if n < len(wordLengthCost) {
		return wordLengthCost[n]
	}
	return 0
}
