package suggest

import (
	"strconv"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/bastiangx/wordtrie/pkg/walker"
)

// Edit costs. All costs are integers; 100 is one ordinary edit.
const (
	baseCost             = 100
	swapCost             = 75
	postSwapCost         = swapCost - baseCost
	insertSpaceCost      = -1
	mapSubCost           = 1
	maxCostScale         = 0.5
	discourageInsertCost = baseCost
)

// Result is one candidate correction.
type Result struct {
	Word string
	Cost int
}

// Feedback is what a consumer answers after each generator step: either a
// new cost budget or a request to stop.
type Feedback struct {
	MaxCost int
	Stop    bool
}

// Continue asks the generator for more results costing at most maxCost.
func Continue(maxCost int) Feedback {
	return Feedback{MaxCost: maxCost}
}

// Stop asks the generator to finish.
var Stop = Feedback{Stop: true}

// Generator produces candidates lazily. Next returns a nil result with true
// for steps that produced no candidate; it returns false once exhausted.
type Generator interface {
	Next(fb Feedback) (*Result, bool)
}

type band struct {
	a, b int
}

type historyTag struct {
	i int
	w string
	m int
}

// searchState is the per query state of the edit distance sweep.
type searchState struct {
	x         []rune
	mx        int
	matrix    [][]int
	stack     []band
	letters   []rune
	history   []Result
	tags      map[string]historyTag
	costLimit int
	stopNow   bool
}

func newSearchState(word string, changeLimit int) *searchState {
	x := []rune(" " + word)
	s := &searchState{
		x:         x,
		mx:        len(x) - 1,
		tags:      make(map[string]historyTag),
		costLimit: scaledCost(len(x)-1, maxCostScale, changeLimit),
	}
	row := s.row(0)
	b := 0
	for i, c := 0, 0; i <= s.mx && c <= s.costLimit; i++ {
		c = i * baseCost
		row[i] = c
		b = i
	}
	s.bandAt(0).b = b
	return s
}

// scaledCost is baseCost * min(n*scale, limit), truncated.
func scaledCost(n int, scale float64, limit int) int {
	return int(baseCost * min(float64(n)*scale, float64(limit)))
}

func (s *searchState) row(d int) []int {
	for len(s.matrix) <= d {
		s.matrix = append(s.matrix, make([]int, s.mx+1))
	}
	return s.matrix[d]
}

func (s *searchState) bandAt(d int) *band {
	for len(s.stack) <= d {
		s.stack = append(s.stack, band{})
	}
	return &s.stack[d]
}

func (s *searchState) apply(fb Feedback) {
	if fb.Stop {
		s.stopNow = true
		return
	}
	s.costLimit = fb.MaxCost
}

// replay re-emits recorded suffixes after a word break whose column costs
// match an earlier break.
type replay struct {
	next   int
	prefix string
	text   string
	delta  int
}

// Search is the banded edit distance sweep over one dictionary root. It is a
// single use cursor and must not be shared between goroutines.
type Search struct {
	state     *searchState
	walk      *walker.Hinted
	root      *trie.Root
	goDeeper  bool
	rowMin    int
	hasRowMin bool
	started   bool
	done      bool
	pending   *replay
	separator rune
}

// NewSearch prepares a search for corrections of word below root.
func NewSearch(root *trie.Root, word string, opts GenOptions) *Search {
	if opts.ChangeLimit <= 0 {
		opts.ChangeLimit = DefaultChangeLimit
	}
	st := newSearchState(word, opts.ChangeLimit)
	return &Search{
		state: st,
		walk: walker.NewHinted(root, word, walker.HintedOptions{
			IgnoreCase:     opts.IgnoreCase,
			CompoundMethod: opts.CompoundMethod,
			MaxDepth:       2*(st.mx+opts.ChangeLimit) + 1,
		}),
		root:      root,
		goDeeper:  true,
		separator: root.Options.CompoundCharacter,
	}
}

// Next advances the sweep. Feedback given on the first call is ignored.
func (s *Search) Next(fb Feedback) (*Result, bool) {
	if s.done {
		return nil, false
	}
	st := s.state
	if s.started {
		st.apply(fb)
	}
	s.started = true
	if s.hasRowMin {
		s.goDeeper = s.rowMin <= st.costLimit
		s.hasRowMin = false
	}
	for !st.stopNow {
		if s.pending != nil {
			if r := s.nextReplay(); r != nil {
				return r, true
			}
			continue
		}
		step, ok := s.walk.Next(s.goDeeper)
		if !ok {
			break
		}
		r, skipped := s.visit(step)
		if skipped {
			continue
		}
		return r, true
	}
	s.done = true
	return nil, false
}

func (s *Search) nextReplay() *Result {
	st := s.state
	p := s.pending
	for p.next < len(st.history) {
		h := st.history[p.next]
		p.next++
		if !strings.HasPrefix(h.Word, p.prefix) {
			break
		}
		cost := h.Cost + p.delta
		if cost <= st.costLimit {
			word := p.text + h.Word[len(p.prefix):]
			if s.isForbidden(word) {
				continue
			}
			return &Result{Word: word, Cost: cost}
		}
	}
	s.pending = nil
	return nil
}

// visit extends the matrix by one row for step. skipped is true when the
// step was answered from history and produced nothing to report.
func (s *Search) visit(step walker.Step) (res *Result, skipped bool) {
	st := s.state
	depth := step.Depth
	bd := *st.bandAt(depth)
	a, b := bd.a, bd.b
	w := lastRune(step.Letter)
	wG := visualMask(w)

	if isSeparator(w) {
		prev := st.matrix[depth][a : b+1]
		mxMin := minInt(prev)
		tag := historyKey(a, prev, mxMin)
		if ht, ok := st.tags[tag]; ok && ht.m <= mxMin {
			s.goDeeper = false
			if ht.i < len(st.history) && strings.HasPrefix(st.history[ht.i].Word, ht.w) {
				s.pending = &replay{next: ht.i, prefix: ht.w, text: step.Text, delta: mxMin - ht.m}
			}
			return nil, true
		}
		st.tags[tag] = historyTag{w: step.Text, i: len(st.history), m: mxMin}
	}

	d := depth + 1
	for len(st.letters) <= depth {
		st.letters = append(st.letters, 0)
	}
	st.letters[depth] = w
	var lastSugLetter rune = -1
	if d > 1 {
		lastSugLetter = st.letters[d-2]
	}
	c := baseCost - d + specialSubCost(w)
	ci := c + specialInsCost(w)

	prevRow := st.matrix[depth]
	curRow := st.row(d)
	x := st.x

	subCost := func(cur, last rune) int {
		switch {
		case w == cur:
			return 0
		case wG&visualMask(cur) != 0:
			return mapSubCost
		case cur == lastSugLetter && w == last:
			return postSwapCost
		default:
			return c
		}
	}

	curRow[a] = prevRow[a] + ci + d - a
	lastLetter := x[a]
	rowMin := curRow[a]
	for i := a + 1; i <= b; i++ {
		cur := x[i]
		e := min(
			prevRow[i-1]+subCost(cur, lastLetter),
			prevRow[i]+ci,
			curRow[i-1]+c,
		)
		rowMin = min(rowMin, e)
		curRow[i] = e
		lastLetter = cur
	}

	bb := st.stack[depth].b
	for b < st.mx {
		b++
		cur := x[b]
		j := min(bb, b-1)
		e := min(
			prevRow[j]+subCost(cur, lastLetter),
			curRow[b-1]+c,
		)
		rowMin = min(rowMin, e)
		curRow[b] = e
		lastLetter = cur
		if e > st.costLimit {
			break
		}
	}

	for b > a && curRow[b] > st.costLimit {
		b--
	}
	for a < b && curRow[a] > st.costLimit {
		a++
	}
	b = min(b+1, st.mx)
	*st.bandAt(d) = band{a: a, b: b}

	s.rowMin, s.hasRowMin = rowMin, true
	cost := curRow[b]
	if step.Node.IsWord() && cost <= st.costLimit {
		r := Result{Word: step.Text, Cost: cost}
		st.history = append(st.history, r)
		if !s.isForbidden(r.Word) {
			return &r, false
		}
	}
	return nil, false
}

func (s *Search) isForbidden(word string) bool {
	if strings.ContainsRune(word, s.separator) {
		word = strings.ReplaceAll(word, string(s.separator), "")
	}
	return trie.IsForbidden(s.root.Node, s.root.Options.ForbiddenWordPrefix, word)
}

func specialSubCost(r rune) int {
	if r == '-' {
		return discourageInsertCost
	}
	return 0
}

func specialInsCost(r rune) int {
	if isSeparator(r) {
		return insertSpaceCost
	}
	return 0
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '+'
}

func lastRune(s string) rune {
	var last rune = -1
	for _, r := range s {
		last = r
	}
	return last
}

func minInt(xs []int) int {
	m := xs[0]
	for _, v := range xs[1:] {
		m = min(m, v)
	}
	return m
}

func historyKey(a int, costs []int, base int) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(a))
	for _, c := range costs {
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(c - base))
	}
	return sb.String()
}

// chain runs several generators one after another.
type chain struct {
	gens []Generator
	i    int
}

// Chain concatenates generators. Feedback is forwarded to whichever one is
// current.
func Chain(gens ...Generator) Generator {
	return &chain{gens: gens}
}

func (c *chain) Next(fb Feedback) (*Result, bool) {
	for c.i < len(c.gens) {
		r, ok := c.gens[c.i].Next(fb)
		if ok {
			return r, true
		}
		if fb.Stop {
			c.i = len(c.gens)
			break
		}
		c.i++
	}
	return nil, false
}
