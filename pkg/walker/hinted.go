package walker

import (
	"github.com/bastiangx/wordtrie/pkg/trie"
)

// HintedOptions configures the hinted walker.
type HintedOptions struct {
	// IgnoreCase adds the folded subtree as a second root.
	IgnoreCase     bool
	CompoundMethod CompoundMethod
	// EmitWordSeparator is prefixed to letters entered through a compound
	// marker. It is empty for natural compounds.
	EmitWordSeparator string
	MaxDepth          int
}

type hintedChild struct {
	letter     string
	node       *trie.Node
	hintOffset int
}

type hintedFrame struct {
	text     string
	children []hintedChild
	i        int
}

type hintedPending struct {
	step       Step
	hintOffset int
}

// Hinted visits children whose letters appear near the current position of a
// hint string first. Every child is still visited, so the hint changes only
// the order of the walk.
type Hinted struct {
	hint   []rune
	opts   HintedOptions
	marker rune

	roots          []*trie.Node
	compoundRoots  []*trie.Node
	isCompoundRoot map[*trie.Node]bool
	methodEdges    []hintedChild

	rootIdx int
	stack   []hintedFrame
	pending *hintedPending
}

// NewHinted returns a hinted walker over root.
func NewHinted(root *trie.Root, hint string, opts HintedOptions) *Hinted {
	w := &Hinted{
		hint:           []rune(hint),
		opts:           opts,
		marker:         root.Options.CompoundCharacter,
		isCompoundRoot: make(map[*trie.Node]bool),
	}
	raw := []*trie.Node{root.Node}
	if opts.IgnoreCase {
		if f := root.CaseInsensitiveRoot(); f != nil {
			raw = append(raw, f)
		}
	}
	reserved := root.Reserved()
	for _, r := range raw {
		w.roots = append(w.roots, r.Filter(reserved...))
		if cr := r.Child(w.marker); cr != nil {
			w.compoundRoots = append(w.compoundRoots, cr)
			w.isCompoundRoot[cr] = true
		}
	}
	if sep := opts.CompoundMethod.separator(); sep != "" {
		for _, r := range w.roots {
			w.methodEdges = append(w.methodEdges, hintedChild{letter: sep, node: r})
		}
		for _, r := range w.compoundRoots {
			w.methodEdges = append(w.methodEdges, hintedChild{letter: sep, node: r})
		}
	}
	w.startRoot()
	return w
}

func (w *Hinted) startRoot() {
	w.stack = w.stack[:0]
	if w.rootIdx < len(w.roots) {
		w.stack = append(w.stack, hintedFrame{children: w.children(w.roots[w.rootIdx], 0)})
	}
}

// window returns the hint runes around off: up to three at and after it,
// then up to two before it, without repeats.
func (w *Hinted) window(off int) []rune {
	var out []rune
	add := func(from, to int) {
		from = max(from, 0)
		to = min(to, len(w.hint))
		for i := from; i < to; i++ {
			if !containsRune(out, w.hint[i]) {
				out = append(out, w.hint[i])
			}
		}
	}
	add(off, off+3)
	add(off-2, off)
	return out
}

func (w *Hinted) children(n *trie.Node, off int) []hintedChild {
	var out []hintedChild
	if n.HasChildren() {
		hints := w.window(off)
		for _, r := range hints {
			if c := n.Child(r); c != nil {
				out = append(out, hintedChild{letter: string(r), node: c, hintOffset: off + 1})
			}
		}
		for _, e := range n.Edges() {
			if e.Char == w.marker || containsRune(hints, e.Char) {
				continue
			}
			out = append(out, hintedChild{letter: string(e.Char), node: e.Node, hintOffset: off + 1})
		}
		if n.Child(w.marker) != nil && !w.isCompoundRoot[n] {
			for _, cr := range w.compoundRoots {
				for _, c := range w.children(cr, off) {
					c.letter = w.opts.EmitWordSeparator + c.letter
					out = append(out, c)
				}
			}
		}
	}
	if n.Flags != 0 {
		for _, m := range w.methodEdges {
			m.hintOffset = off
			out = append(out, m)
		}
	}
	return out
}

// Next answers the previous step with goDeeper and returns the next one.
// The answer given on the first call is ignored.
func (w *Hinted) Next(goDeeper bool) (Step, bool) {
	if p := w.pending; p != nil {
		w.pending = nil
		if goDeeper && (w.opts.MaxDepth <= 0 || p.step.Depth+1 < w.opts.MaxDepth) {
			w.stack = append(w.stack, hintedFrame{text: p.step.Text, children: w.children(p.step.Node, p.hintOffset)})
		}
	}
	for {
		if len(w.stack) == 0 {
			w.rootIdx++
			if w.rootIdx >= len(w.roots) {
				return Step{}, false
			}
			w.startRoot()
			continue
		}
		top := &w.stack[len(w.stack)-1]
		if top.i >= len(top.children) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		c := top.children[top.i]
		top.i++
		step := Step{
			Text:   top.text + c.letter,
			Letter: c.letter,
			Node:   c.node,
			Depth:  len(w.stack) - 1,
		}
		w.pending = &hintedPending{step: step, hintOffset: c.hintOffset}
		return step, true
	}
}

func containsRune(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}
