/*
Package walker provides resumable depth-first traversals over a trie.

A walker is a cursor: each call to Next returns one step and takes the
caller's answer to the previous step ("descend into that node?"). Nothing runs
between calls, so the caller prunes the traversal by answering false, and stops
it simply by not calling Next again.

	w := walker.New(root, walker.Options{})
	for step, ok := w.Next(true); ok; step, ok = w.Next(keepGoing(step)) {
		...
	}
*/
package walker

import (
	"iter"

	"github.com/bastiangx/wordtrie/pkg/trie"
)

// CompoundMethod selects how word ends continue into a new word.
type CompoundMethod int

const (
	// CompoundNone never continues past a word end.
	CompoundNone CompoundMethod = iota
	// SeparateWords continues with a space.
	SeparateWords
	// JoinWords continues with the join marker.
	JoinWords
)

// String returns the config name of m.
func (m CompoundMethod) String() string {
	switch m {
	case SeparateWords:
		return "separate"
	case JoinWords:
		return "join"
	default:
		return "none"
	}
}

// ParseCompoundMethod maps a config name to a CompoundMethod.
func ParseCompoundMethod(s string) (CompoundMethod, bool) {
	switch s {
	case "", "none":
		return CompoundNone, true
	case "separate", "separate_words":
		return SeparateWords, true
	case "join", "join_words":
		return JoinWords, true
	}
	return CompoundNone, false
}

func (m CompoundMethod) separator() string {
	switch m {
	case SeparateWords:
		return trie.WordSeparator
	case JoinWords:
		return trie.JoinSeparator
	}
	return ""
}

// Step is one visited edge.
type Step struct {
	// Text is the accumulated text including Letter.
	Text string
	// Letter is the edge label. It is a single rune except for compound
	// edges carrying an emitted separator.
	Letter string
	Node   *trie.Node
	Depth  int
}

// Options configures the plain walker.
type Options struct {
	CompoundMethod CompoundMethod
	// CompoundRoot is entered after a word end when CompoundMethod is set.
	// It defaults to the walker root.
	CompoundRoot *trie.Node
	// MaxDepth stops descent at this depth. Zero means unbounded, which is
	// only safe without compounding.
	MaxDepth int
}

type child struct {
	letter string
	node   *trie.Node
}

type plainFrame struct {
	text     string
	children []child
	i        int
}

// Plain visits children in their stored order.
type Plain struct {
	opts    Options
	stack   []plainFrame
	pending *Step
}

// New returns a plain walker over root.
func New(root *trie.Node, opts Options) *Plain {
	if opts.CompoundRoot == nil {
		opts.CompoundRoot = root
	}
	w := &Plain{opts: opts}
	w.stack = append(w.stack, plainFrame{children: w.children(root)})
	return w
}

func (w *Plain) children(n *trie.Node) []child {
	edges := n.Edges()
	out := make([]child, 0, len(edges)+1)
	for _, e := range edges {
		out = append(out, child{letter: string(e.Char), node: e.Node})
	}
	if n.IsWord() && w.opts.CompoundMethod != CompoundNone {
		out = append(out, child{letter: w.opts.CompoundMethod.separator(), node: w.opts.CompoundRoot})
	}
	return out
}

// Next answers the previous step with goDeeper and returns the next one.
// The answer given on the first call is ignored.
func (w *Plain) Next(goDeeper bool) (Step, bool) {
	if p := w.pending; p != nil {
		w.pending = nil
		if goDeeper && (w.opts.MaxDepth <= 0 || p.Depth+1 < w.opts.MaxDepth) {
			w.stack = append(w.stack, plainFrame{text: p.Text, children: w.children(p.Node)})
		}
	}
	for len(w.stack) > 0 {
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
		w.pending = &step
		return step, true
	}
	return Step{}, false
}

// Words yields the text of every word-end step of a plain walk. With a
// compound method set, MaxDepth must bound the walk.
func Words(root *trie.Node, opts Options) iter.Seq[string] {
	return func(yield func(string) bool) {
		w := New(root, opts)
		for step, ok := w.Next(true); ok; step, ok = w.Next(true) {
			if step.Node.IsWord() && !yield(step.Text) {
				return
			}
		}
	}
}
