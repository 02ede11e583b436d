/*
Package trie holds the dictionary graph: nodes, the root with its reserved keys,
insertion, DAWG minimization and membership lookups.

A built Trie is never mutated by queries, so a single instance can be shared by
any number of concurrent readers.

# Reserved keys

The root's child map reserves three runes that never appear below the root:

	+	compound continuation ("may start a new compound part")
	~	case and accent folded copy of the dictionary
	!	forbidden words

Dictionary lines such as "Error*" are stored as "Error" and "Error+". The
continuation subtree for "*Code" is reached through root['+'].
*/
package trie

import (
	"cmp"
	"slices"
	"sort"
)

// FlagWord marks a node where a word terminates.
const FlagWord uint8 = 1

// Default reserved runes and walker separators.
const (
	CompoundFix           = '+'
	OptionalCompoundFix   = '*'
	CaseInsensitivePrefix = '~'
	ForbidPrefix          = '!'
	IdentityPrefix        = '='

	JoinSeparator = "+"
	WordSeparator = " "
)

// Edge links a node to one child.
type Edge struct {
	Char rune
	Node *Node
}

// Node is a trie node. Edges are kept sorted by rune.
type Node struct {
	Flags uint8
	edges []Edge
}

// NewNode returns an empty node.
func NewNode() *Node {
	return &Node{}
}

// NewWordNode returns a leaf marked as a word end.
func NewWordNode() *Node {
	return &Node{Flags: FlagWord}
}

// NewNodeFrom builds a node from unordered edges. A later edge replaces an
// earlier one with the same rune.
func NewNodeFrom(flags uint8, edges []Edge) *Node {
	n := &Node{Flags: flags}
	if len(edges) == 0 {
		return n
	}
	sorted := slices.Clone(edges)
	slices.SortStableFunc(sorted, func(a, b Edge) int { return cmp.Compare(a.Char, b.Char) })
	out := sorted[:0]
	for _, e := range sorted {
		if k := len(out); k > 0 && out[k-1].Char == e.Char {
			out[k-1] = e
			continue
		}
		out = append(out, e)
	}
	n.edges = out
	return n
}

// IsWord reports whether a word ends at n.
func (n *Node) IsWord() bool {
	return n != nil && n.Flags&FlagWord == FlagWord
}

// HasChildren reports whether n has any outgoing edges.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.edges) > 0
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.edges)
}

// Edges returns the children in rune order. The slice must not be modified.
func (n *Node) Edges() []Edge {
	if n == nil {
		return nil
	}
	return n.edges
}

func (n *Node) search(r rune) int {
	return sort.Search(len(n.edges), func(i int) bool { return n.edges[i].Char >= r })
}

// Child returns the child reached through r, or nil.
func (n *Node) Child(r rune) *Node {
	if n == nil {
		return nil
	}
	i := n.search(r)
	if i < len(n.edges) && n.edges[i].Char == r {
		return n.edges[i].Node
	}
	return nil
}

// SetChild adds or replaces the child for r.
func (n *Node) SetChild(r rune, c *Node) {
	i := n.search(r)
	if i < len(n.edges) && n.edges[i].Char == r {
		n.edges[i].Node = c
		return
	}
	n.edges = append(n.edges, Edge{})
	copy(n.edges[i+1:], n.edges[i:])
	n.edges[i] = Edge{Char: r, Node: c}
}

// Walk descends one rune at a time and returns the node reached after the
// whole of s, or nil when the path breaks.
func (n *Node) Walk(s string) *Node {
	for _, r := range s {
		if n == nil {
			return nil
		}
		n = n.Child(r)
	}
	return n
}

// Filter returns a shallow copy of n without the children whose rune is in skip.
func (n *Node) Filter(skip ...rune) *Node {
	out := &Node{Flags: n.Flags}
	for _, e := range n.edges {
		if !containsRune(skip, e.Char) {
			out.edges = append(out.edges, e)
		}
	}
	return out
}

func containsRune(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

// Options names the reserved root keys.
type Options struct {
	CompoundCharacter         rune
	StripCaseAndAccentsPrefix rune
	ForbiddenWordPrefix       rune
}

// DefaultOptions returns the standard reserved runes.
func DefaultOptions() Options {
	return Options{
		CompoundCharacter:         CompoundFix,
		StripCaseAndAccentsPrefix: CaseInsensitivePrefix,
		ForbiddenWordPrefix:       ForbidPrefix,
	}
}

// Root is the top node of a dictionary together with its reserved keys.
type Root struct {
	Node    *Node
	Options Options
}

// NewRoot wraps n with the default options.
func NewRoot(n *Node) *Root {
	if n == nil {
		n = NewNode()
	}
	return &Root{Node: n, Options: DefaultOptions()}
}

// CompoundRoot returns the compound continuation subtree, if any.
func (r *Root) CompoundRoot() *Node {
	return r.Node.Child(r.Options.CompoundCharacter)
}

// CaseInsensitiveRoot returns the folded subtree, if any.
func (r *Root) CaseInsensitiveRoot() *Node {
	return r.Node.Child(r.Options.StripCaseAndAccentsPrefix)
}

// ForbiddenRoot returns the forbidden word subtree, if any.
func (r *Root) ForbiddenRoot() *Node {
	return r.Node.Child(r.Options.ForbiddenWordPrefix)
}

// IsReserved reports whether c is one of the reserved root keys.
func (r *Root) IsReserved(c rune) bool {
	o := r.Options
	return c == o.CompoundCharacter || c == o.StripCaseAndAccentsPrefix || c == o.ForbiddenWordPrefix
}

// Reserved returns the reserved keys.
func (r *Root) Reserved() []rune {
	o := r.Options
	return []rune{o.CompoundCharacter, o.StripCaseAndAccentsPrefix, o.ForbiddenWordPrefix}
}
