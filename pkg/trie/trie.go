package trie

import (
	"iter"
	"strings"
	"sync"
)

// Trie is a read-only dictionary.
type Trie struct {
	root         *Root
	known        bool
	size         func() int
	hasForbidden bool
}

// New wraps an already built root.
func New(root *Root) *Trie {
	return newTrie(root, -1)
}

// FromNode wraps a bare node with the default reserved keys.
func FromNode(n *Node) *Trie {
	return New(NewRoot(n))
}

// FromWords builds a plain trie from already decorated words.
func FromWords(words ...string) *Trie {
	return NewBuilder().InsertList(words).Build()
}

func newTrie(root *Root, count int) *Trie {
	t := &Trie{
		root:         root,
		known:        count >= 0,
		hasForbidden: root.ForbiddenRoot() != nil,
	}
	if t.known {
		t.size = func() int { return count }
	} else {
		t.size = sync.OnceValue(func() int { return CountWords(root.Node) })
	}
	return t
}

// Root returns the dictionary root.
func (t *Trie) Root() *Root {
	return t.root
}

// Size returns the number of stored words, reserved-prefix forms included.
func (t *Trie) Size() int {
	return t.size()
}

// IsSizeKnown reports whether the word count was supplied at build time.
func (t *Trie) IsSizeKnown() bool {
	return t.known
}

// IsLegacy reports whether the dictionary has none of the reserved subtrees.
func (t *Trie) IsLegacy() bool {
	r := t.root
	return r.CompoundRoot() == nil && r.CaseInsensitiveRoot() == nil && r.ForbiddenRoot() == nil
}

// Has reports whether word is accepted, ignoring case. With allowCompound the
// word may also be assembled from parts joined through compound markers.
// A forbidden word is never accepted.
func (t *Trie) Has(word string, allowCompound bool) bool {
	mode := CompoundNone
	if allowCompound {
		mode = CompoundNatural
	}
	f := t.FindWord(word, FindOptions{CompoundMode: mode})
	return f.IsFound() && !f.Forbidden
}

// HasWord reports whether word is accepted with natural compounding.
func (t *Trie) HasWord(word string, matchCase bool) bool {
	f := t.FindWord(word, FindOptions{MatchCase: matchCase, CompoundMode: CompoundNatural})
	return f.IsFound() && !f.Forbidden
}

// HasLegacyCompound accepts word as a regular word or as a run of words each
// at least minPartLength long.
func (t *Trie) HasLegacyCompound(word string, minPartLength int) bool {
	if t.HasWord(word, false) {
		return true
	}
	if t.IsForbiddenWord(word) {
		return false
	}
	f := t.FindWord(word, FindOptions{CompoundMode: CompoundLegacy, LegacyMinCompoundLength: minPartLength})
	return f.IsFound()
}

// FindWord runs a lookup with explicit options.
func (t *Trie) FindWord(word string, opts FindOptions) FindResult {
	return FindWord(t.root, word, opts)
}

// Find returns the node for word, or nil.
func (t *Trie) Find(word string, allowCompound bool) *Node {
	mode := CompoundNone
	if allowCompound {
		mode = CompoundNatural
	}
	return t.FindWord(word, FindOptions{CompoundMode: mode}).Node
}

// FindExact returns the node reached by word without folding or compounding.
func (t *Trie) FindExact(word string) *Node {
	return t.FindWord(word, FindOptions{MatchCase: true}).Node
}

// FindCompound returns the last node of a legacy compound split of word.
func (t *Trie) FindCompound(word string, minPartLength int) *Node {
	return t.FindWord(word, FindOptions{CompoundMode: CompoundLegacy, LegacyMinCompoundLength: minPartLength}).Node
}

// IsForbiddenWord reports whether word is explicitly forbidden.
func (t *Trie) IsForbiddenWord(word string) bool {
	return t.hasForbidden && IsForbidden(t.root.Node, t.root.Options.ForbiddenWordPrefix, word)
}

// Words returns every stored word in depth first, rune order.
func (t *Trie) Words() iter.Seq[string] {
	return Words(t.root.Node)
}

// CompleteWord returns the words starting with prefix. Compound stems ending
// in the compound marker are skipped.
func (t *Trie) CompleteWord(prefix string) iter.Seq[string] {
	compound := string(t.root.Options.CompoundCharacter)
	return func(yield func(string) bool) {
		n := t.Find(prefix, true)
		if n == nil {
			return
		}
		if n.IsWord() && !yield(prefix) {
			return
		}
		for suffix := range Words(n) {
			if strings.HasSuffix(suffix, compound) {
				continue
			}
			if !yield(prefix + suffix) {
				return
			}
		}
	}
}

// Words walks n depth first and yields every word below it.
func Words(n *Node) iter.Seq[string] {
	return func(yield func(string) bool) {
		if n == nil {
			return
		}
		type frame struct {
			n    *Node
			text []rune
			i    int
		}
		stack := []frame{{n: n}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.i >= len(top.n.edges) {
				stack = stack[:len(stack)-1]
				continue
			}
			e := top.n.edges[top.i]
			top.i++
			text := make([]rune, len(top.text)+1)
			copy(text, top.text)
			text[len(top.text)] = e.Char
			if e.Node.IsWord() && !yield(string(text)) {
				return
			}
			if e.Node.HasChildren() {
				stack = append(stack, frame{n: e.Node, text: text})
			}
		}
	}
}

// CountWords counts the words below n. Shared subtrees are counted once per
// path, so a DAWG yields the same number as the tree it came from.
func CountWords(n *Node) int {
	memo := make(map[*Node]int)
	var count func(n *Node) int
	count = func(n *Node) int {
		if v, ok := memo[n]; ok {
			return v
		}
		total := 0
		for _, e := range n.edges {
			c := e.Node
			if c.IsWord() {
				total++
			}
			total += count(c)
		}
		memo[n] = total
		return total
	}
	if n == nil {
		return 0
	}
	return count(n)
}
