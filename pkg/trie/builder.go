package trie

import (
	"iter"

	"github.com/charmbracelet/log"
)

// Builder owns a plain trie while words are inserted. It is discarded once
// Build or BuildDAWG has returned.
type Builder struct {
	root    *Node
	opts    Options
	count   int
	inserts int
}

// NewBuilder returns a Builder with the default reserved keys.
func NewBuilder() *Builder {
	return &Builder{root: NewNode(), opts: DefaultOptions()}
}

// WithOptions replaces the reserved keys used by the built root.
func (b *Builder) WithOptions(opts Options) *Builder {
	b.opts = opts
	return b
}

// Insert adds one word. Inserting a word twice is a no-op.
func (b *Builder) Insert(word string) *Builder {
	b.inserts++
	if Insert(b.root, word) {
		b.count++
	}
	return b
}

// InsertAll adds every word of seq.
func (b *Builder) InsertAll(seq iter.Seq[string]) *Builder {
	for w := range seq {
		b.Insert(w)
	}
	return b
}

// InsertList adds every word of words.
func (b *Builder) InsertList(words []string) *Builder {
	for _, w := range words {
		b.Insert(w)
	}
	return b
}

// Count returns the number of distinct words inserted.
func (b *Builder) Count() int {
	return b.count
}

// Build returns the plain trie.
func (b *Builder) Build() *Trie {
	log.Debugf("trie built: %d words from %d inserts", b.count, b.inserts)
	return newTrie(&Root{Node: b.root, Options: b.opts}, b.count)
}

// BuildDAWG returns the trie with structurally equal subtrees merged.
func (b *Builder) BuildDAWG() *Trie {
	root, stats := MinimizeWithStats(b.root)
	log.Debugf("dawg built: %d words, %d nodes -> %d nodes", b.count, stats.InputNodes, stats.OutputNodes)
	return newTrie(&Root{Node: root, Options: b.opts}, b.count)
}

// Insert adds word below root and reports whether it was new.
func Insert(root *Node, word string) bool {
	n := root
	for _, r := range word {
		c := n.Child(r)
		if c == nil {
			c = NewNode()
			n.SetChild(r, c)
		}
		n = c
	}
	if n.IsWord() {
		return false
	}
	n.Flags |= FlagWord
	return true
}
