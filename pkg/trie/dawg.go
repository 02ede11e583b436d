package trie

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// dawgEdge points at an arena slot.
type dawgEdge struct {
	char  rune
	child int32
}

type dawgNode struct {
	flags uint8
	edges []dawgEdge
	hash  uint64
}

// MinimizeStats reports the effect of a minimization pass.
type MinimizeStats struct {
	InputNodes  int
	OutputNodes int
}

// minimizer hash-conses nodes into an arena. Slot ids are handed out only to
// surviving nodes, in creation order, so a child always has a smaller id than
// any of its parents.
type minimizer struct {
	arena  []dawgNode
	byHash map[uint64][]int32
	seen   map[*Node]int32
	buf    []byte
	inputs int
}

func newMinimizer() *minimizer {
	return &minimizer{
		byHash: make(map[uint64][]int32),
		seen:   make(map[*Node]int32),
		buf:    make([]byte, 0, 64),
	}
}

// Minimize returns a graph accepting the same words as root in which every
// pair of structurally equal subtrees is a single shared node.
func Minimize(root *Node) *Node {
	n, _ := MinimizeWithStats(root)
	return n
}

// MinimizeWithStats is Minimize plus node counts.
func MinimizeWithStats(root *Node) (*Node, MinimizeStats) {
	if root == nil {
		return NewNode(), MinimizeStats{}
	}
	m := newMinimizer()
	id := m.add(root)
	nodes := m.freeze()
	return nodes[id], MinimizeStats{InputNodes: m.inputs, OutputNodes: len(m.arena)}
}

func (m *minimizer) add(n *Node) int32 {
	if id, ok := m.seen[n]; ok {
		return id
	}
	m.inputs++
	candidate := dawgNode{flags: n.Flags}
	if len(n.edges) > 0 {
		candidate.edges = make([]dawgEdge, len(n.edges))
		for i, e := range n.edges {
			candidate.edges[i] = dawgEdge{char: e.Char, child: m.add(e.Node)}
		}
	}
	candidate.hash = m.hash(&candidate)
	id := m.intern(candidate)
	m.seen[n] = id
	return id
}

func (m *minimizer) hash(n *dawgNode) uint64 {
	b := append(m.buf[:0], n.flags)
	for _, e := range n.edges {
		c := &m.arena[e.child]
		b = binary.LittleEndian.AppendUint32(b, uint32(e.char))
		b = binary.LittleEndian.AppendUint64(b, c.hash)
		b = binary.LittleEndian.AppendUint32(b, uint32(e.child))
	}
	m.buf = b
	return xxhash.Sum64(b)
}

func (m *minimizer) intern(n dawgNode) int32 {
	for _, id := range m.byHash[n.hash] {
		if equivalent(&m.arena[id], &n) {
			return id
		}
	}
	id := int32(len(m.arena))
	m.arena = append(m.arena, n)
	m.byHash[n.hash] = append(m.byHash[n.hash], id)
	return id
}

func equivalent(a, b *dawgNode) bool {
	if a.hash != b.hash || a.flags != b.flags || len(a.edges) != len(b.edges) {
		return false
	}
	for i := range a.edges {
		if a.edges[i] != b.edges[i] {
			return false
		}
	}
	return true
}

// freeze turns the arena into shared nodes, walking ids upward so children
// exist before their parents.
func (m *minimizer) freeze() []*Node {
	out := make([]*Node, len(m.arena))
	for id := range m.arena {
		d := &m.arena[id]
		n := &Node{Flags: d.flags}
		if len(d.edges) > 0 {
			n.edges = make([]Edge, len(d.edges))
			for i, e := range d.edges {
				n.edges[i] = Edge{Char: e.char, Node: out[e.child]}
			}
		}
		out[id] = n
	}
	return out
}

// CountNodes returns the number of distinct nodes reachable from root.
func CountNodes(root *Node) int {
	seen := make(map[*Node]struct{})
	var visit func(n *Node)
	visit = func(n *Node) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		for _, e := range n.edges {
			visit(e.Node)
		}
	}
	if root != nil {
		visit(root)
	}
	return len(seen)
}

// Dump renders the graph for debugging. Shared nodes are printed once and
// referenced as <id> afterwards.
func Dump(root *Node) string {
	ids := make(map[*Node]int)
	var sb strings.Builder
	var disp func(n *Node, depth int, prefix string)
	disp = func(n *Node, depth int, prefix string) {
		indent := strings.Repeat("  ", depth)
		if id, ok := ids[n]; ok {
			fmt.Fprintf(&sb, "%s%s<%d>\n", indent, prefix, id)
			return
		}
		id := len(ids)
		ids[n] = id
		flag := "-"
		if n.IsWord() {
			flag = "1"
		}
		fmt.Fprintf(&sb, "%s%s{ id: %d, f: %s }\n", indent, prefix, id, flag)
		for _, e := range n.edges {
			disp(e.Node, depth+1, fmt.Sprintf("%q --> ", e.Char))
		}
	}
	if root != nil {
		disp(root, 0, "")
	}
	fmt.Fprintf(&sb, "Nodes: %d", len(ids))
	return sb.String()
}
