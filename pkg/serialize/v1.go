package serialize

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
)

const escapeV1 = `[]\,:{}*`

func escapeRune(sb *strings.Builder, r rune) {
	if strings.ContainsRune(escapeV1, r) {
		sb.WriteByte('\\')
	}
	sb.WriteRune(r)
}

// lineV1 renders n as its flag followed by "letter ref," pairs. A zero ref is
// left empty and the trailing comma is dropped.
func lineV1(n *trie.Node, idx map[*trie.Node]int, radix int) string {
	var sb strings.Builder
	if n.IsWord() {
		sb.WriteRune(eow)
	}
	for i, e := range n.Edges() {
		if i > 0 {
			sb.WriteByte(',')
		}
		escapeRune(&sb, e.Char)
		if ref := idx[e.Node]; ref != 0 {
			sb.WriteString(strconv.FormatInt(int64(ref), radix))
		}
	}
	return sb.String()
}

func exportV1(w *bufio.Writer, root *trie.Node, radix int) int {
	// The data marker is also line 0, the shared word leaf.
	w.WriteString(dataV1 + "\n")
	if !root.HasChildren() && !root.IsWord() {
		return 1
	}
	l := newLayout(root)
	idx := make(map[*trie.Node]int)
	lines := 1
	for _, bucket := range l.buckets {
		sigs := map[string]int{dataV1: 0}
		for _, e := range bucket {
			n := e.Node
			if _, ok := idx[n]; ok {
				continue
			}
			line := lineV1(n, idx, radix)
			if i, ok := sigs[line]; ok {
				idx[n] = i
				continue
			}
			sigs[line] = lines
			idx[n] = lines
			lines++
			w.WriteString(line + "\n")
		}
	}
	w.WriteString(lineV1(root, idx, radix) + "\n")
	return lines + 1
}

func importV1(lr *lineReader, radix int) (*trie.Node, error) {
	// The data marker line doubles as the first node.
	nodes := []*trie.Node{trie.NewWordNode()}
	lr.keepCR = !lr.crlf
	// Empty lines are bare leaves, except at the end of the data.
	blank := 0
	for {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if line == "" {
			blank++
			continue
		}
		for ; blank > 0; blank-- {
			nodes = append(nodes, trie.NewNode())
		}
		n, err := decodeV1(line, nodes, radix, lr.n)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 1 {
		return trie.NewNode(), nil
	}
	return nodes[len(nodes)-1], nil
}

func decodeV1(line string, nodes []*trie.Node, radix, lineNo int) (*trie.Node, error) {
	rs := []rune(line)
	var flags uint8
	i := 0
	if rs[0] == eow {
		flags = trie.FlagWord
		i++
	}
	var edges []trie.Edge
	for i < len(rs) {
		if rs[i] == ',' {
			i++
			continue
		}
		c := rs[i]
		i++
		if c == '\\' {
			if i >= len(rs) {
				return nil, malformed(lineNo, "dangling escape")
			}
			c = rs[i]
			i++
		}
		start := i
		for i < len(rs) && rs[i] != ',' {
			i++
		}
		ref, err := parseRef(string(rs[start:i]), radix, len(nodes), lineNo)
		if err != nil {
			return nil, err
		}
		edges = append(edges, trie.Edge{Char: c, Node: nodes[ref]})
	}
	return trie.NewNodeFrom(flags, edges), nil
}
