package serialize

import (
	"bufio"
	"slices"
	"strconv"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
)

// lineV2 renders a node reached through letter as the letter, an optional
// word flag and its sorted child refs.
func lineV2(letter rune, n *trie.Node, idx map[trie.Edge]int, radix int) string {
	var sb strings.Builder
	sb.WriteRune(letter)
	if n.IsWord() {
		sb.WriteRune(eow)
	}
	refs := make([]int, 0, n.Len())
	for _, e := range n.Edges() {
		refs = append(refs, idx[e])
	}
	slices.Sort(refs)
	for i, r := range refs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(int64(r), radix))
	}
	return sb.String()
}

func exportV2(w *bufio.Writer, root *trie.Node, radix int) int {
	l := newLayout(root)
	idx := make(map[trie.Edge]int)
	lines := 0
	for _, bucket := range l.buckets {
		sigs := make(map[string]int)
		for _, e := range bucket {
			line := lineV2(e.Char, e.Node, idx, radix)
			if i, ok := sigs[line]; ok {
				idx[e] = i
				continue
			}
			sigs[line] = lines
			idx[e] = lines
			lines++
			w.WriteString(line + "\n")
		}
	}
	w.WriteString(lineV2(rootLetter, root, idx, radix) + "\n")
	return lines + 1
}

func importV2(lr *lineReader, radix int) (*trie.Node, error) {
	var nodes []trie.Edge
	for {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if line == "" {
			continue
		}
		e, err := decodeV2(line, nodes, radix, lr.n)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, e)
	}
	if len(nodes) == 0 {
		return nil, malformed(lr.n, "no data")
	}
	return nodes[len(nodes)-1].Node, nil
}

func decodeV2(line string, nodes []trie.Edge, radix, lineNo int) (trie.Edge, error) {
	rs := []rune(line)
	letter := rs[0]
	rest := rs[1:]
	var flags uint8
	if len(rest) > 0 && rest[0] == eow {
		flags = trie.FlagWord
		rest = rest[1:]
	}
	var edges []trie.Edge
	for _, ref := range strings.Split(string(rest), ",") {
		if ref == "" {
			continue
		}
		i, err := parseRef(ref, radix, len(nodes), lineNo)
		if err != nil {
			return trie.Edge{}, err
		}
		edges = append(edges, nodes[i])
	}
	return trie.Edge{Char: letter, Node: trie.NewNodeFrom(flags, edges)}, nil
}
