// Package serialize reads and writes tries in the line based TrieX text
// formats.
//
// Both versions write the nodes bottom up, one per line, each line naming its
// children by the index of an earlier line. Equal subtrees are written once,
// so a serialized dictionary is already minimized. The root is always the
// last line.
package serialize

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// Version selects the text layout.
type Version int

const (
	// V1 writes edge letters inside the parent line and marks the data with
	// a lone "*" line.
	V1 Version = 1
	// V2 writes each node's own letter first and marks the data with
	// __DATA__.
	V2 Version = 2
)

// DefaultBase is the radix used for references when none is given.
const DefaultBase = 16

const (
	shebang    = "#!/usr/bin/env cspell-trie reader"
	eow        = '*'
	dataV1     = "*"
	dataV2     = "__DATA__"
	rootLetter = '^'
)

var (
	// ErrUnknownFormat is returned for input without a recognized header.
	ErrUnknownFormat = errors.New("unknown trie file format")
	// ErrMalformed is returned for data lines that cannot be decoded.
	ErrMalformed = errors.New("malformed trie data")
)

// ExportOptions controls Export.
type ExportOptions struct {
	Version Version
	// Base is the reference radix. It is clamped to 10..36.
	Base int
	// Comment is written into the header, one "# " line per input line.
	Comment string
}

func (o ExportOptions) radix() int {
	if o.Base == 0 {
		return DefaultBase
	}
	return min(max(o.Base, 10), 36)
}

// ParseVersion maps "1", "v1", "V1" and their V2 counterparts to a Version.
func ParseVersion(s string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "v1":
		return V1, nil
	case "", "2", "v2":
		return V2, nil
	}
	return 0, fmt.Errorf("%w: version %q", ErrUnknownFormat, s)
}

func (v Version) String() string {
	return "TrieXv" + strconv.Itoa(int(v))
}

// Export writes root to w. The trie is not modified.
func Export(w io.Writer, root *trie.Node, opts ExportOptions) error {
	if opts.Version == 0 {
		opts.Version = V2
	}
	bw := bufio.NewWriter(w)
	radix := opts.radix()
	writeHeader(bw, opts.Version, radix, opts.Comment)
	var lines int
	switch opts.Version {
	case V1:
		lines = exportV1(bw, root, radix)
	case V2:
		lines = exportV2(bw, root, radix)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, opts.Version)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write trie: %w", err)
	}
	log.Debugf("exported %s trie: %d lines, base %d", opts.Version, lines, radix)
	return nil
}

// ExportTrie writes t's root.
func ExportTrie(w io.Writer, t *trie.Trie, opts ExportOptions) error {
	return Export(w, t.Root().Node, opts)
}

func writeHeader(w *bufio.Writer, v Version, radix int, comment string) {
	w.WriteString(shebang + "\n")
	w.WriteString(v.String() + "\n")
	w.WriteString("base=" + strconv.Itoa(radix) + "\n")
	if comment != "" {
		for _, line := range strings.Split(comment, "\n") {
			w.WriteString("# " + line + "\n")
		}
	}
	w.WriteString("# Data:\n")
	if v == V2 {
		w.WriteString(dataV2 + "\n")
	}
}

// Import reads a trie written by Export in either version.
func Import(r io.Reader) (*trie.Node, error) {
	lr := &lineReader{r: bufio.NewReader(r)}
	v, radix, err := readHeader(lr)
	if err != nil {
		return nil, err
	}
	var root *trie.Node
	switch v {
	case V1:
		root, err = importV1(lr, radix)
	case V2:
		root, err = importV2(lr, radix)
	}
	if err != nil {
		return nil, err
	}
	log.Debugf("imported %s trie: %d lines", v, lr.n)
	return root, nil
}

// ImportTrie reads a trie and wraps it with the default reserved keys.
func ImportTrie(r io.Reader) (*trie.Trie, error) {
	n, err := Import(r)
	if err != nil {
		return nil, err
	}
	return trie.FromNode(n), nil
}

type lineReader struct {
	r *bufio.Reader
	n int
	// keepCR leaves a trailing '\r' in place. V1 data stores it unescaped.
	keepCR bool
	// crlf is set when the data marker line ended in "\r\n".
	crlf   bool
	lastCR bool
}

// next returns the next line without its line ending.
func (lr *lineReader) next() (string, bool, error) {
	line, err := lr.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("failed to read trie: %w", err)
	}
	if line == "" && err != nil {
		return "", false, nil
	}
	lr.n++
	line = strings.TrimSuffix(line, "\n")
	lr.lastCR = strings.HasSuffix(line, "\r")
	if !lr.keepCR {
		line = strings.TrimSuffix(line, "\r")
	}
	return line, true, nil
}

func readHeader(lr *lineReader) (Version, int, error) {
	var rows []string
	marker := ""
	for {
		raw, ok, err := lr.next()
		if err != nil {
			return 0, 0, err
		}
		if !ok {
			break
		}
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == dataV1 || line == dataV2 {
			marker = line
			lr.crlf = lr.lastCR
			break
		}
		rows = append(rows, line)
	}
	if len(rows) < 2 {
		return 0, 0, ErrUnknownFormat
	}
	var v Version
	switch rows[0] {
	case V1.String():
		v = V1
	case V2.String():
		v = V2
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownFormat, rows[0])
	}
	b, ok := strings.CutPrefix(rows[1], "base=")
	if !ok {
		return 0, 0, fmt.Errorf("%w: missing base", ErrUnknownFormat)
	}
	radix, err := strconv.Atoi(b)
	if err != nil || radix < 2 || radix > 36 {
		return 0, 0, fmt.Errorf("%w: bad base %q", ErrUnknownFormat, b)
	}
	want := dataV1
	if v == V2 {
		want = dataV2
	}
	if marker != want {
		return 0, 0, fmt.Errorf("%w: %s data must start with %q", ErrMalformed, v, want)
	}
	return v, radix, nil
}

func malformed(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, line, fmt.Sprintf(format, args...))
}

func parseRef(s string, radix, limit, line int) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, radix, 32)
	if err != nil {
		return 0, malformed(line, "bad reference %q", s)
	}
	if n < 0 || int(n) >= limit {
		return 0, malformed(line, "reference %d out of range", n)
	}
	return int(n), nil
}

// layout orders the nodes below a root the way they are written: by height,
// then by first encounter in a depth first walk.
type layout struct {
	height  map[*trie.Node]int
	buckets [][]trie.Edge
}

func newLayout(root *trie.Node) *layout {
	l := &layout{height: make(map[*trie.Node]int)}
	l.measure(root)
	seen := make(map[trie.Edge]bool)
	visited := make(map[*trie.Node]bool)
	var walk func(n *trie.Node)
	walk = func(n *trie.Node) {
		visited[n] = true
		for _, e := range n.Edges() {
			if !seen[e] {
				seen[e] = true
				h := l.height[e.Node]
				for len(l.buckets) <= h {
					l.buckets = append(l.buckets, nil)
				}
				l.buckets[h] = append(l.buckets[h], e)
			}
			if !visited[e.Node] {
				walk(e.Node)
			}
		}
	}
	walk(root)
	return l
}

func (l *layout) measure(n *trie.Node) int {
	if h, ok := l.height[n]; ok {
		return h
	}
	h := 0
	for _, e := range n.Edges() {
		h = max(h, l.measure(e.Node)+1)
	}
	l.height[n] = h
	return h
}
