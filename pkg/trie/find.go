package trie

import (
	"strings"
	"unicode"
)

// CompoundMode selects how a lookup may split a word.
type CompoundMode int

const (
	// CompoundNone accepts single dictionary words only.
	CompoundNone CompoundMode = iota
	// CompoundNatural follows the '+' markers stored in the dictionary.
	CompoundNatural
	// CompoundLegacy splits anywhere a part of at least LegacyMinCompoundLength ends.
	CompoundLegacy
)

// DefaultLegacyMinCompoundLength is the minimum part length for legacy compounds.
const DefaultLegacyMinCompoundLength = 3

// FindOptions controls FindWord.
type FindOptions struct {
	MatchCase               bool
	CompoundMode            CompoundMode
	LegacyMinCompoundLength int
}

// FindResult describes a lookup.
type FindResult struct {
	// Found holds the matched word, with legacy compound parts joined by '+',
	// or "" when nothing matched.
	Found        string
	CompoundUsed bool
	CaseMatched  bool
	Forbidden    bool
	// Node is the last node reached, useful for completion even on a miss.
	Node *Node
}

// IsFound reports whether the lookup matched.
func (r FindResult) IsFound() bool {
	return r.Found != ""
}

// FindWord runs a lookup on root.
func FindWord(root *Root, word string, opts FindOptions) FindResult {
	switch opts.CompoundMode {
	case CompoundLegacy:
		return findLegacy(root, word, opts)
	case CompoundNatural:
		return findNatural(root, word, opts.MatchCase)
	default:
		if opts.MatchCase {
			return findExact(root, word)
		}
		return findExactFolded(root, word)
	}
}

func findExact(root *Root, word string) FindResult {
	n := root.Node.Walk(word)
	res := FindResult{Node: n, CaseMatched: true}
	if word != "" && n.IsWord() {
		res.Found = word
	}
	res.Forbidden = IsForbidden(root.Node, root.Options.ForbiddenWordPrefix, word)
	return res
}

func findExactFolded(root *Root, word string) FindResult {
	res := findExact(root, word)
	if res.IsFound() {
		return res
	}
	folded := root.CaseInsensitiveRoot()
	if folded == nil {
		return res
	}
	n := folded.Walk(word)
	if word != "" && n.IsWord() {
		return FindResult{
			Found:     word,
			Node:      n,
			Forbidden: isForbiddenFolded(root, folded, word),
		}
	}
	if res.Node == nil {
		res.Node = n
	}
	return res
}

// compoundSearch is the state of a natural compound lookup. The depth of the
// search never exceeds the number of runes in the word.
type compoundSearch struct {
	root      *Root
	word      []rune
	roots     []*Node
	foldRoots []bool
	matchCase bool

	node         *Node
	compoundUsed bool
	caseMatched  bool
	partial      *Node
}

func findNatural(root *Root, word string, matchCase bool) FindResult {
	s := &compoundSearch{root: root, word: []rune(word), matchCase: matchCase}
	if cr := root.CompoundRoot(); cr != nil {
		s.roots = append(s.roots, cr)
		s.foldRoots = append(s.foldRoots, false)
	}
	folded := root.CaseInsensitiveRoot()
	if !matchCase {
		if fcr := folded.Child(root.Options.CompoundCharacter); fcr != nil {
			s.roots = append(s.roots, fcr)
			s.foldRoots = append(s.foldRoots, true)
		}
	}

	res := FindResult{}
	if len(s.word) > 0 && !s.match(root.Node, 0, true, false) {
		// The folded copy holds lowercase forms only.
		if !matchCase && folded != nil && !hasUpper(s.word) {
			s.match(folded, 0, false, false)
		}
	}
	if s.node == nil {
		res.Node = s.partial
		return res
	}
	res.Found = word
	res.Node = s.node
	res.CompoundUsed = s.compoundUsed
	res.CaseMatched = s.caseMatched
	if s.caseMatched || folded == nil {
		res.Forbidden = IsForbidden(root.Node, root.Options.ForbiddenWordPrefix, word)
	} else {
		res.Forbidden = isForbiddenFolded(root, folded, word)
	}
	return res
}

// match tries to consume word[i:] starting at n. Plain descent is tried
// before jumping to a compound root.
func (s *compoundSearch) match(n *Node, i int, caseMatched, compoundUsed bool) bool {
	if i == len(s.word) {
		if n.IsWord() {
			s.node = n
			s.caseMatched = caseMatched
			s.compoundUsed = compoundUsed
			return true
		}
		return false
	}
	if c := n.Child(s.word[i]); c != nil {
		if s.partial == nil && i == len(s.word)-1 {
			s.partial = c
		}
		if s.match(c, i+1, caseMatched, compoundUsed) {
			return true
		}
	}
	if i == 0 || n.Child(s.root.Options.CompoundCharacter) == nil {
		return false
	}
	for k, cr := range s.roots {
		if s.match(cr, i, caseMatched && !s.foldRoots[k], true) {
			return true
		}
	}
	return false
}

func hasUpper(word []rune) bool {
	for _, r := range word {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// legacySearch splits a word into dictionary words of a minimum length
// without regard to compound markers.
type legacySearch struct {
	roots  []*Node
	word   []rune
	minLen int
	parts  []int
	node   *Node
	folded bool
}

func findLegacy(root *Root, word string, opts FindOptions) FindResult {
	minLen := opts.LegacyMinCompoundLength
	if minLen <= 0 {
		minLen = DefaultLegacyMinCompoundLength
	}
	s := &legacySearch{roots: []*Node{root.Node}, word: []rune(word), minLen: minLen}
	if !opts.MatchCase {
		if f := root.CaseInsensitiveRoot(); f != nil {
			s.roots = append(s.roots, f)
		}
	}
	res := FindResult{CaseMatched: true}
	if len(s.word) == 0 {
		return res
	}
	for k, r := range s.roots {
		s.folded = k > 0
		if s.match(r, 0, 0) {
			res.Found = s.extract()
			res.Node = s.node
			res.CompoundUsed = len(s.parts) > 0
			res.CaseMatched = !s.folded
			return res
		}
	}
	return res
}

func (s *legacySearch) match(n *Node, i, partLen int) bool {
	if i == len(s.word) {
		if n.IsWord() && partLen >= s.minLen {
			s.node = n
			return true
		}
		return false
	}
	if c := n.Child(s.word[i]); c != nil {
		if s.match(c, i+1, partLen+1) {
			return true
		}
	}
	if partLen == 0 || !n.IsWord() || partLen < s.minLen || len(s.word)-i < s.minLen {
		return false
	}
	s.parts = append(s.parts, i)
	folded := s.folded
	for k, r := range s.roots {
		if k > 0 {
			s.folded = true
		}
		if s.match(r, i, 0) {
			return true
		}
	}
	s.folded = folded
	s.parts = s.parts[:len(s.parts)-1]
	return false
}

func (s *legacySearch) extract() string {
	var sb strings.Builder
	p := 0
	for i, r := range s.word {
		if p < len(s.parts) && s.parts[p] == i {
			sb.WriteString(JoinSeparator)
			p++
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// isForbiddenFolded checks a word matched through the folded subtree. An
// explicit "!word" still wins over its case-insensitive form.
func isForbiddenFolded(root *Root, folded *Node, word string) bool {
	prefix := root.Options.ForbiddenWordPrefix
	return IsForbidden(root.Node, prefix, word) || IsForbidden(folded, prefix, word)
}

// IsForbidden reports whether word is stored below root's forbidden key.
func IsForbidden(root *Node, forbidPrefix rune, word string) bool {
	f := root.Child(forbidPrefix)
	if f == nil {
		return false
	}
	return f.Walk(word).IsWord()
}
