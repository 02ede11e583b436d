package dictionary

import (
	"iter"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// wordSet collects parsed words before the trie is built. The patricia trie
// drops duplicates and keeps how often each word was seen.
type wordSet struct {
	words *patricia.Trie
	total int
	dupes int
}

func newWordSet() *wordSet {
	return &wordSet{words: patricia.NewTrie()}
}

func (s *wordSet) add(word string) {
	s.total++
	key := patricia.Prefix(word)
	if s.words.Insert(key, 1) {
		return
	}
	s.dupes++
	s.words.Set(key, s.words.Get(key).(int)+1)
}

func (s *wordSet) len() int {
	return s.total - s.dupes
}

func (s *wordSet) all() iter.Seq[string] {
	return func(yield func(string) bool) {
		stop := errStopVisit
		err := s.words.Visit(func(p patricia.Prefix, _ patricia.Item) error {
			if !yield(string(p)) {
				return stop
			}
			return nil
		})
		if err != nil && err != stop {
			log.Errorf("Error visiting staged words: %v", err)
		}
	}
}

// withPrefix yields the staged words starting with prefix.
func (s *wordSet) withPrefix(prefix string) []string {
	var out []string
	s.words.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		out = append(out, string(p))
		return nil
	})
	return out
}

func (s *wordSet) build(minimize bool) *trie.Trie {
	b := trie.NewBuilder().InsertAll(s.all())
	if minimize {
		return b.BuildDAWG()
	}
	return b.Build()
}
