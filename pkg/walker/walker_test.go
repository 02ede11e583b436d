package walker

import (
	"slices"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/stretchr/testify/assert"
)

func TestParseCompoundMethod(t *testing.T) {
	tests := []struct {
		in   string
		want CompoundMethod
		ok   bool
	}{
		{"", CompoundNone, true},
		{"none", CompoundNone, true},
		{"separate", SeparateWords, true},
		{"join_words", JoinWords, true},
		{"spaces", CompoundNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCompoundMethod(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
	for _, m := range []CompoundMethod{CompoundNone, SeparateWords, JoinWords} {
		got, ok := ParseCompoundMethod(m.String())
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}
}

func TestPlainWords(t *testing.T) {
	root := trie.FromWords("b", "ab", "ac").Root().Node
	assert.Equal(t, []string{"ab", "ac", "b"}, slices.Collect(Words(root, Options{})))
}

func TestPlainCompound(t *testing.T) {
	root := trie.FromWords("a", "b").Root().Node
	tests := []struct {
		method CompoundMethod
		want   []string
	}{
		{SeparateWords, []string{"a", "a a", "a b", "b", "b a", "b b"}},
		{JoinWords, []string{"a", "a+a", "a+b", "b", "b+a", "b+b"}},
	}
	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			got := slices.Collect(Words(root, Options{CompoundMethod: tt.method, MaxDepth: 3}))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlainSkipSubtree(t *testing.T) {
	root := trie.FromWords("ab", "ac", "b").Root().Node
	w := New(root, Options{})
	var texts []string
	for step, ok := w.Next(true); ok; step, ok = w.Next(step.Text != "a") {
		texts = append(texts, step.Text)
	}
	assert.Equal(t, []string{"a", "b"}, texts)
}

func collectHinted(w *Hinted, deeper bool) []string {
	var texts []string
	for step, ok := w.Next(deeper); ok; step, ok = w.Next(deeper) {
		texts = append(texts, step.Text)
	}
	return texts
}

func TestHintedOrder(t *testing.T) {
	root := trie.FromWords("cat", "bat", "hat")
	w := NewHinted(root.Root(), "hat", HintedOptions{})
	assert.Equal(t, []string{"h", "b", "c"}, collectHinted(w, false))

	w = NewHinted(root.Root(), "cab", HintedOptions{})
	assert.Equal(t, []string{"c", "b", "h"}, collectHinted(w, false))
}

func TestHintedVisitsEverything(t *testing.T) {
	words := []string{"talk", "talks", "walk", "walker", "joy"}
	root := trie.FromWords(words...).Root()
	w := NewHinted(root, "walk", HintedOptions{})
	var got []string
	for step, ok := w.Next(true); ok; step, ok = w.Next(true) {
		if step.Node.IsWord() {
			got = append(got, step.Text)
		}
	}
	assert.ElementsMatch(t, words, got)
	assert.Equal(t, "walk", got[0])
}

func TestHintedIgnoreCase(t *testing.T) {
	root := trie.FromWords("Walk", "~walk", "!bad").Root()
	words := func(opts HintedOptions) []string {
		var out []string
		w := NewHinted(root, "walk", opts)
		for step, ok := w.Next(true); ok; step, ok = w.Next(true) {
			if step.Node.IsWord() {
				out = append(out, step.Text)
			}
		}
		return out
	}
	assert.Equal(t, []string{"Walk"}, words(HintedOptions{}))
	assert.Equal(t, []string{"Walk", "walk"}, words(HintedOptions{IgnoreCase: true}))
}

func TestHintedCompoundEdges(t *testing.T) {
	root := trie.FromWords("walk", "walk+", "+ing", "ing").Root()
	collect := func(sep string) []string {
		var out []string
		w := NewHinted(root, "walking", HintedOptions{EmitWordSeparator: sep, MaxDepth: 10})
		for step, ok := w.Next(true); ok; step, ok = w.Next(true) {
			if step.Node.IsWord() {
				out = append(out, step.Text)
			}
		}
		return out
	}
	assert.ElementsMatch(t, []string{"walk", "walking", "ing"}, collect(""))
	assert.ElementsMatch(t, []string{"walk", "walk+ing", "ing"}, collect("+"))
}

func TestHintedMaxDepth(t *testing.T) {
	root := trie.FromWords("a", "b").Root()
	w := NewHinted(root, "ab", HintedOptions{CompoundMethod: SeparateWords, MaxDepth: 3})
	var got []string
	for step, ok := w.Next(true); ok; step, ok = w.Next(true) {
		if step.Node.IsWord() {
			got = append(got, step.Text)
		}
		assert.Less(t, step.Depth, 3)
	}
	assert.ElementsMatch(t, []string{"a", "a a", "a b", "b", "b a", "b b"}, got)
}
