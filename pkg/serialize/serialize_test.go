package serialize

import (
	"bytes"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleWords = []string{
	"walk", "walks", "walked", "walking", "talk", "talks", "talked",
	"Walk", "~walk", "walk+", "+ing", "+ing+", "!walkz", "café", "~cafe",
	"a,b", "[x]", "{y}", "c:d", `e\f`, "g*h",
}

func export(t *testing.T, root *trie.Node, opts ExportOptions) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, root, opts))
	return buf.String()
}

func collect(n *trie.Node) []string {
	return slices.Collect(trie.Words(n))
}

func TestExportExact(t *testing.T) {
	root := trie.FromWords("a", "b").Root().Node
	tests := []struct {
		name string
		opts ExportOptions
		want string
	}{
		{
			"v1",
			ExportOptions{Version: V1},
			"#!/usr/bin/env cspell-trie reader\nTrieXv1\nbase=16\n# Data:\n*\na,b\n",
		},
		{
			"v2",
			ExportOptions{Version: V2},
			"#!/usr/bin/env cspell-trie reader\nTrieXv2\nbase=16\n# Data:\n__DATA__\na*\nb*\n^0,1\n",
		},
		{
			"default version",
			ExportOptions{},
			"#!/usr/bin/env cspell-trie reader\nTrieXv2\nbase=16\n# Data:\n__DATA__\na*\nb*\n^0,1\n",
		},
		{
			"comment",
			ExportOptions{Version: V1, Base: 10, Comment: "first\nsecond"},
			"#!/usr/bin/env cspell-trie reader\nTrieXv1\nbase=10\n# first\n# second\n# Data:\n*\na,b\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, export(t, root, tt.opts))
		})
	}
}

func TestExportV1Escapes(t *testing.T) {
	out := export(t, trie.FromWords("a,b").Root().Node, ExportOptions{Version: V1})
	_, data, ok := strings.Cut(out, "# Data:\n")
	require.True(t, ok)
	assert.Equal(t, "*\nb\n\\,1\na2\n", data)
}

func TestRoundTrip(t *testing.T) {
	built := map[string]*trie.Node{
		"tree": trie.NewBuilder().InsertList(sampleWords).Build().Root().Node,
		"dawg": trie.NewBuilder().InsertList(sampleWords).BuildDAWG().Root().Node,
	}
	want := collect(built["tree"])

	for name, root := range built {
		for _, v := range []Version{V1, V2} {
			for _, base := range []int{10, 16, 32} {
				t.Run(name+"/"+v.String()+"/base"+strconv.Itoa(base), func(t *testing.T) {
					var buf bytes.Buffer
					require.NoError(t, Export(&buf, root, ExportOptions{Version: v, Base: base}))
					got, err := Import(&buf)
					require.NoError(t, err)
					assert.Equal(t, want, collect(got))
				})
			}
		}
	}
}

func TestReexportIsStable(t *testing.T) {
	root := trie.NewBuilder().InsertList(sampleWords).BuildDAWG().Root().Node
	for _, v := range []Version{V1, V2} {
		t.Run(v.String(), func(t *testing.T) {
			first := export(t, root, ExportOptions{Version: v})
			n, err := Import(strings.NewReader(first))
			require.NoError(t, err)
			assert.Equal(t, first, export(t, n, ExportOptions{Version: v}))
		})
	}
}

func TestExportedTrieIsMinimal(t *testing.T) {
	root := trie.FromWords("walk", "talk", "walks", "talks").Root().Node
	out := export(t, root, ExportOptions{Version: V2})
	_, data, _ := strings.Cut(out, "__DATA__\n")
	// s, k, l, a, w, t and the root
	assert.Equal(t, 7, strings.Count(data, "\n"))
}

func TestEmptyTrie(t *testing.T) {
	for _, v := range []Version{V1, V2} {
		t.Run(v.String(), func(t *testing.T) {
			out := export(t, trie.NewNode(), ExportOptions{Version: v})
			n, err := Import(strings.NewReader(out))
			require.NoError(t, err)
			assert.Empty(t, collect(n))
		})
	}
}

func TestRepeatedInsertExportsIdentically(t *testing.T) {
	once := trie.NewBuilder().InsertList([]string{"walk"}).Build().Root().Node
	thrice := trie.NewBuilder().InsertList([]string{"walk", "walk", "walk"}).Build().Root().Node
	for _, v := range []Version{V1, V2} {
		t.Run(v.String(), func(t *testing.T) {
			assert.Equal(t, export(t, once, ExportOptions{Version: v}), export(t, thrice, ExportOptions{Version: v}))
		})
	}
}

func TestRoundTripEdgeCases(t *testing.T) {
	bareLeaf := trie.NewNodeFrom(0, []trie.Edge{
		{Char: 'a', Node: trie.NewNode()},
		{Char: 'b', Node: trie.NewWordNode()},
	})
	tests := []struct {
		name     string
		root     *trie.Node
		rootWord bool
		words    []string
	}{
		{"empty word", trie.FromWords("").Root().Node, true, nil},
		{"empty word with others", trie.FromWords("", "ab").Root().Node, true, []string{"ab"}},
		{"trailing carriage return", trie.FromWords("ab", "ab\r", "x\ty").Root().Node, false, []string{"ab", "ab\r", "x\ty"}},
		{"leaf without word flag", bareLeaf, false, []string{"b"}},
	}
	for _, tt := range tests {
		for _, v := range []Version{V1, V2} {
			t.Run(tt.name+"/"+v.String(), func(t *testing.T) {
				out := export(t, tt.root, ExportOptions{Version: v})
				n, err := Import(strings.NewReader(out))
				require.NoError(t, err)
				assert.Equal(t, tt.rootWord, n.IsWord())
				assert.ElementsMatch(t, tt.words, collect(n))
			})
		}
	}

	out := export(t, bareLeaf, ExportOptions{Version: V1})
	n, err := Import(strings.NewReader(out))
	require.NoError(t, err)
	require.NotNil(t, n.Child('a'))
	assert.False(t, n.Child('a').IsWord())
}

func TestImportV1CRLF(t *testing.T) {
	in := "TrieXv1\r\nbase=16\r\n# Data:\r\n*\r\nb\r\na1,c\r\n"
	n, err := Import(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "c"}, collect(n))
}

func TestImportCommentsAndCRLF(t *testing.T) {
	in := "# leading comment\r\nTrieXv2\r\nbase=10\r\n# about\r\n__DATA__\r\nb*\r\na*0\r\n^1\r\n"
	n, err := Import(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "ab"}, collect(n))
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrUnknownFormat},
		{"unknown version", "TrieXv9\nbase=10\n*\n", ErrUnknownFormat},
		{"missing base", "TrieXv1\nradix=10\n*\n", ErrUnknownFormat},
		{"bad base", "TrieXv1\nbase=99\n*\n", ErrUnknownFormat},
		{"wrong marker", "TrieXv2\nbase=16\n*\n", ErrMalformed},
		{"v2 ref out of range", "TrieXv2\nbase=16\n__DATA__\na*\n^5\n", ErrMalformed},
		{"v2 bad ref", "TrieXv2\nbase=16\n__DATA__\na*\n^zz\n", ErrMalformed},
		{"v2 no data", "TrieXv2\nbase=16\n__DATA__\n", ErrMalformed},
		{"v1 ref out of range", "TrieXv1\nbase=16\n*\na9\n", ErrMalformed},
		{"v1 dangling escape", "TrieXv1\nbase=16\n*\na,\\\n", ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExportUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, trie.NewNode(), ExportOptions{Version: 4})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"1", V1, false},
		{"v1", V1, false},
		{"V2", V2, false},
		{"", V2, false},
		{" 2 ", V2, false},
		{"3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseVersion(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := trie.NewBuilder().InsertList(sampleWords).BuildDAWG()
	want := collect(src.Root().Node)

	for _, name := range []string{"words.trie", "words.trie.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, ExportFile(path, src.Root().Node, ExportOptions{Version: V2}))
			n, err := ImportFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, collect(n))
		})
	}

	_, err := ImportFile(filepath.Join(dir, "missing.trie"))
	assert.Error(t, err)
}

func TestImportTrie(t *testing.T) {
	out := export(t, trie.FromWords("walk", "walk+", "+ing").Root().Node, ExportOptions{})
	tr, err := ImportTrie(strings.NewReader(out))
	require.NoError(t, err)
	assert.False(t, tr.IsSizeKnown())
	assert.True(t, tr.Has("walking", true))
	assert.False(t, tr.Has("walking", false))
}
