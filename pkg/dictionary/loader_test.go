package dictionary

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/serialize"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzip(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoaderStats(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "words.txt", "walk\nWalk\nwalk\n!talk\n")

	l := NewLoader(DefaultLoaderOptions())
	require.NoError(t, l.AddWordList(path))

	stats := l.Stats()
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 4, stats.Lines)
	assert.Equal(t, 5, stats.Words)
	assert.Equal(t, 4, stats.Unique)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 1, stats.Forbidden)

	files := l.Files()
	require.Len(t, files, 1)
	assert.Equal(t, FileInfo{Path: path, Format: FormatWordList, Lines: 4, Words: 5}, files[0])

	tr := l.Build()
	assert.Equal(t, 4, tr.Size())
	assert.True(t, tr.Has("walk", false))
	assert.True(t, tr.HasWord("Walk", true))
	assert.True(t, tr.IsForbiddenWord("talk"))
	assert.False(t, tr.Has("talk", false))
}

func TestLoaderMultipleSources(t *testing.T) {
	dir := t.TempDir()
	plain := writeFile(t, dir, "a.txt", "walk*\n*ing\n")
	packed := writeGzip(t, dir, "b.dic.gz", "talk\n# cspell-dictionary: split\nhat cat\n")

	tr, err := LoadFiles([]string{plain, packed}, FormatWordList, DefaultLoaderOptions())
	require.NoError(t, err)
	for _, w := range []string{"walk", "walking", "talk", "hat", "cat"} {
		assert.True(t, tr.Has(w, true), w)
	}
	assert.False(t, tr.Has("hat cat", true))
}

func TestLoaderAddLines(t *testing.T) {
	l := NewLoader(LoaderOptions{Parse: DefaultParseOptions()})
	n := l.AddLines(slices.Values([]string{"Walk", "talk", "talk"}))
	assert.Equal(t, 4, n)
	assert.Equal(t, 3, l.Stats().Unique)

	tr := l.Build()
	assert.Equal(t, []string{"Walk", "talk", "~walk"}, slices.Collect(tr.Words()))
}

func TestBuildTrieFromText(t *testing.T) {
	tr := BuildTrieFromText("Error*\n*Code\n!Forbidden\n", DefaultLoaderOptions())
	assert.True(t, tr.HasWord("ErrorCode", true))
	assert.True(t, tr.HasWord("Error", true))
	assert.False(t, tr.HasWord("CodeError", true))
	assert.True(t, tr.IsForbiddenWord("Forbidden"))
}

func TestLoadTrieFile(t *testing.T) {
	dir := t.TempDir()
	src := BuildTrieFromText("walk\ntalk\n", DefaultLoaderOptions())
	path := filepath.Join(dir, "words.trie")
	require.NoError(t, serialize.ExportFile(path, src.Root().Node, serialize.ExportOptions{}))

	tr, err := Load(path, FormatTrie, DefaultLoaderOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"talk", "walk"}, slices.Collect(tr.Words()))

	_, err = LoadFiles([]string{path, path}, FormatTrie, DefaultLoaderOptions())
	assert.Error(t, err)

	_, err = LoadFiles([]string{path}, FormatUnknown, DefaultLoaderOptions())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		path   string
		format FileFormat
	}{
		{"missing", filepath.Join(dir, "missing.txt"), FormatWordList},
		{"empty", writeFile(t, dir, "empty.txt", ""), FormatWordList},
		{"extension", writeFile(t, dir, "words.csv", "walk\n"), FormatWordList},
		{"trie without header", writeFile(t, dir, "bad.trie", "this is not a trie file\n"), FormatTrie},
		{"trie too small", writeFile(t, dir, "small.trie", "TrieXv2\n"), FormatTrie},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, tt.format, DefaultLoaderOptions())
			assert.Error(t, err)
		})
	}
}

func TestValidateFileFormat(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, ValidateFileFormat(writeFile(t, dir, "w.words", "walk\n"), FormatWordList))
	assert.NoError(t, ValidateFileFormat(writeGzip(t, dir, "w.txt.gz", "walk\n"), FormatWordList))

	bad := writeFile(t, dir, "bad.trie", "# just a comment here\n")
	assert.ErrorIs(t, ValidateFileFormat(bad, FormatTrie), ErrUnknownFormat)
	assert.ErrorIs(t, ValidateFileFormat(bad, FormatUnknown), ErrUnknownFormat)
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "walk\n")
	writeFile(t, dir, "a.dic.gz", "")
	writeFile(t, dir, "c.trie", "")
	writeFile(t, dir, "notes.md", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	files, err := FindFiles(dir, FormatWordList)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.dic.gz"), filepath.Join(dir, "b.txt")}, files)

	files, err = FindFiles(dir, FormatTrie)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "c.trie")}, files)

	_, err = FindFiles(dir, FormatUnknown)
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = FindFiles(filepath.Join(dir, "missing"), FormatTrie)
	assert.Error(t, err)
}

func TestParseFileFormat(t *testing.T) {
	tests := []struct {
		in   string
		want FileFormat
	}{
		{"words", FormatWordList},
		{"TXT", FormatWordList},
		{" trie ", FormatTrie},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFileFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
	_, err := ParseFileFormat("hunspell")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, "unknown", FormatUnknown.String())
	assert.Equal(t, "trie", FormatTrie.String())
}

func TestLoaderMinimize(t *testing.T) {
	words := "walk\ntalk\nwalks\ntalks\n"
	dawg := BuildTrieFromText(words, LoaderOptions{Parse: DefaultParseOptions(), Minimize: true})
	full := BuildTrieFromText(words, LoaderOptions{Parse: DefaultParseOptions()})
	assert.Less(t, trie.CountNodes(dawg.Root().Node), trie.CountNodes(full.Root().Node))
	assert.Equal(t, slices.Collect(full.Words()), slices.Collect(dawg.Words()))
}
