package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/pkg/serialize"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

var errStopVisit = errors.New("stop visit")

// maxLineLength bounds one dictionary source line.
const maxLineLength = 1 << 20

// LoaderOptions controls how word lists become a trie.
type LoaderOptions struct {
	Parse ParseOptions
	// Minimize merges equal subtrees after building.
	Minimize bool
}

// DefaultLoaderOptions parses with the default markers and minimizes.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{Parse: DefaultParseOptions(), Minimize: true}
}

// FileInfo describes one loaded source file.
type FileInfo struct {
	Path   string
	Format FileFormat
	Lines  int
	Words  int
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	Files      int
	Lines      int
	Words      int
	Unique     int
	Duplicates int
	Forbidden  int
	Elapsed    time.Duration
}

// Loader stages parsed words from any number of sources and builds one trie
// from them. It is safe for concurrent use.
type Loader struct {
	opts    LoaderOptions
	staged  *wordSet
	files   []FileInfo
	lines   int
	elapsed time.Duration
	mu      sync.Mutex
	log     *log.Logger
}

// NewLoader creates an empty loader.
func NewLoader(opts LoaderOptions) *Loader {
	return &Loader{
		opts:   opts,
		staged: newWordSet(),
		log:    logger.New("loader"),
	}
}

// AddWordList parses a word list file, plain or gzip compressed.
func (l *Loader) AddWordList(path string) error {
	if err := ValidateFileFormat(path, FormatWordList); err != nil {
		return err
	}
	start := time.Now()
	file, err := openFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	l.mu.Lock()
	defer l.mu.Unlock()

	info := FileInfo{Path: path, Format: FormatWordList}
	p := NewLineParser(l.opts.Parse)
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 64*1024), maxLineLength)
	for sc.Scan() {
		info.Lines++
		for _, w := range p.ParseLine(sc.Text()) {
			l.staged.add(w)
			info.Words++
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read word list %s: %w", path, err)
	}

	l.files = append(l.files, info)
	l.lines += info.Lines
	l.elapsed += time.Since(start)
	l.log.Debugf("Loaded %s: %d lines, %d words", path, info.Lines, info.Words)
	return nil
}

// AddLines parses in-memory source lines with a fresh parser and returns the
// number of words produced.
func (l *Loader) AddLines(lines iter.Seq[string]) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	p := NewLineParser(l.opts.Parse)
	for line := range lines {
		l.lines++
		for _, w := range p.ParseLine(line) {
			l.staged.add(w)
			n++
		}
	}
	return n
}

// Build returns a trie holding every staged word.
func (l *Loader) Build() *trie.Trie {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	t := l.staged.build(l.opts.Minimize)
	l.elapsed += time.Since(start)
	l.log.Debugf("Built trie with %d words from %d files", l.staged.len(), len(l.files))
	return t
}

// Files returns the loaded source files in load order.
func (l *Loader) Files() []FileInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.files)
}

// Stats returns current loading statistics
func (l *Loader) Stats() LoaderStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	forbid := string(l.forbiddenPrefix())
	return LoaderStats{
		Files:      len(l.files),
		Lines:      l.lines,
		Words:      l.staged.total,
		Unique:     l.staged.len(),
		Duplicates: l.staged.dupes,
		Forbidden:  len(l.staged.withPrefix(forbid)),
		Elapsed:    l.elapsed,
	}
}

func (l *Loader) forbiddenPrefix() rune {
	if p := l.opts.Parse.ForbiddenPrefix; p != 0 {
		return p
	}
	return trie.ForbidPrefix
}

// FindFiles returns the files in dir whose extension matches format, sorted
// by name. Gzip compressed variants are included.
func FindFiles(dir string, format FileFormat) ([]string, error) {
	info, ok := supportedFormats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(info.Extensions, baseExt(e.Name())) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

// BuildTrie parses lines, drops duplicates and builds a trie.
func BuildTrie(lines iter.Seq[string], opts LoaderOptions) *trie.Trie {
	l := NewLoader(opts)
	l.AddLines(lines)
	return l.Build()
}

// BuildTrieFromText splits text into lines and builds a trie from them.
func BuildTrieFromText(text string, opts LoaderOptions) *trie.Trie {
	return BuildTrie(slices.Values(strings.Split(text, "\n")), opts)
}

// Load reads a dictionary in the given format. Word lists are parsed and
// built; serialized tries are imported as they are.
func Load(path string, format FileFormat, opts LoaderOptions) (*trie.Trie, error) {
	return LoadFiles([]string{path}, format, opts)
}

// LoadFiles reads several dictionaries of one format into a single trie.
// Only one serialized trie can be loaded at a time.
func LoadFiles(paths []string, format FileFormat, opts LoaderOptions) (*trie.Trie, error) {
	switch format {
	case FormatTrie:
		if len(paths) != 1 {
			return nil, fmt.Errorf("expected one trie file, got %d", len(paths))
		}
		if err := ValidateFileFormat(paths[0], FormatTrie); err != nil {
			return nil, err
		}
		n, err := serialize.ImportFile(paths[0])
		if err != nil {
			return nil, err
		}
		return trie.FromNode(n), nil
	case FormatWordList:
		l := NewLoader(opts)
		for _, p := range paths {
			if err := l.AddWordList(p); err != nil {
				return nil, err
			}
		}
		return l.Build(), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}
