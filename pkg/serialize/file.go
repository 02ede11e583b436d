package serialize

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/klauspost/compress/gzip"
)

// IsCompressed reports whether path names a gzip file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// ExportFile writes root to path, gzip compressed when path ends in ".gz".
func ExportFile(path string, root *trie.Node, opts ExportOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	var w io.Writer = f
	if IsCompressed(path) {
		zw := gzip.NewWriter(f)
		defer func() {
			if cerr := zw.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("failed to finish %s: %w", path, cerr)
			}
		}()
		w = zw
	}
	return Export(w, root, opts)
}

// ImportFile reads a trie from path, decompressing ".gz" files.
func ImportFile(path string) (*trie.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if IsCompressed(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	n, err := Import(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}
