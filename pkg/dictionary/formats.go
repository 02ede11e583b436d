package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
)

// ErrUnknownFormat is returned for a format name or file that matches no
// supported format.
var ErrUnknownFormat = errors.New("unknown dictionary format")

// FileFormat represents the supported dictionary file formats
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatWordList            // Dictionary source lines
	FormatTrie                // Serialized TrieX text
)

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Name        string
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatWordList: {
		Format:      FormatWordList,
		Name:        "words",
		Description: "Word List",
		Extensions:  []string{".txt", ".dic", ".words"},
		MinSize:     1,
	},
	FormatTrie: {
		Format:      FormatTrie,
		Name:        "trie",
		Description: "Serialized Trie",
		Extensions:  []string{".trie"},
		MinSize:     16, // At least the version and base lines
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Name
	}
	return "unknown"
}

// ParseFileFormat maps a config or flag value to a FileFormat.
func ParseFileFormat(s string) (FileFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "words", "wordlist", "text", "txt":
		return FormatWordList, nil
	case "trie":
		return FormatTrie, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// baseExt returns the extension of filename ignoring a trailing ".gz".
func baseExt(filename string) string {
	name := strings.ToLower(filename)
	name = strings.TrimSuffix(name, ".gz")
	return filepath.Ext(name)
}

func isGzip(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".gz")
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, expectedFormat)
	}

	// Check file size
	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	// Check file extension
	ext := baseExt(filename)
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v, optionally .gz)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	// Format-specific validation
	switch expectedFormat {
	case FormatTrie:
		return validateTrieFormat(filename)
	case FormatWordList:
		return validateTextFormat(filename)
	}

	return nil
}

// openFile opens filename, decompressing ".gz" files.
func openFile(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	if !isGzip(filename) {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decompress %s: %w", filename, err)
	}
	return &gzipFile{Reader: zr, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	if err := g.f.Close(); err != nil {
		return err
	}
	return zerr
}

// validateTrieFormat looks for a TrieX version line in the header.
func validateTrieFormat(filename string) error {
	file, err := openFile(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	for i := 0; i < 8 && sc.Scan(); i++ {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "TrieXv") {
			log.Debugf("Trie file %s validated: %s", filename, line)
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	return fmt.Errorf("%w: %s has no TrieX header", ErrUnknownFormat, filename)
}

// validateTextFormat validates word list files
func validateTextFormat(filename string) error {
	file, err := openFile(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	buffer := make([]byte, 1024)
	if _, err := file.Read(buffer); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read from word list %s: %w", filename, err)
	}

	log.Debugf("Word list %s validated", filename)
	return nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
