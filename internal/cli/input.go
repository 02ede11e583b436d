// Package cli runs the interactive spelling prompt used for debugging and
// trying out dictionaries.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/hbollon/go-edlib"
)

const completePrefix = ":c "

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

// InputHandler reads words from its input and prints a verdict and
// suggestions for each one. A line starting with ":c " lists completions of
// the rest of the line instead.
type InputHandler struct {
	dict         *suggest.Dictionary
	cache        *suggest.Cache
	opts         suggest.Options
	maxWordLen   int
	in           io.Reader
	out          io.Writer
	requestCount int
}

// NewInputHandler returns a handler on stdin/stdout.
func NewInputHandler(dict *suggest.Dictionary, opts suggest.Options, maxWordLen int) (*InputHandler, error) {
	return NewInputHandlerIO(dict, opts, maxWordLen, os.Stdin, os.Stdout)
}

// NewInputHandlerIO returns a handler on the given streams.
func NewInputHandlerIO(dict *suggest.Dictionary, opts suggest.Options, maxWordLen int, in io.Reader, out io.Writer) (*InputHandler, error) {
	cache, err := suggest.NewCache(suggest.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &InputHandler{
		dict:       dict,
		cache:      cache,
		opts:       opts,
		maxWordLen: maxWordLen,
		in:         in,
		out:        out,
	}, nil
}

// Start begins the prompt loop. It returns nil when the input ends.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, promptStyle.Render("wordtrie"), dimStyle.Render("type words and press Enter (Ctrl+D to exit)"))
	sc := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, promptStyle.Render("> "))
		if !sc.Scan() {
			fmt.Fprintln(h.out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line+" ", completePrefix); ok {
			h.handleComplete(strings.TrimSpace(rest))
			continue
		}
		for _, w := range utils.SplitInput(line) {
			h.handleWord(w)
		}
	}
}

// handleWord prints whether w is spelled correctly and, when it is not, the
// best suggestions with their weighted cost next to the plain edit distance.
func (h *InputHandler) handleWord(w string) {
	h.requestCount++
	if err := utils.ValidateWord(w, h.maxWordLen); err != nil {
		log.Errorf("%q: %v", w, err)
		return
	}
	if utils.IsOnlyNumbers(w) {
		fmt.Fprintf(h.out, "%s %s\n", dimStyle.Render("number"), wordStyle.Render(w))
		return
	}

	if h.dict.IsForbiddenWord(w) {
		fmt.Fprintf(h.out, "%s %s\n", badStyle.Render("forbidden"), wordStyle.Render(w))
	} else if h.dict.Has(w, true) {
		fmt.Fprintf(h.out, "%s %s\n", okStyle.Render("ok"), wordStyle.Render(w))
		return
	} else {
		fmt.Fprintf(h.out, "%s %s\n", badStyle.Render("unknown"), wordStyle.Render(w))
	}

	start := time.Now()
	res := h.cache.Suggest(h.dict, w, h.opts)
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), w)

	if len(res) == 0 {
		fmt.Fprintln(h.out, dimStyle.Render("  no suggestions"))
		return
	}
	for i, r := range res {
		dist := edlib.LevenshteinDistance(w, r.Word)
		fmt.Fprintf(h.out, "%3d. %-32s %s\n", i+1, wordStyle.Render(r.Word),
			dimStyle.Render(fmt.Sprintf("cost %4d  edits %d", r.Cost, dist)))
	}
}

func (h *InputHandler) handleComplete(prefix string) {
	if prefix == "" {
		return
	}
	limit := h.opts.NumSuggestions
	n := 0
	for w := range h.dict.CompleteWord(prefix) {
		if n == limit {
			break
		}
		if h.dict.IsForbiddenWord(w) {
			continue
		}
		n++
		fmt.Fprintf(h.out, "%3d. %s\n", n, wordStyle.Render(w))
	}
	if n == 0 {
		fmt.Fprintln(h.out, dimStyle.Render("  no completions"))
	}
}
