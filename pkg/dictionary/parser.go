package dictionary

import (
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/pkg/trie"
)

// DirectivePrefix starts a parser directive inside a comment, for example
// "# cspell-dictionary: split".
const DirectivePrefix = "cspell-dictionary:"

// ParseOptions controls how dictionary source lines become trie words.
type ParseOptions struct {
	CommentCharacter          string
	CompoundCharacter         rune
	OptionalCompoundCharacter rune
	ForbiddenPrefix           rune
	CaseInsensitivePrefix     rune
	// KeepExactPrefix marks a word whose case and accents must not be folded.
	KeepExactPrefix rune

	// StripCaseAndAccents adds folded forms under CaseInsensitivePrefix.
	StripCaseAndAccents bool
	// StripCaseAndAccentsKeepDuplicate adds folded forms even when they equal
	// the word.
	StripCaseAndAccentsKeepDuplicate bool
	// StripCaseAndAccentsOnForbidden folds forbidden words too.
	StripCaseAndAccentsOnForbidden bool

	// Split breaks lines on whitespace, commas and semicolons.
	Split bool
	// SplitKeepBoth emits the unsplit line as well.
	SplitKeepBoth bool

	KeepOptionalCompoundCharacter bool
	// MakeWordsForbidden inverts the forbidden marker of every word. It also
	// turns StripCaseAndAccents off.
	MakeWordsForbidden bool
}

// DefaultParseOptions returns the standard markers with folding on.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		CommentCharacter:          "#",
		CompoundCharacter:         trie.CompoundFix,
		OptionalCompoundCharacter: trie.OptionalCompoundFix,
		ForbiddenPrefix:           trie.ForbidPrefix,
		CaseInsensitivePrefix:     trie.CaseInsensitivePrefix,
		KeepExactPrefix:           trie.IdentityPrefix,
		StripCaseAndAccents:       true,
	}
}

func (o *ParseOptions) fill() {
	d := DefaultParseOptions()
	if o.CommentCharacter == "" {
		o.CommentCharacter = d.CommentCharacter
	}
	if o.CompoundCharacter == 0 {
		o.CompoundCharacter = d.CompoundCharacter
	}
	if o.OptionalCompoundCharacter == 0 {
		o.OptionalCompoundCharacter = d.OptionalCompoundCharacter
	}
	if o.ForbiddenPrefix == 0 {
		o.ForbiddenPrefix = d.ForbiddenPrefix
	}
	if o.CaseInsensitivePrefix == 0 {
		o.CaseInsensitivePrefix = d.CaseInsensitivePrefix
	}
	if o.KeepExactPrefix == 0 {
		o.KeepExactPrefix = d.KeepExactPrefix
	}
}

// LineParser turns dictionary source lines into trie words. Directives change
// its state for the lines that follow, so one parser should read one source
// from start to end.
type LineParser struct {
	opts        ParseOptions
	split       bool
	alternates  bool
	keepAsIs    []rune
	doubleFold  string
	doubleForbd string
}

// NewLineParser returns a parser for opts. Unset markers take their defaults.
func NewLineParser(opts ParseOptions) *LineParser {
	opts.fill()
	p := &LineParser{
		opts:        opts,
		split:       opts.Split,
		alternates:  opts.StripCaseAndAccents && !opts.MakeWordsForbidden,
		keepAsIs:    []rune{opts.CaseInsensitivePrefix, opts.KeepExactPrefix, '"'},
		doubleFold:  string([]rune{opts.CaseInsensitivePrefix, opts.CaseInsensitivePrefix}),
		doubleForbd: string([]rune{opts.ForbiddenPrefix, opts.ForbiddenPrefix}),
	}
	if !opts.StripCaseAndAccentsOnForbidden {
		p.keepAsIs = append(p.keepAsIs, opts.ForbiddenPrefix)
	}
	return p
}

// ParseLine returns the trie words produced by one source line. The line may
// hold several newline separated lines.
func (p *LineParser) ParseLine(line string) []string {
	var out []string
	for _, l := range strings.Split(line, "\n") {
		l = p.removeComment(l)
		for _, w := range p.splitWords(l) {
			w = strings.TrimSpace(w)
			if w == "" {
				continue
			}
			for _, c := range p.expandCompounds(w) {
				for _, n := range p.normalize(c) {
					out = append(out, p.finish(n))
				}
			}
		}
	}
	return out
}

// Parse maps every line of lines through ParseLine.
func (p *LineParser) Parse(lines iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range lines {
			for _, w := range p.ParseLine(line) {
				if !yield(w) {
					return
				}
			}
		}
	}
}

// ParseDictionaryLines parses lines with a fresh parser.
func ParseDictionaryLines(lines iter.Seq[string], opts ParseOptions) iter.Seq[string] {
	return NewLineParser(opts).Parse(lines)
}

func (p *LineParser) removeComment(line string) string {
	idx := strings.Index(line, p.opts.CommentCharacter)
	if idx < 0 {
		return line
	}
	if d := strings.Index(line[idx:], DirectivePrefix); d >= 0 {
		p.applyDirectives(line[idx+d:])
	}
	return strings.TrimSpace(line[:idx])
}

func (p *LineParser) applyDirectives(s string) {
	for _, flag := range strings.FieldsFunc(s, isSplitSeparator) {
		switch flag {
		case "split":
			p.split = true
		case "no-split":
			p.split = false
		case "generate-alternatives":
			p.alternates = true
		case "no-generate-alternatives":
			p.alternates = false
		}
	}
}

func isSplitSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ',' || r == ';'
}

func (p *LineParser) splitWords(line string) []string {
	if !p.split {
		return []string{line}
	}
	words := splitLine(line)
	if p.opts.SplitKeepBoth {
		words = append(words, line)
	}
	return words
}

// splitLine breaks line on separators outside double quotes. A backslash
// makes the next separator literal; every other backslash is dropped.
func splitLine(line string) []string {
	var (
		words   []string
		sb      strings.Builder
		quoted  bool
		escaped bool
	)
	flush := func() {
		if sb.Len() > 0 {
			words = append(words, sb.String())
			sb.Reset()
		}
	}
	for _, r := range line {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			if !quoted {
				flush()
			}
			sb.WriteRune(r)
			if quoted {
				flush()
			}
			quoted = !quoted
		case quoted:
			sb.WriteRune(r)
		case isSplitSeparator(r):
			flush()
		default:
			sb.WriteRune(r)
		}
	}
	flush()
	return words
}

func (p *LineParser) expandCompounds(w string) []string {
	if p.opts.KeepOptionalCompoundCharacter {
		return []string{w}
	}
	opt := string(p.opts.OptionalCompoundCharacter)
	comp := string(p.opts.CompoundCharacter)
	heads := []string{w}
	if t, ok := strings.CutPrefix(w, opt); ok {
		heads = []string{t, comp + t}
	}
	var out []string
	for _, h := range heads {
		if t, ok := strings.CutSuffix(h, opt); ok {
			out = append(out, t, t+comp)
			continue
		}
		out = append(out, h)
	}
	return out
}

// normalize returns the word in NFC plus its folded forms.
func (p *LineParser) normalize(w string) []string {
	nw := NormalizeWord(p.stripKeepCase(w))
	forms := []string{nw}
	first, _ := utf8.DecodeRuneInString(w)
	if !p.alternates || slices.Contains(p.keepAsIs, first) {
		return forms
	}
	prefix := string(p.opts.CaseInsensitivePrefix)
	for _, f := range CaseInsensitiveForms(nw) {
		if f == nw && !p.opts.StripCaseAndAccentsKeepDuplicate {
			continue
		}
		if f = prefix + f; !slices.Contains(forms, f) {
			forms = append(forms, f)
		}
	}
	return forms
}

// stripKeepCase removes paired quotes and a leading keep-exact marker.
func (p *LineParser) stripKeepCase(w string) string {
	if strings.Count(w, `"`) >= 2 {
		var sb strings.Builder
		rest := w
		for {
			i := strings.IndexByte(rest, '"')
			if i < 0 {
				break
			}
			j := strings.IndexByte(rest[i+1:], '"')
			if j < 0 {
				break
			}
			sb.WriteString(rest[:i])
			sb.WriteString(rest[i+1 : i+1+j])
			rest = rest[i+1+j+1:]
		}
		sb.WriteString(rest)
		w = sb.String()
	}
	if r, size := utf8.DecodeRuneInString(w); r == p.opts.KeepExactPrefix {
		return w[size:]
	}
	return w
}

func (p *LineParser) finish(w string) string {
	if p.opts.MakeWordsForbidden {
		w = strings.ReplaceAll(string(p.opts.ForbiddenPrefix)+w, p.doubleForbd, "")
	}
	if strings.HasPrefix(w, p.doubleFold) {
		_, size := utf8.DecodeRuneInString(w)
		w = w[size:]
	}
	return w
}
