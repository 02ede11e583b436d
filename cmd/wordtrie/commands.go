package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	wcli "github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/serialize"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/walker"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
)

var dictFlags = []cli.Flag{
	&cli.StringSliceFlag{
		Name:  "dict",
		Usage: "Dictionary file, repeat to merge several word lists",
	},
	&cli.StringFlag{
		Name:  "format",
		Usage: "Dictionary format: words or trie (default from config)",
	},
}

var cmdCompile = &cli.Command{
	Name:      "compile",
	Usage:     "Build a trie file from word lists",
	ArgsUsage: "<wordlist>...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   "-",
			Usage:   "Output file, '-' for stdout. A .gz suffix compresses",
		},
		&cli.BoolFlag{
			Name:  "v1",
			Usage: "Write the TrieXv1 format",
		},
		&cli.IntFlag{
			Name:  "base",
			Usage: "Reference radix, 10 to 36 (default from config)",
		},
		&cli.BoolFlag{
			Name:  "gzip",
			Usage: "Compress the output file",
		},
		&cli.BoolFlag{
			Name:  "no-dawg",
			Usage: "Skip subtree merging",
		},
		&cli.BoolFlag{
			Name:  "split",
			Usage: "Split lines on spaces, commas and semicolons",
		},
		&cli.StringFlag{
			Name:  "comment",
			Usage: "Header comment",
		},
	},
	Action: runCompile,
}

var cmdCheck = &cli.Command{
	Name:      "check",
	Usage:     "Report whether words are spelled correctly",
	ArgsUsage: "<word>...",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "case",
			Usage: "Match case and accents exactly",
		},
		&cli.IntFlag{
			Name:  "min-compound",
			Usage: "Accept runs of words at least this long",
		},
	}, dictFlags...),
	Action: runCheck,
}

var cmdSuggest = &cli.Command{
	Name:      "suggest",
	Usage:     "Print corrections for words",
	ArgsUsage: "<word>...",
	Flags: append([]cli.Flag{
		&cli.IntFlag{
			Name:    "num",
			Aliases: []string{"n"},
			Usage:   "Number of suggestions (default from config)",
		},
		&cli.IntFlag{
			Name:  "change-limit",
			Usage: "Maximum number of edits (default from config)",
		},
		&cli.BoolFlag{
			Name:  "ties",
			Usage: "Include results tied with the last one",
		},
		&cli.BoolFlag{
			Name:  "case",
			Usage: "Match case and accents exactly",
		},
		&cli.StringFlag{
			Name:  "compound",
			Usage: "Compound method: none, separate or join",
		},
	}, dictFlags...),
	Action: runSuggest,
}

var cmdWords = &cli.Command{
	Name:  "words",
	Usage: "List dictionary words",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "Only words starting with prefix",
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "Include folded, forbidden and compound entries",
		},
	}, dictFlags...),
	Action: runWords,
}

var cmdRepl = &cli.Command{
	Name:   "repl",
	Usage:  "Check and correct words interactively",
	Flags:  dictFlags,
	Action: runRepl,
}

var cmdServe = &cli.Command{
	Name:   "serve",
	Usage:  "Serve lookups as msgpack over stdin/stdout",
	Flags:  dictFlags,
	Action: runServe,
}

func loadConfig(c *cli.Context) *config.Config {
	cfg, path, err := config.LoadConfigWithPriority(c.String("config"))
	if err != nil {
		log.Warnf("Failed to load config: %v", err)
		return config.DefaultConfig()
	}
	log.Debugf("Using config file: %s", config.GetActiveConfigPath(path))
	return cfg
}

func resolvePaths(names []string) ([]string, error) {
	pr, err := utils.NewPathResolver(config.AppName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize path resolver: %w", err)
	}
	return pr.ResolveAll(names)
}

func loadDictionary(c *cli.Context, cfg *config.Config) (*suggest.Dictionary, error) {
	names := c.StringSlice("dict")
	if len(names) == 0 {
		return nil, errors.New("no dictionary given, use --dict")
	}
	paths, err := resolvePaths(names)
	if err != nil {
		return nil, err
	}

	format := cfg.DictionaryFormat()
	if c.IsSet("format") {
		if format, err = dictionary.ParseFileFormat(c.String("format")); err != nil {
			return nil, err
		}
	}
	t, err := dictionary.LoadFiles(paths, format, cfg.LoaderOptions())
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d words from %v", t.Size(), paths)
	return suggest.NewDictionary(t), nil
}

func runCompile(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("no word lists given")
	}
	cfg := loadConfig(c)
	paths, err := resolvePaths(c.Args().Slice())
	if err != nil {
		return err
	}

	opts := cfg.LoaderOptions()
	if c.Bool("split") {
		opts.Parse.Split = true
	}
	if c.Bool("no-dawg") {
		opts.Minimize = false
	}
	l := dictionary.NewLoader(opts)
	for _, p := range paths {
		if err := l.AddWordList(p); err != nil {
			return err
		}
	}
	t := l.Build()
	stats := l.Stats()
	log.Debug("Compiled", "files", stats.Files, "lines", stats.Lines, "words", stats.Unique,
		"duplicates", stats.Duplicates, "forbidden", stats.Forbidden, "elapsed", stats.Elapsed)

	eo, err := cfg.ExportOptions()
	if err != nil {
		return err
	}
	if c.Bool("v1") {
		eo.Version = serialize.V1
	}
	if c.IsSet("base") {
		eo.Base = c.Int("base")
	}
	if c.IsSet("comment") {
		eo.Comment = c.String("comment")
	}

	out := c.String("output")
	if out == "-" {
		return serialize.ExportTrie(os.Stdout, t, eo)
	}
	if c.Bool("gzip") && !serialize.IsCompressed(out) {
		out += ".gz"
	}
	if err := serialize.ExportFile(out, t.Root().Node, eo); err != nil {
		return err
	}
	log.Debugf("Wrote %s (%s)", out, eo.Version)
	return nil
}

func runCheck(c *cli.Context) error {
	cfg := loadConfig(c)
	if c.IsSet("min-compound") {
		cfg.Dictionary.MinCompoundLength = c.Int("min-compound")
	}
	d, err := loadDictionary(c, cfg)
	if err != nil {
		return err
	}

	opts := cfg.FindOptions(c.Bool("case"))
	bad := 0
	for _, w := range c.Args().Slice() {
		f := d.FindWord(w, opts)
		switch {
		case f.Forbidden || d.IsForbiddenWord(w):
			fmt.Printf("%s: forbidden\n", w)
			bad++
		case f.IsFound():
			fmt.Printf("%s: ok\n", w)
		default:
			fmt.Printf("%s: unknown\n", w)
			bad++
		}
	}
	if bad > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func runSuggest(c *cli.Context) error {
	cfg := loadConfig(c)
	d, err := loadDictionary(c, cfg)
	if err != nil {
		return err
	}

	opts := cfg.SuggestOptions()
	if c.IsSet("num") {
		opts.NumSuggestions = max(c.Int("num"), 0)
	}
	if c.IsSet("change-limit") {
		opts.ChangeLimit = c.Int("change-limit")
	}
	if c.IsSet("ties") {
		opts.IncludeTies = c.Bool("ties")
	}
	if c.IsSet("case") {
		opts.IgnoreCase = !c.Bool("case")
	}
	if c.IsSet("compound") {
		m, ok := walker.ParseCompoundMethod(c.String("compound"))
		if !ok {
			return fmt.Errorf("unknown compound method %q", c.String("compound"))
		}
		opts.CompoundMethod = m
	}

	for _, w := range c.Args().Slice() {
		fmt.Printf("%s:\n", w)
		for _, r := range d.Suggest(w, opts) {
			fmt.Printf("  %-32s %d\n", r.Word, r.Cost)
		}
	}
	return nil
}

func runWords(c *cli.Context) error {
	cfg := loadConfig(c)
	d, err := loadDictionary(c, cfg)
	if err != nil {
		return err
	}

	all := c.Bool("all")
	words := d.Words()
	switch {
	case c.IsSet("prefix"):
		words = d.CompleteWord(c.String("prefix"))
	case all:
		words = walker.Words(d.Root().Node, walker.Options{})
	}
	compound := string(d.Root().Options.CompoundCharacter)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for word := range words {
		if !all {
			first, _ := utf8.DecodeRuneInString(word)
			if d.Root().IsReserved(first) || strings.HasSuffix(word, compound) {
				continue
			}
		}
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}
	return nil
}

func runRepl(c *cli.Context) error {
	cfg := loadConfig(c)
	d, err := loadDictionary(c, cfg)
	if err != nil {
		return err
	}
	log.SetReportTimestamp(false)
	h, err := wcli.NewInputHandler(d, cfg.SuggestOptions(), cfg.Server.MaxWordLength)
	if err != nil {
		return err
	}
	return h.Start()
}

func runServe(c *cli.Context) error {
	cfg := loadConfig(c)
	d, err := loadDictionary(c, cfg)
	if err != nil {
		return err
	}
	srv, err := server.NewServer(d, server.Options{
		Suggest:       cfg.SuggestOptions(),
		Find:          cfg.FindOptions(false),
		MaxWordLength: cfg.Server.MaxWordLength,
		CacheSize:     cfg.Server.CacheSize,
	})
	if err != nil {
		return err
	}
	log.Debugf("Serving %d words, pid %d", d.Size(), os.Getpid())
	return srv.Start(c.Context)
}
