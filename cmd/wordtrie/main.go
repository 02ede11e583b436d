// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordtrie command: a spelling dictionary compiler,
checker and msgpack IPC server.

Dictionaries are plain word lists, one entry per line, or compiled TrieX
files. Word lists may mark compound parts with '+', optional compounds with
'*', forbidden words with '!' and exact case with '='. Comments start with
'#' and may carry directives:

	# cspell-dictionary: split generate-alternatives

# Usage

Compile word lists into a minimized trie:

	wordtrie compile -o en.trie words.txt extra.txt

Check and correct words:

	wordtrie check --dict en.trie --format trie walk talsk
	wordtrie suggest --dict en.trie --format trie -n 5 talsk

Try a dictionary interactively:

	wordtrie repl --dict words.txt

Serve lookups over stdin/stdout:

	wordtrie serve --dict en.trie --format trie

# Configuration

Defaults come from a TOML file, created on first run at
~/.config/wordtrie/config.toml:

	[suggest]
	num_suggestions = 10
	change_limit = 5
	ignore_case = true
	timeout_ms = 1000
	compound_method = "none"

	[dictionary]
	format = "words"
	generate_alternatives = true
	minimize = true

	[export]
	version = "2"
	base = 16

	[server]
	max_word_length = 64
	cache_size = 4096

Command flags override the file. Use --config to point at another file.

# IPC Protocol

The serve command speaks msgpack over stdin/stdout. See package server for
the message layout:

	{"id": "r1", "op": "suggest", "w": "talsk", "n": 3}
	{"id": "r1", "s": [{"w": "talks", "c": 75}], "n": 1, "t": 210}
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
)

const (
	Version = "0.1.0"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	app := cli.NewApp()
	app.Name = AppName
	app.Usage = "Compile, query and serve spelling dictionaries"
	app.Version = Version
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a TOML config file",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Toggle debug logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.Bool("debug") {
			log.SetLevel(log.DebugLevel)
			log.SetReportTimestamp(true)
		} else {
			log.SetLevel(log.WarnLevel)
		}
		log.SetOutput(os.Stderr)
		return nil
	}
	app.Commands = []*cli.Command{
		cmdCompile,
		cmdCheck,
		cmdSuggest,
		cmdWords,
		cmdRepl,
		cmdServe,
		cmdVersion,
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

var cmdVersion = &cli.Command{
	Name:  "version",
	Usage: "Show current version",
	Action: func(*cli.Context) error {
		showVersion()
		return nil
	},
}

func showVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordtrie ] Spelling dictionaries as compact tries")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available commands")
	banner.Print("Github Repo", "gh", gh)
}
