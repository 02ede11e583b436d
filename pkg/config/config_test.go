package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/serialize"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/bastiangx/wordtrie/pkg/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), again)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[suggest]
num_suggestions = 3
change_limit = 2
include_ties = true
ignore_case = false
timeout_ms = 250
compound_method = "separate"

[dictionary]
format = "trie"
split = true

[export]
version = "1"
base = 32

[server]
max_word_length = 20
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, suggest.Options{
		NumSuggestions: 3,
		ChangeLimit:    2,
		IncludeTies:    true,
		IgnoreCase:     false,
		Timeout:        250 * time.Millisecond,
		CompoundMethod: walker.SeparateWords,
	}, cfg.SuggestOptions())
	assert.Equal(t, dictionary.FormatTrie, cfg.DictionaryFormat())
	assert.True(t, cfg.LoaderOptions().Parse.Split)
	assert.True(t, cfg.LoaderOptions().Minimize)

	exp, err := cfg.ExportOptions()
	require.NoError(t, err)
	assert.Equal(t, serialize.ExportOptions{Version: serialize.V1, Base: 32}, exp)

	assert.Equal(t, 20, cfg.Server.MaxWordLength)
	assert.Equal(t, suggest.DefaultCacheSize, cfg.Server.CacheSize)
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeConfig(t, `
[suggest]
num_suggestions = 3
ignore_case = "sometimes"

[export]
version = 1

[server]
max_word_length = 32
cache_size = "big"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Suggest.NumSuggestions)
	assert.True(t, cfg.Suggest.IgnoreCase)
	assert.Equal(t, "1", cfg.Export.Version)
	assert.Equal(t, 32, cfg.Server.MaxWordLength)
	assert.Equal(t, suggest.DefaultCacheSize, cfg.Server.CacheSize)
	assert.Equal(t, DefaultConfig().Dictionary, cfg.Dictionary)
}

func TestLoadConfigUnparsable(t *testing.T) {
	path := writeConfig(t, "[suggest\nnum_suggestions = ")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriority(t *testing.T) {
	path := writeConfig(t, "[suggest]\nnum_suggestions = 7\n")
	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 7, cfg.Suggest.NumSuggestions)
}

func TestConversions(t *testing.T) {
	t.Run("unknown compound method", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Suggest.CompoundMethod = "spaces"
		assert.Equal(t, walker.CompoundNone, cfg.SuggestOptions().CompoundMethod)
	})
	t.Run("negative limit", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Suggest.NumSuggestions = -1
		assert.Zero(t, cfg.SuggestOptions().NumSuggestions)
	})
	t.Run("unknown format", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Dictionary.Format = "hunspell"
		assert.Equal(t, dictionary.FormatWordList, cfg.DictionaryFormat())
	})
	t.Run("alternatives", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Dictionary.GenerateAlternatives = false
		assert.False(t, cfg.LoaderOptions().Parse.StripCaseAndAccents)
	})
	t.Run("bad export version", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Export.Version = "7"
		_, err := cfg.ExportOptions()
		assert.ErrorIs(t, err, serialize.ErrUnknownFormat)
	})
	t.Run("find options", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, trie.FindOptions{MatchCase: true, CompoundMode: trie.CompoundNatural}, cfg.FindOptions(true))
		cfg.Dictionary.MinCompoundLength = 4
		assert.Equal(t, trie.FindOptions{CompoundMode: trie.CompoundLegacy, LegacyMinCompoundLength: 4}, cfg.FindOptions(false))
	})
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	n, method := 4, "join"
	require.NoError(t, cfg.Update(path, &n, nil, nil, &method))

	saved, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, saved.Suggest.NumSuggestions)
	assert.Equal(t, suggest.DefaultChangeLimit, saved.Suggest.ChangeLimit)
	assert.Equal(t, walker.JoinWords, saved.SuggestOptions().CompoundMethod)

	bad := "spaces"
	assert.Error(t, cfg.Update(path, nil, nil, nil, &bad))
}

func TestGetActiveConfigPath(t *testing.T) {
	abs, err := filepath.Abs("config.toml")
	require.NoError(t, err)
	assert.Equal(t, abs, GetActiveConfigPath("config.toml"))
}
