/*
Package config manages TOML config for wordtrie commands and the IPC server.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/serialize"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/bastiangx/wordtrie/pkg/walker"
	"github.com/charmbracelet/log"
)

// AppName names the config directory.
const AppName = "wordtrie"

// Config holds the entire config structure
type Config struct {
	Suggest    SuggestConfig    `toml:"suggest"`
	Dictionary DictionaryConfig `toml:"dictionary"`
	Export     ExportConfig     `toml:"export"`
	Server     ServerConfig     `toml:"server"`
}

// SuggestConfig holds suggestion defaults.
type SuggestConfig struct {
	NumSuggestions int    `toml:"num_suggestions"`
	ChangeLimit    int    `toml:"change_limit"`
	IncludeTies    bool   `toml:"include_ties"`
	IgnoreCase     bool   `toml:"ignore_case"`
	TimeoutMs      int    `toml:"timeout_ms"`
	CompoundMethod string `toml:"compound_method"`
}

// DictionaryConfig holds dictionary loading options.
type DictionaryConfig struct {
	Format               string `toml:"format"`
	Split                bool   `toml:"split"`
	GenerateAlternatives bool   `toml:"generate_alternatives"`
	Minimize             bool   `toml:"minimize"`
	MinCompoundLength    int    `toml:"min_compound_length"`
}

// ExportConfig holds trie file output options.
type ExportConfig struct {
	Version string `toml:"version"`
	Base    int    `toml:"base"`
	Comment string `toml:"comment"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxWordLength int `toml:"max_word_length"`
	CacheSize     int `toml:"cache_size"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", AppName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", AppName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordtrie/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Suggest: SuggestConfig{
			NumSuggestions: suggest.DefaultNumSuggestions,
			ChangeLimit:    suggest.DefaultChangeLimit,
			IgnoreCase:     true,
			TimeoutMs:      int(suggest.DefaultTimeout / time.Millisecond),
			CompoundMethod: walker.CompoundNone.String(),
		},
		Dictionary: DictionaryConfig{
			Format:               dictionary.FormatWordList.String(),
			GenerateAlternatives: true,
			Minimize:             true,
		},
		Export: ExportConfig{
			Version: "2",
			Base:    serialize.DefaultBase,
		},
		Server: ServerConfig{
			MaxWordLength: 64,
			CacheSize:     suggest.DefaultCacheSize,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Sections that fail to decode fall back
// to their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every key that has the right type.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "suggest"); ok {
		extractSuggestConfig(section, &config.Suggest)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dictionary"); ok {
		extractDictionaryConfig(section, &config.Dictionary)
	}
	if section, ok := utils.ExtractSection(tempConfig, "export"); ok {
		extractExportConfig(section, &config.Export)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	return config, nil
}

func extractSuggestConfig(data map[string]any, s *SuggestConfig) {
	if val, ok := utils.ExtractInt64(data, "num_suggestions"); ok {
		s.NumSuggestions = val
	}
	if val, ok := utils.ExtractInt64(data, "change_limit"); ok {
		s.ChangeLimit = val
	}
	if val, ok := utils.ExtractBool(data, "include_ties"); ok {
		s.IncludeTies = val
	}
	if val, ok := utils.ExtractBool(data, "ignore_case"); ok {
		s.IgnoreCase = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		s.TimeoutMs = val
	}
	if val, ok := utils.ExtractString(data, "compound_method"); ok {
		s.CompoundMethod = val
	}
}

func extractDictionaryConfig(data map[string]any, d *DictionaryConfig) {
	if val, ok := utils.ExtractString(data, "format"); ok {
		d.Format = val
	}
	if val, ok := utils.ExtractBool(data, "split"); ok {
		d.Split = val
	}
	if val, ok := utils.ExtractBool(data, "generate_alternatives"); ok {
		d.GenerateAlternatives = val
	}
	if val, ok := utils.ExtractBool(data, "minimize"); ok {
		d.Minimize = val
	}
	if val, ok := utils.ExtractInt64(data, "min_compound_length"); ok {
		d.MinCompoundLength = val
	}
}

func extractExportConfig(data map[string]any, e *ExportConfig) {
	if val, ok := utils.ExtractString(data, "version"); ok {
		e.Version = val
	} else if n, ok := utils.ExtractInt64(data, "version"); ok {
		e.Version = fmt.Sprint(n)
	}
	if val, ok := utils.ExtractInt64(data, "base"); ok {
		e.Base = val
	}
	if val, ok := utils.ExtractString(data, "comment"); ok {
		e.Comment = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_word_length"); ok {
		server.MaxWordLength = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		server.CacheSize = val
	}
}

// SuggestOptions converts the [suggest] section. An unknown compound method
// is logged and treated as none.
func (c *Config) SuggestOptions() suggest.Options {
	s := c.Suggest
	method, ok := walker.ParseCompoundMethod(s.CompoundMethod)
	if !ok {
		log.Warnf("Unknown compound_method %q, using none", s.CompoundMethod)
	}
	return suggest.Options{
		NumSuggestions: max(s.NumSuggestions, 0),
		ChangeLimit:    s.ChangeLimit,
		IncludeTies:    s.IncludeTies,
		IgnoreCase:     s.IgnoreCase,
		Timeout:        time.Duration(s.TimeoutMs) * time.Millisecond,
		CompoundMethod: method,
	}
}

// LoaderOptions converts the [dictionary] section.
func (c *Config) LoaderOptions() dictionary.LoaderOptions {
	p := dictionary.DefaultParseOptions()
	p.Split = c.Dictionary.Split
	p.StripCaseAndAccents = c.Dictionary.GenerateAlternatives
	return dictionary.LoaderOptions{Parse: p, Minimize: c.Dictionary.Minimize}
}

// FindOptions returns lookup options for word checks. A positive
// min_compound_length switches to legacy compounding.
func (c *Config) FindOptions(matchCase bool) trie.FindOptions {
	opts := trie.FindOptions{MatchCase: matchCase, CompoundMode: trie.CompoundNatural}
	if n := c.Dictionary.MinCompoundLength; n > 0 {
		opts.CompoundMode = trie.CompoundLegacy
		opts.LegacyMinCompoundLength = n
	}
	return opts
}

// DictionaryFormat returns the configured source format, word lists when the
// value is not recognized.
func (c *Config) DictionaryFormat() dictionary.FileFormat {
	f, err := dictionary.ParseFileFormat(c.Dictionary.Format)
	if err != nil {
		log.Warnf("%v, using %s", err, dictionary.FormatWordList)
		return dictionary.FormatWordList
	}
	return f
}

// ExportOptions converts the [export] section.
func (c *Config) ExportOptions() (serialize.ExportOptions, error) {
	v, err := serialize.ParseVersion(c.Export.Version)
	if err != nil {
		return serialize.ExportOptions{}, err
	}
	return serialize.ExportOptions{Version: v, Base: c.Export.Base, Comment: c.Export.Comment}, nil
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the suggestion defaults and saves to file. Nil values are
// left unchanged.
func (c *Config) Update(configPath string, numSuggestions, changeLimit *int, ignoreCase *bool, compoundMethod *string) error {
	s := &c.Suggest
	if numSuggestions != nil {
		s.NumSuggestions = *numSuggestions
	}
	if changeLimit != nil {
		s.ChangeLimit = *changeLimit
	}
	if ignoreCase != nil {
		s.IgnoreCase = *ignoreCase
	}
	if compoundMethod != nil {
		if _, ok := walker.ParseCompoundMethod(*compoundMethod); !ok {
			return fmt.Errorf("unknown compound method %q", *compoundMethod)
		}
		s.CompoundMethod = *compoundMethod
	}
	return SaveConfig(c, configPath)
}
