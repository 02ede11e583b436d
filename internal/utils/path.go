package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"
)

// PathResolver finds config and dictionary files relative to the binary, the
// working directory and the user config directory.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a resolver for app, which names the config
// directory.
func NewPathResolver(app string) (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(execDir); err == nil {
		execDir = resolved
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: execDir,
		homeDir:       homeDir,
		configDir:     configDirFor(homeDir, app),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", execDir, pr.configDir)
	return pr, nil
}

// configDirFor returns the platform config directory for app.
func configDirFor(homeDir, app string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, app)
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, app)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", app)
	}
	return filepath.Join(homeDir, ".config", app)
}

// ConfigDir returns the config directory
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// DictionaryDir is where named dictionaries are looked up last.
func (pr *PathResolver) DictionaryDir() string {
	return filepath.Join(pr.configDir, "dicts")
}

// Candidates lists where name may live, in lookup order. Absolute paths are
// returned unchanged.
func (pr *PathResolver) Candidates(name string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}
	var out []string
	if cwd, err := os.Getwd(); err == nil {
		out = append(out, filepath.Join(cwd, name))
	}
	out = append(out,
		filepath.Join(pr.executableDir, name),
		filepath.Join(pr.DictionaryDir(), name),
		filepath.Join(pr.configDir, name),
	)
	return slices.Compact(out)
}

// Resolve returns the first existing candidate for name, or os.ErrNotExist.
func (pr *PathResolver) Resolve(name string) (string, error) {
	for _, p := range pr.Candidates(name) {
		if FileExists(p) {
			log.Debugf("Resolved %s to %s", name, p)
			return p, nil
		}
		log.Debugf("Candidate not found: %s", p)
	}
	return "", &os.PathError{Op: "resolve", Path: name, Err: os.ErrNotExist}
}

// ResolveAll resolves every name, stopping at the first failure.
func (pr *PathResolver) ResolveAll(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		p, err := pr.Resolve(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// RuntimeInfo returns debug information about the current runtime environment
func (pr *PathResolver) RuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	return map[string]string{
		"executable_dir": pr.executableDir,
		"current_dir":    cwd,
		"home_dir":       pr.homeDir,
		"config_dir":     pr.configDir,
		"dict_dir":       pr.DictionaryDir(),
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
	}
}
