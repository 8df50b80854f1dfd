// Package config loads the opener's TOML configuration (spec §6): a set
// of per-extension app rules plus one special-rule shell command, falling
// back to an embedded default whenever the user's file is absent or
// fails to parse (spec §7).
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/JustBobinAround/jef/internal/jeferr"
)

// AppRule maps a set of file extensions to an application, and whether
// that application needs the terminal (spec §6 config schema).
type AppRule struct {
	App       string   `toml:"app"`
	TUI       bool     `toml:"tui"`
	FileTypes []string `toml:"file_types"`
}

// SpecialRule is the shell command bound to the `$` key.
type SpecialRule struct {
	App string `toml:"app"`
}

// Config is the opener's full configuration.
type Config struct {
	AppRule     []AppRule   `toml:"app_rule"`
	SpecialRule SpecialRule `toml:"special_rule"`
}

// defaultConfigTOML mirrors opener.rs's default_config: a single rule
// opening ".txt" files in vim, under the TUI.
const defaultConfigTOML = `
[[app_rule]]
app = "vim"
tui = true
file_types = ["txt"]

[special_rule]
app = "sh"
`

// AppForExtension returns the first rule whose file_types contains
// extension (matching is exact-case per spec §6), or false if none do.
func (c *Config) AppForExtension(extension string) (AppRule, bool) {
	for _, rule := range c.AppRule {
		for _, ext := range rule.FileTypes {
			if ext == extension {
				return rule, true
			}
		}
	}
	return AppRule{}, false
}

// Default parses the embedded default configuration. It panics only if
// the embedded TOML itself is malformed, which would be a programming
// error caught long before release, not a runtime condition.
func Default() Config {
	var c Config
	if err := toml.Unmarshal([]byte(defaultConfigTOML), &c); err != nil {
		panic("config: embedded default config is invalid: " + err.Error())
	}
	return c
}

// path returns $HOME/.config/jef/jef.toml, or "" if HOME is unset.
func path() string {
	home, ok := os.LookupEnv("HOME")
	if !ok || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "jef", "jef.toml")
}

// Load reads $HOME/.config/jef/jef.toml and falls back to Default() if
// HOME is unset, the file doesn't exist, or it fails to parse (spec §7:
// "Config parse failure: fall back to the embedded default config"). An
// unset HOME, a read error other than the file not existing, and a parse
// failure are each wrapped in a *jeferr.JefError and logged via log, so
// the cause of a surprising default config is visible in the worker log
// (internal/corelog); a missing file falls back without logging.
func Load(log *zap.SugaredLogger) Config {
	p := path()
	if p == "" {
		logFallback(log, jeferr.New("config: HOME is unset, using embedded default"))
		return Default()
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if !os.IsNotExist(err) {
			logFallback(log, jeferr.Wrap("config: failed to read "+p, err))
		}
		return Default()
	}
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		logFallback(log, jeferr.Wrap("config: failed to parse "+p, err))
		return Default()
	}
	return c
}

// logFallback records a config fallback's cause, if a logger was given.
func logFallback(log *zap.SugaredLogger, err error) {
	if log != nil {
		log.Warnw("falling back to default config", "err", err)
	}
}
