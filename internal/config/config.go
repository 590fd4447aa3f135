// Package config loads and validates the language list and site settings
// that drive multi-language documentation builds.
//
// The configuration file (languages.yaml by default) declares every
// documentation language with its code, display name, enabled flag,
// primary flag, and localized "not translated" message. Exactly one
// language must be marked primary; it is the fallback source for every
// translated build.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/polydocs/internal/errors"
)

// Language describes one documentation language entry.
type Language struct {
	Code          string `yaml:"code"`
	Name          string `yaml:"name,omitempty"`
	Enabled       bool   `yaml:"enabled"`
	Primary       bool   `yaml:"primary,omitempty"`
	NotTranslated string `yaml:"not_translated,omitempty"`
}

// Settings holds site-level knobs. All fields default sensibly; the
// zero value plus ApplyDefaults is a working configuration.
type Settings struct {
	// Tool is the external documentation generator binary.
	Tool string `yaml:"tool,omitempty"`
	// DocsRoot is the directory containing en/, per-language overlays,
	// and the generated _site/ output.
	DocsRoot string `yaml:"docs_root,omitempty"`
	// SiteDir is the generated site directory relative to DocsRoot.
	SiteDir string `yaml:"site_dir,omitempty"`
	// ServePort is the local server port.
	ServePort int `yaml:"serve_port,omitempty"`
	// HistoryDB is the build history database path relative to DocsRoot.
	// Empty disables history recording.
	HistoryDB string `yaml:"history_db,omitempty"`
}

// Config is the top-level configuration: site settings plus the ordered
// language list. The language order is the build order for "all".
type Config struct {
	Settings  Settings   `yaml:"settings,omitempty"`
	Languages []Language `yaml:"languages"`
}

// Primary returns the primary language. Load guarantees exactly one.
func (c *Config) Primary() Language {
	for _, l := range c.Languages {
		if l.Primary {
			return l
		}
	}
	// Unreachable after validation; keep a loud failure for misuse.
	panic("config: no primary language")
}

// Secondaries returns the enabled non-primary languages in declaration order.
func (c *Config) Secondaries() []Language {
	var out []Language
	for _, l := range c.Languages {
		if l.Enabled && !l.Primary {
			out = append(out, l)
		}
	}
	return out
}

// ByCode looks up a language by its (lowercased) code.
func (c *Config) ByCode(code string) (Language, bool) {
	for _, l := range c.Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Load reads, expands, normalizes and validates a configuration file.
func Load(configPath string) (*Config, error) {
	// Load .env if present so ${VAR} references in the YAML resolve.
	loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to unmarshal config").
			WithContext("path", configPath)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills zero-valued settings.
func ApplyDefaults(cfg *Config) {
	if cfg.Settings.Tool == "" {
		cfg.Settings.Tool = "docfx"
	}
	if cfg.Settings.DocsRoot == "" {
		cfg.Settings.DocsRoot = "."
	}
	if cfg.Settings.SiteDir == "" {
		cfg.Settings.SiteDir = "_site"
	}
	if cfg.Settings.ServePort == 0 {
		cfg.Settings.ServePort = 8080
	}
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Settings: Settings{
			Tool:      "docfx",
			DocsRoot:  ".",
			SiteDir:   "_site",
			ServePort: 8080,
			HistoryDB: "polydocs.db",
		},
		Languages: []Language{
			{Code: "en", Name: "English", Enabled: true, Primary: true},
			{Code: "fr", Name: "French", Enabled: true, NotTranslated: "Cette page n'est pas encore traduite."},
			{Code: "ja", Name: "Japanese", Enabled: false, NotTranslated: "このページはまだ翻訳されていません。"},
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
