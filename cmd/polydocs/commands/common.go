package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/polydocs/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Language configuration file path" default:"languages.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" help:"Build documentation for one or more languages"`
	Serve  ServeCmd  `cmd:"" help:"Serve the built site locally"`
	Lint   LintCmd   `cmd:"" help:"Check translation overlays for coverage, broken links, and staleness"`
	Status StatusCmd `cmd:"" help:"Show recent build history"`
	Init   InitCmd   `cmd:"" help:"Initialize a new language configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads and validates the language configuration named by the
// root --config flag.
func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}

// siteDir resolves the generated site directory from the settings.
func siteDir(cfg *config.Config) string {
	return filepath.Join(cfg.Settings.DocsRoot, cfg.Settings.SiteDir)
}

// historyPath resolves the build history database path, or "" when
// history recording is disabled.
func historyPath(cfg *config.Config) string {
	if cfg.Settings.HistoryDB == "" {
		return ""
	}
	if filepath.IsAbs(cfg.Settings.HistoryDB) {
		return cfg.Settings.HistoryDB
	}
	return filepath.Join(cfg.Settings.DocsRoot, cfg.Settings.HistoryDB)
}
