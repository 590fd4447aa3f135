package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/polydocs/internal/builder"
	"git.home.luguber.info/inful/polydocs/internal/docfx"
	"git.home.luguber.info/inful/polydocs/internal/history"
	"git.home.luguber.info/inful/polydocs/internal/selection"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	All     bool   `short:"a" help:"Build every enabled language (primary first) without prompting"`
	Select  string `arg:"" optional:"" help:"Non-interactive selection: primary, all, serve, or a language code"`
	SkipAPI bool   `help:"Skip regenerating the API reference metadata"`
}

// Run executes the build command.
func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var sel selection.Selection
	switch {
	case b.All:
		sel = selection.Batch()
	case b.Select != "":
		sel, err = selection.Resolve(b.Select, cfg)
	default:
		sel, err = selection.Prompt(cfg)
	}
	if err != nil {
		return err
	}
	if b.SkipAPI {
		sel.IncludeAPI = false
	}

	switch sel.Kind {
	case selection.KindCancel:
		slog.Info("Build canceled")
		return nil
	case selection.KindServe:
		tool := docfx.New(cfg.Settings.Tool)
		launcher := serveLauncher(tool, cfg, cfg.Settings.ServePort)
		return launcher.Run(ctx)
	}

	tool := docfx.New(cfg.Settings.Tool)
	opts := []builder.Option{}
	if path := historyPath(cfg); path != "" {
		store, err := history.Open(path)
		if err != nil {
			slog.Warn("Build history disabled", "path", path, "error", err)
		} else {
			defer func() { _ = store.Close() }()
			opts = append(opts, builder.WithHistory(store))
		}
	}

	return builder.New(cfg, tool, opts...).Run(ctx, sel)
}
