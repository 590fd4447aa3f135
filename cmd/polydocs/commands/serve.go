package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/polydocs/internal/builder"
	"git.home.luguber.info/inful/polydocs/internal/config"
	"git.home.luguber.info/inful/polydocs/internal/docfx"
	"git.home.luguber.info/inful/polydocs/internal/metrics"
	"git.home.luguber.info/inful/polydocs/internal/selection"
	"git.home.luguber.info/inful/polydocs/internal/serve"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Port        int           `short:"p" help:"Port to serve on (overrides configured serve_port)"`
	Watch       bool          `short:"w" help:"Rebuild when source trees change"`
	Interval    time.Duration `help:"Force a periodic full rebuild at this interval (watch mode)"`
	MetricsPort int           `help:"Expose Prometheus metrics on this port (watch mode)"`
}

// Run executes the serve command.
func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	port := cfg.Settings.ServePort
	if s.Port > 0 {
		port = s.Port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tool := docfx.New(cfg.Settings.Tool)
	launcher := serveLauncher(tool, cfg, port)

	if !s.Watch {
		return launcher.Run(ctx)
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if s.MetricsPort > 0 {
		recorder = metrics.NewPrometheusRecorder(nil)
	}
	b := builder.New(cfg, tool, builder.WithRecorder(recorder))

	errChan := make(chan error, 1)
	go func() {
		errChan <- serve.Watch(ctx, serve.WatchOptions{
			Dirs:        watchDirs(cfg),
			Interval:    s.Interval,
			MetricsPort: s.MetricsPort,
			Recorder:    recorder,
			Rebuild: func(ctx context.Context) error {
				return b.Run(ctx, selection.Batch())
			},
		})
	}()

	if err := launcher.Run(ctx); err != nil {
		return err
	}
	return <-errChan
}

// serveLauncher builds the launcher over the generated site directory.
func serveLauncher(tool *docfx.Tool, cfg *config.Config, port int) *serve.Launcher {
	return serve.NewLauncher(tool, siteDir(cfg), port)
}

// watchDirs lists the source trees watch mode observes: the primary tree
// plus every enabled overlay.
func watchDirs(cfg *config.Config) []string {
	dirs := []string{filepath.Join(cfg.Settings.DocsRoot, cfg.Primary().Code)}
	for _, lang := range cfg.Secondaries() {
		dirs = append(dirs, filepath.Join(cfg.Settings.DocsRoot, lang.Code))
	}
	return dirs
}
