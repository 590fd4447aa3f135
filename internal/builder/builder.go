// Package builder orchestrates language builds: API metadata handling,
// merge, external tool invocation, link post-processing, scratch cleanup,
// and history recording. Builds run strictly sequentially; the first
// external tool failure aborts the remainder of the run (fail-fast), but
// the failing language's working tree is always removed first.
package builder

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/polydocs/internal/config"
	"git.home.luguber.info/inful/polydocs/internal/docfx"
	"git.home.luguber.info/inful/polydocs/internal/history"
	"git.home.luguber.info/inful/polydocs/internal/merge"
	"git.home.luguber.info/inful/polydocs/internal/metrics"
	"git.home.luguber.info/inful/polydocs/internal/postprocess"
	"git.home.luguber.info/inful/polydocs/internal/selection"
)

// Invoker abstracts the external tool operations the builder drives.
// *docfx.Tool satisfies it; tests substitute fakes.
type Invoker interface {
	Metadata(ctx context.Context, configPath string) error
	Build(ctx context.Context, configPath string) error
}

// Builder runs the builds a selection calls for.
type Builder struct {
	cfg      *config.Config
	tool     Invoker
	engine   *merge.Engine
	store    *history.Store // nil disables history recording
	recorder metrics.Recorder
}

// Option configures optional Builder collaborators.
type Option func(*Builder)

// WithHistory enables build history recording.
func WithHistory(store *history.Store) Option {
	return func(b *Builder) { b.store = store }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) { b.recorder = r }
}

// New creates a Builder for the configured languages.
func New(cfg *config.Config, tool Invoker, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		tool:     tool,
		engine:   merge.NewEngine(cfg.Settings.DocsRoot, cfg.Primary()),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run executes the builds for a selection. Serve and cancel selections
// are not build work and return immediately.
func (b *Builder) Run(ctx context.Context, sel selection.Selection) error {
	if !sel.IsBuild() {
		return nil
	}

	if err := b.handleAPIMetadata(ctx, sel.IncludeAPI); err != nil {
		return err
	}

	switch sel.Kind {
	case selection.KindPrimary:
		return b.buildPrimary(ctx)
	case selection.KindLanguage:
		lang, ok := b.cfg.ByCode(sel.Language)
		if !ok {
			return errMissingLanguage(sel.Language)
		}
		return b.buildSecondary(ctx, lang)
	case selection.KindAll:
		if err := b.buildPrimary(ctx); err != nil {
			return err
		}
		for _, lang := range b.cfg.Secondaries() {
			if err := b.buildSecondary(ctx, lang); err != nil {
				return err
			}
		}
	}
	return nil
}

// handleAPIMetadata regenerates the API reference metadata or, when
// skipped, removes any previously generated reference files so stale API
// pages never leak into the build.
func (b *Builder) handleAPIMetadata(ctx context.Context, include bool) error {
	if include {
		slog.Info("Generating API reference metadata")
		return b.tool.Metadata(ctx, b.primaryConfigPath())
	}
	return docfx.RemoveMetadata(filepath.Join(b.engine.PrimaryDir(), "api"))
}

func (b *Builder) primaryConfigPath() string {
	return filepath.Join(b.engine.PrimaryDir(), "docfx.json")
}

// buildPrimary builds the primary-language site straight from its source
// tree; no merge or post-processing is needed.
func (b *Builder) buildPrimary(ctx context.Context) error {
	primary := b.cfg.Primary()
	slog.Info("Building documentation", "language", primary.Code)

	rec := history.NewRecord(primary.Code)
	err := b.tool.Build(ctx, b.primaryConfigPath())
	b.finish(ctx, rec, err)
	return err
}

// buildSecondary runs the full pipeline for one secondary language:
// merge, build, post-process. The working tree is removed whatever the
// outcome.
func (b *Builder) buildSecondary(ctx context.Context, lang config.Language) error {
	slog.Info("Building documentation", "language", lang.Code)
	rec := history.NewRecord(lang.Code)

	wt, err := b.engine.Merge(lang)
	if err != nil {
		b.finish(ctx, rec, err)
		return err
	}
	defer func() {
		if err := wt.Remove(); err != nil {
			slog.Warn("Failed to remove working tree", "language", lang.Code, "error", err)
		}
	}()

	if err := b.tool.Build(ctx, wt.ConfigPath()); err != nil {
		b.finish(ctx, rec, err)
		return err
	}

	siteDir := filepath.Join(b.cfg.Settings.DocsRoot, b.cfg.Settings.SiteDir, lang.Code)
	rewriter := postprocess.NewRewriter(siteDir, b.engine.OverlayDir(lang.Code), lang.Code, b.cfg.Primary().Code)
	if _, err := rewriter.Run(); err != nil {
		b.finish(ctx, rec, err)
		return err
	}

	b.finish(ctx, rec, nil)
	return nil
}

// finish closes out a build record: metrics plus best-effort history.
func (b *Builder) finish(ctx context.Context, rec history.Record, buildErr error) {
	rec.Duration = time.Since(rec.Started)

	outcome := metrics.OutcomeSuccess
	rec.Outcome = history.OutcomeSuccess
	if buildErr != nil {
		outcome = metrics.OutcomeFailed
		rec.Outcome = history.OutcomeFailed
		rec.ExitCode = exitCode(buildErr)
	}

	b.recorder.ObserveBuildDuration(rec.Language, rec.Duration)
	b.recorder.IncBuildOutcome(rec.Language, outcome)

	if b.store == nil {
		return
	}
	if err := b.store.Append(ctx, rec); err != nil {
		slog.Warn("Failed to record build history", "language", rec.Language, "error", err)
	}
}
