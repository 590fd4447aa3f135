package serve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/polydocs/internal/metrics"
)

// WatchOptions configures watch mode.
type WatchOptions struct {
	// Dirs are the source trees to watch (primary plus enabled overlays).
	Dirs []string
	// Debounce coalesces bursts of filesystem events into one rebuild.
	// Defaults to 500ms.
	Debounce time.Duration
	// Interval, when >0, forces a periodic full rebuild regardless of
	// filesystem events.
	Interval time.Duration
	// MetricsPort, when >0, exposes Prometheus metrics on /metrics.
	MetricsPort int

	Recorder metrics.Recorder
	// Rebuild runs the full rebuild. Failures are logged, not fatal: the
	// watcher keeps serving the previous output.
	Rebuild func(ctx context.Context) error
}

// Watch triggers rebuilds on source changes until ctx is canceled. It
// returns when the context ends or the watcher fails irrecoverably.
func Watch(ctx context.Context, opts WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range opts.Dirs {
		if err := addRecursive(watcher, dir); err != nil {
			slog.Warn("Failed to watch directory", "dir", dir, "error", err)
		}
	}

	stopSchedule, err := startSchedule(ctx, opts)
	if err != nil {
		return err
	}
	defer stopSchedule()

	stopMetrics := startMetricsServer(opts)
	defer stopMetrics()

	rebuild := func(trigger string) {
		opts.Recorder.IncRebuild(trigger)
		slog.Info("Rebuilding documentation", "trigger", trigger)
		if err := opts.Rebuild(ctx); err != nil {
			slog.Error("Rebuild failed, keeping previous output", "error", err)
		}
	}

	var debounce *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			if !relevantEvent(event) {
				continue
			}
			// New directories must be picked up for future events.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			if debounce == nil {
				debounce = time.AfterFunc(opts.Debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				debounce.Reset(opts.Debounce)
			}
		case <-fire:
			debounce = nil
			rebuild("fsnotify")
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}

// relevantEvent filters out event noise that should not trigger rebuilds.
func relevantEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	// Editor swap files and hidden files.
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return false
	}
	// Scratch trees churn during rebuilds we triggered ourselves.
	for _, seg := range strings.Split(filepath.ToSlash(filepath.Dir(event.Name)), "/") {
		if strings.HasSuffix(seg, "_tmp") {
			return false
		}
	}
	return true
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), "_tmp") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// startSchedule starts the optional periodic rebuild job.
func startSchedule(ctx context.Context, opts WatchOptions) (func(), error) {
	if opts.Interval <= 0 {
		return func() {}, nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(opts.Interval),
		gocron.NewTask(func() {
			opts.Recorder.IncRebuild("schedule")
			slog.Info("Rebuilding documentation", "trigger", "schedule")
			if err := opts.Rebuild(ctx); err != nil {
				slog.Error("Scheduled rebuild failed, keeping previous output", "error", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	slog.Info("Periodic rebuild enabled", "interval", opts.Interval)
	return func() { _ = scheduler.Shutdown() }, nil
}

// startMetricsServer exposes the Prometheus recorder when configured.
func startMetricsServer(opts WatchOptions) func() {
	pr, ok := opts.Recorder.(*metrics.PrometheusRecorder)
	if !ok || opts.MetricsPort <= 0 {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", pr.Handler())
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(opts.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Warn("Metrics server stopped", "error", err)
		}
	}()
	slog.Info("Metrics endpoint enabled", "addr", server.Addr)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
}
