// Package metrics defines observability hooks for language builds. The
// default recorder is a no-op; watch mode wires the Prometheus recorder
// behind an HTTP endpoint.
package metrics

import "time"

// OutcomeLabel enumerates build outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for language builds and watch-mode
// rebuilds. All methods must be safe on the NoopRecorder so injection
// stays optional.
type Recorder interface {
	ObserveBuildDuration(language string, d time.Duration)
	IncBuildOutcome(language string, outcome OutcomeLabel)
	IncRebuild(trigger string) // trigger: fsnotify|schedule
}

// NoopRecorder is a Recorder that does nothing (default when metrics not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(string, time.Duration) {}
func (NoopRecorder) IncBuildOutcome(string, OutcomeLabel)       {}
func (NoopRecorder) IncRebuild(string)                          {}
