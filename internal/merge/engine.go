// Package merge produces the working tree for a secondary-language build:
// a full copy of the primary-language sources, overlaid with whatever
// translated files exist, with untranslated pages flagged and the build
// configuration retargeted at the language's output directory.
package merge

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/polydocs/internal/config"
	"git.home.luguber.info/inful/polydocs/internal/docfx"
	"git.home.luguber.info/inful/polydocs/internal/errors"
)

// buildConfigFile is the generator configuration inside each source tree.
const buildConfigFile = "docfx.json"

// Engine merges primary-language sources with per-language translation
// overlays.
type Engine struct {
	docsRoot string
	primary  config.Language
}

// NewEngine creates a merge engine rooted at docsRoot; primary names the
// fallback source tree.
func NewEngine(docsRoot string, primary config.Language) *Engine {
	return &Engine{docsRoot: docsRoot, primary: primary}
}

// PrimaryDir returns the primary-language source tree.
func (e *Engine) PrimaryDir() string {
	return filepath.Join(e.docsRoot, e.primary.Code)
}

// OverlayDir returns the translated-override source tree for a language.
func (e *Engine) OverlayDir(code string) string {
	return filepath.Join(e.docsRoot, code)
}

// Merge builds the working tree for one secondary language. The caller
// owns the returned tree and must Remove it after the build attempt,
// whatever the outcome.
//
// Marking runs before the translation overlay on purpose: translated
// pages then replace their marked primary copies wholesale, so only pages
// still carrying primary content end up flagged.
func (e *Engine) Merge(lang config.Language) (*WorkingTree, error) {
	slog.Info("Merging translation overlay", "language", lang.Code)

	wt, err := newWorkingTree(e.docsRoot, lang.Code)
	if err != nil {
		return nil, errors.MergeFailed(err, lang.Code, "scratch")
	}

	if err := CopyDir(e.PrimaryDir(), wt.Path); err != nil {
		_ = wt.Remove()
		return nil, errors.MergeFailed(err, lang.Code, "copy-primary")
	}

	marked, err := MarkUntranslated(wt.ManualDir(), lang.NotTranslated)
	if err != nil {
		_ = wt.Remove()
		return nil, errors.MergeFailed(err, lang.Code, "mark")
	}
	slog.Debug("Flagged untranslated pages", "language", lang.Code, "pages", marked)

	e.overlayIndex(wt, lang)
	e.overlayManual(wt, lang)

	srcConfig := filepath.Join(e.PrimaryDir(), buildConfigFile)
	if err := docfx.PatchConfig(srcConfig, wt.ConfigPath(), e.primary.Code, lang.Code); err != nil {
		_ = wt.Remove()
		return nil, err
	}

	slog.Info("Working tree ready", "language", lang.Code, "path", wt.Path)
	return wt, nil
}

// overlayIndex overwrites the scratch root index page with the translated
// one when present. Absence is a warning, not an error: the primary copy
// stays in place as fallback.
func (e *Engine) overlayIndex(wt *WorkingTree, lang config.Language) {
	src := filepath.Join(e.OverlayDir(lang.Code), "index.md")
	if _, err := os.Stat(src); os.IsNotExist(err) {
		slog.Warn("No translated index page, keeping primary version",
			"language", lang.Code, "expected", src)
		return
	}
	if err := copyFile(src, filepath.Join(wt.Path, "index.md")); err != nil {
		slog.Warn("Failed to overlay translated index page, keeping primary version",
			"language", lang.Code, "error", err)
	}
}

// overlayManual recursively overwrites the scratch manual subsection with
// the translated one when present.
func (e *Engine) overlayManual(wt *WorkingTree, lang config.Language) {
	src := filepath.Join(e.OverlayDir(lang.Code), "manual")
	if _, err := os.Stat(src); os.IsNotExist(err) {
		slog.Warn("No translated manual directory, keeping primary version",
			"language", lang.Code, "expected", src)
		return
	}
	if err := CopyDir(src, wt.ManualDir()); err != nil {
		slog.Warn("Failed to overlay translated manual pages",
			"language", lang.Code, "error", err)
	}
}
