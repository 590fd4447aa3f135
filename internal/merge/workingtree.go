package merge

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// WorkingTree is the ephemeral merged source directory for one secondary
// language build. It is recreated from scratch on every merge and must be
// removed after the build attempt regardless of outcome, so stale scratch
// directories never survive across runs.
type WorkingTree struct {
	Language string
	Path     string
}

// ScratchPath returns the deterministic scratch directory for a language
// code, e.g. fr_tmp under the docs root.
func ScratchPath(docsRoot, code string) string {
	return filepath.Join(docsRoot, code+"_tmp")
}

// newWorkingTree recreates a clean scratch directory for the language.
func newWorkingTree(docsRoot, code string) (*WorkingTree, error) {
	path := ScratchPath(docsRoot, code)
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("failed to remove stale scratch directory: %w", err)
	}
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	slog.Debug("Created scratch directory", "language", code, "path", path)
	return &WorkingTree{Language: code, Path: path}, nil
}

// ConfigPath returns the build-configuration file inside the tree.
func (wt *WorkingTree) ConfigPath() string {
	return filepath.Join(wt.Path, "docfx.json")
}

// ManualDir returns the manual subsection of the tree.
func (wt *WorkingTree) ManualDir() string {
	return filepath.Join(wt.Path, "manual")
}

// Remove deletes the scratch directory. Safe to call more than once.
func (wt *WorkingTree) Remove() error {
	if wt.Path == "" {
		return nil
	}
	if err := os.RemoveAll(wt.Path); err != nil {
		return fmt.Errorf("failed to remove scratch directory: %w", err)
	}
	slog.Debug("Removed scratch directory", "language", wt.Language, "path", wt.Path)
	wt.Path = ""
	return nil
}
