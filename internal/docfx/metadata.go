package docfx

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/polydocs/internal/errors"
)

// manifestName is written by the metadata operation alongside the
// generated reference files.
const manifestName = ".manifest"

// RemoveMetadata deletes previously generated API reference files and the
// metadata manifest from apiDir, as the skip-API alternative to
// regeneration. A missing manifest means nothing was generated and is not
// an error.
func RemoveMetadata(apiDir string) error {
	manifestPath := filepath.Join(apiDir, manifestName)
	data, err := os.ReadFile(manifestPath)
	if os.IsNotExist(err) {
		slog.Debug("No API metadata manifest present, nothing to remove", "dir", apiDir)
		return nil
	}
	if err != nil {
		return errors.FileSystemError(err, "failed to read metadata manifest", manifestPath)
	}

	for _, name := range manifestFiles(apiDir, data) {
		path := filepath.Join(apiDir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.FileSystemError(err, "failed to remove generated reference file", path)
		}
	}

	if err := os.Remove(manifestPath); err != nil {
		return errors.FileSystemError(err, "failed to remove metadata manifest", manifestPath)
	}
	slog.Info("Removed generated API metadata", "dir", apiDir)
	return nil
}

// manifestFiles extracts the generated file names (relative to apiDir)
// from the manifest, a JSON object mapping source identifiers to
// generated files. An unparsable manifest falls back to every .yml file
// in the directory.
func manifestFiles(apiDir string, data []byte) []string {
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err == nil {
		files := make([]string, 0, len(entries))
		for _, f := range entries {
			files = append(files, f)
		}
		return files
	}

	slog.Warn("Metadata manifest unparsable, removing all .yml reference files", "dir", apiDir)
	matches, err := filepath.Glob(filepath.Join(apiDir, "*.yml"))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	return names
}
