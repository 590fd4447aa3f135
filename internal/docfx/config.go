package docfx

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"git.home.luguber.info/inful/polydocs/internal/errors"
)

// PatchConfig reads the primary build configuration at srcPath, rewrites
// output destinations from the primary language path segment to langCode,
// and writes the result to dstPath.
//
// The rewrite is a structured JSON round-trip: only "dest" fields are
// touched, and the language code is matched as a whole path segment, so a
// code that happens to appear inside another word (say "en" inside
// "content") is never corrupted.
func PatchConfig(srcPath, dstPath, primaryCode, langCode string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return errors.FileSystemError(err, "failed to read build configuration", srcPath)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return errors.Wrap(err, errors.CategoryMerge, errors.SeverityFatal, "failed to parse build configuration").
			WithContext("path", srcPath)
	}

	rewriteDestFields(doc, primaryCode, langCode)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.CategoryMerge, errors.SeverityFatal, "failed to serialize build configuration")
	}
	out = append(out, '\n')

	if err := os.WriteFile(dstPath, out, 0o644); err != nil {
		return errors.FileSystemError(err, "failed to write build configuration", dstPath)
	}
	return nil
}

// rewriteDestFields walks the decoded document and rewrites every "dest"
// string value in place.
func rewriteDestFields(node any, from, to string) {
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			if s, ok := val.(string); ok && key == "dest" {
				v[key] = replacePathSegment(s, from, to)
				continue
			}
			rewriteDestFields(val, from, to)
		}
	case []any:
		for _, item := range v {
			rewriteDestFields(item, from, to)
		}
	}
}

// replacePathSegment replaces whole path segments equal to from with to.
func replacePathSegment(path, from, to string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == from {
			segments[i] = to
		}
	}
	return strings.Join(segments, "/")
}
