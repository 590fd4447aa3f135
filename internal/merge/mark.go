package merge

import (
	"os"
	"path/filepath"
	"strings"
)

// tocFile is the table-of-contents file name; it is navigation metadata,
// never page content, and is excluded from marking.
const tocFile = "toc.md"

// warningBlock renders the translator-warning callout inserted into pages
// that still carry primary-language content.
func warningBlock(message string) []string {
	return []string{
		"",
		"> [!WARNING]",
		"> " + message,
		"",
	}
}

// MarkUntranslated walks every .md page under dir (recursively, excluding
// the table-of-contents file) and replaces the first empty line of each
// page with a warning callout carrying message. Pages without an empty
// line are left unmarked. Returns the number of pages marked.
func MarkUntranslated(dir, message string) (int, error) {
	marked := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") || d.Name() == tocFile {
			return nil
		}
		changed, err := markPage(path, message)
		if err != nil {
			return err
		}
		if changed {
			marked++
		}
		return nil
	})
	return marked, err
}

// markPage inserts the warning callout at the first empty line of a single
// page. Reports whether the file was modified.
func markPage(path, message string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	// A trailing newline is a line terminator, not an empty final line.
	content := string(data)
	hadFinalNewline := strings.HasSuffix(content, "\n")
	content = strings.TrimSuffix(content, "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			continue
		}
		out := make([]string, 0, len(lines)+3)
		out = append(out, lines[:i]...)
		out = append(out, warningBlock(message)...)
		out = append(out, lines[i+1:]...)
		joined := strings.Join(out, "\n")
		if hadFinalNewline {
			joined += "\n"
		}
		return true, os.WriteFile(path, []byte(joined), 0o644)
	}
	return false, nil
}
