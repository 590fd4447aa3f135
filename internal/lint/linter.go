// Package lint checks translation health across languages: coverage
// (primary pages without a translated counterpart), broken relative links
// in translated pages, and staleness (translations older than their
// primary counterpart's last change).
package lint

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/polydocs/internal/config"
)

const tocFile = "toc.md"

// Linter runs translation checks over a docs root.
type Linter struct {
	docsRoot string
	cfg      *config.Config
}

// NewLinter creates a Linter for the configured languages.
func NewLinter(docsRoot string, cfg *config.Config) *Linter {
	return &Linter{docsRoot: docsRoot, cfg: cfg}
}

// Run executes every rule for every enabled secondary language.
func (l *Linter) Run() (*Result, error) {
	result := &Result{}

	primaryPages, err := l.primaryManualPages()
	if err != nil {
		return nil, err
	}
	result.PagesChecked = len(primaryPages)

	staleness := newStalenessChecker(l.docsRoot)

	for _, lang := range l.cfg.Secondaries() {
		result.LanguagesChecked++
		l.checkCoverage(result, lang, primaryPages)
		if err := l.checkLinks(result, lang); err != nil {
			return nil, err
		}
		staleness.check(result, l.cfg.Primary().Code, lang, primaryPages)
	}
	return result, nil
}

// primaryManualPages enumerates the primary manual pages (plus the root
// index) as slash-separated paths relative to the primary tree.
func (l *Linter) primaryManualPages() ([]string, error) {
	primaryDir := filepath.Join(l.docsRoot, l.cfg.Primary().Code)
	var pages []string

	if _, err := os.Stat(filepath.Join(primaryDir, "index.md")); err == nil {
		pages = append(pages, "index.md")
	}

	manualDir := filepath.Join(primaryDir, "manual")
	err := filepath.WalkDir(manualDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") || d.Name() == tocFile {
			return nil
		}
		rel, err := filepath.Rel(primaryDir, path)
		if err != nil {
			return err
		}
		pages = append(pages, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// checkCoverage flags primary pages lacking a translated counterpart.
func (l *Linter) checkCoverage(result *Result, lang config.Language, primaryPages []string) {
	overlayDir := filepath.Join(l.docsRoot, lang.Code)
	missing := 0
	for _, page := range primaryPages {
		if _, err := os.Stat(filepath.Join(overlayDir, filepath.FromSlash(page))); os.IsNotExist(err) {
			missing++
			result.add(Issue{
				Rule:     RuleCoverage,
				Severity: SeverityWarning,
				Language: lang.Code,
				Page:     page,
				Message:  "no translated counterpart; builds will fall back to primary content",
			})
		}
	}
	slog.Debug("Coverage checked", "language", lang.Code, "missing", missing, "total", len(primaryPages))
}
