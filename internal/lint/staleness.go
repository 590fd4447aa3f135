package lint

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/polydocs/internal/config"
)

// stalenessChecker flags translated pages whose primary counterpart has
// changed more recently, using commit history. When the docs root is not
// inside a git repository the rule is skipped with a warning log.
type stalenessChecker struct {
	docsRoot string
	repo     *gogit.Repository
	repoRoot string
}

func newStalenessChecker(docsRoot string) *stalenessChecker {
	c := &stalenessChecker{docsRoot: docsRoot}

	repo, err := gogit.PlainOpenWithOptions(docsRoot, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		slog.Warn("Docs root is not inside a git repository, skipping staleness rule", "error", err)
		return c
	}
	wt, err := repo.Worktree()
	if err != nil {
		slog.Warn("Cannot resolve git worktree, skipping staleness rule", "error", err)
		return c
	}
	c.repo = repo
	c.repoRoot = wt.Filesystem.Root()
	return c
}

func (c *stalenessChecker) check(result *Result, primaryCode string, lang config.Language, primaryPages []string) {
	if c.repo == nil {
		return
	}

	for _, page := range primaryPages {
		translated := filepath.Join(c.docsRoot, lang.Code, filepath.FromSlash(page))
		translatedTime, ok := c.lastCommitTime(translated)
		if !ok {
			continue // untranslated or uncommitted, coverage rule owns that
		}

		primary := filepath.Join(c.docsRoot, primaryCode, filepath.FromSlash(page))
		primaryTime, ok := c.lastCommitTime(primary)
		if !ok {
			continue
		}

		if primaryTime.After(translatedTime) {
			result.add(Issue{
				Rule:     RuleStaleness,
				Severity: SeverityWarning,
				Language: lang.Code,
				Page:     page,
				Message: fmt.Sprintf("primary page changed %s, after the translation's last change %s",
					primaryTime.Format(time.DateOnly), translatedTime.Format(time.DateOnly)),
			})
		}
	}
}

// lastCommitTime returns the committer time of the newest commit touching
// the file, or ok=false when the file has no history.
func (c *stalenessChecker) lastCommitTime(absPath string) (time.Time, bool) {
	rel, err := filepath.Rel(c.repoRoot, absPath)
	if err != nil {
		return time.Time{}, false
	}
	rel = filepath.ToSlash(rel)

	iter, err := c.repo.Log(&gogit.LogOptions{FileName: &rel, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return time.Time{}, false
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		return time.Time{}, false
	}
	return commit.Committer.When, true
}
