package lint

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/polydocs/internal/config"
)

// checkLinks verifies that relative links in translated pages resolve to
// a page in either the translated overlay or the primary tree. Links into
// the primary tree are legal: untranslated targets fall back at build
// time.
func (l *Linter) checkLinks(result *Result, lang config.Language) error {
	overlayDir := filepath.Join(l.docsRoot, lang.Code)
	primaryDir := filepath.Join(l.docsRoot, l.cfg.Primary().Code)

	if _, err := os.Stat(overlayDir); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(overlayDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(overlayDir, p)
		if err != nil {
			return err
		}
		relSlash := filepath.ToSlash(rel)

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		for _, dest := range markdownLinks(data) {
			if !isRelativePageLink(dest) {
				continue
			}
			target := path.Clean(path.Join(path.Dir(relSlash), stripFragment(dest)))
			if resolves(overlayDir, target) || resolves(primaryDir, target) {
				continue
			}
			result.add(Issue{
				Rule:     RuleBrokenLink,
				Severity: SeverityError,
				Language: lang.Code,
				Page:     relSlash,
				Message:  fmt.Sprintf("link %q resolves to no page in the translated or primary tree", dest),
			})
		}
		return nil
	})
}

// markdownLinks extracts link destinations from a markdown document.
func markdownLinks(body []byte) []string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var dests []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Link:
			dests = append(dests, string(node.Destination))
		case *gmast.Image:
			dests = append(dests, string(node.Destination))
		}
		return gmast.WalkContinue, nil
	})
	return dests
}

// isRelativePageLink reports whether a destination is a relative markdown
// page reference worth validating.
func isRelativePageLink(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return false
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return false
	}
	return strings.HasSuffix(stripFragment(dest), ".md")
}

func stripFragment(dest string) string {
	if i := strings.IndexByte(dest, '#'); i >= 0 {
		return dest[:i]
	}
	return dest
}

func resolves(baseDir, target string) bool {
	_, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(target)))
	return err == nil
}
