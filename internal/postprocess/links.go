// Package postprocess rewrites links in generated site pages. Pages are
// built from the temporary merge directory, so their embedded source
// links ("improve this doc" anchors and page metadata) point at
// <code>_tmp instead of the permanent language path; this pass retargets
// them after generation.
package postprocess

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/polydocs/internal/errors"
)

// Rewriter fixes source links in one language's generated site output.
type Rewriter struct {
	siteDir    string // generated output for the language, _site/<code>
	overlayDir string // translated-override sources, <code>/
	language   string
	primary    string
}

// NewRewriter creates a Rewriter for a secondary language's site output.
func NewRewriter(siteDir, overlayDir, language, primary string) *Rewriter {
	return &Rewriter{
		siteDir:    siteDir,
		overlayDir: overlayDir,
		language:   language,
		primary:    primary,
	}
}

// Run rewrites every generated HTML page under the site directory and
// reports how many pages changed.
//
// A page whose source exists under the translated-override tree gets its
// temp-directory links retargeted at the language path; every other page
// carries primary-language fallback content, so its links retarget at the
// primary path instead.
func (r *Rewriter) Run() (int, error) {
	tmpSegment := r.language + "_tmp"
	rewritten := 0

	if _, err := os.Stat(r.siteDir); os.IsNotExist(err) {
		slog.Warn("No generated output to post-process", "language", r.language, "dir", r.siteDir)
		return 0, nil
	}

	err := filepath.WalkDir(r.siteDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(r.siteDir, path)
		if err != nil {
			return err
		}

		target := r.primary
		if r.isTranslated(rel) {
			target = r.language
		}

		changed, err := rewritePage(path, tmpSegment, target)
		if err != nil {
			return errors.Wrap(err, errors.CategoryPostProcess, errors.SeverityFatal, "failed to rewrite page links").
				WithContext("page", rel)
		}
		if changed {
			rewritten++
			slog.Debug("Rewrote page links", "page", rel, "target", target)
		}
		return nil
	})
	if err != nil {
		return rewritten, err
	}

	slog.Info("Link post-processing complete", "language", r.language, "pages_rewritten", rewritten)
	return rewritten, nil
}

// isTranslated reports whether the generated page's source exists under
// the plain language override tree (not only in the scratch tree).
func (r *Rewriter) isTranslated(pageRel string) bool {
	srcRel := strings.TrimSuffix(pageRel, ".html") + ".md"
	_, err := os.Stat(filepath.Join(r.overlayDir, filepath.FromSlash(srcRel)))
	return err == nil
}

// rewritePage parses one generated page and retargets the temp path
// segment in anchor hrefs and metadata content attributes. The page is
// only written back when something changed.
func rewritePage(path, tmpSegment, target string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return false, err
	}

	changed := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				changed = rewriteAttr(n, "href", tmpSegment, target) || changed
			case "meta":
				changed = rewriteAttr(n, "content", tmpSegment, target) || changed
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if !changed {
		return false, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return false, err
	}
	return true, os.WriteFile(path, buf.Bytes(), 0o644)
}

// rewriteAttr replaces the temp path segment in one attribute value.
func rewriteAttr(n *html.Node, name, tmpSegment, target string) bool {
	for i, attr := range n.Attr {
		if attr.Key != name {
			continue
		}
		if next := replaceSegment(attr.Val, tmpSegment, target); next != attr.Val {
			n.Attr[i].Val = next
			return true
		}
	}
	return false
}

// replaceSegment swaps whole path segments so a language code embedded in
// an unrelated word is never touched.
func replaceSegment(val, from, to string) string {
	segments := strings.Split(val, "/")
	for i, seg := range segments {
		if seg == from {
			segments[i] = to
		}
	}
	return strings.Join(segments, "/")
}
