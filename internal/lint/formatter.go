package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Formatter renders a lint result as text or json.
type Formatter struct {
	format string
}

// NewFormatter creates a Formatter. Unknown formats fall back to text.
func NewFormatter(format string) *Formatter {
	return &Formatter{format: format}
}

// Format writes the result to w.
func (f *Formatter) Format(w io.Writer, result *Result) error {
	if f.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return f.formatText(w, result)
}

func (f *Formatter) formatText(w io.Writer, result *Result) error {
	if len(result.Issues) == 0 {
		_, err := fmt.Fprintf(w, "No issues found (%d languages, %d pages checked)\n",
			result.LanguagesChecked, result.PagesChecked)
		return err
	}

	byLanguage := map[string][]Issue{}
	var languages []string
	for _, issue := range result.Issues {
		if _, seen := byLanguage[issue.Language]; !seen {
			languages = append(languages, issue.Language)
		}
		byLanguage[issue.Language] = append(byLanguage[issue.Language], issue)
	}
	sort.Strings(languages)

	errs, warns := 0, 0
	for _, lang := range languages {
		if _, err := fmt.Fprintf(w, "%s:\n", lang); err != nil {
			return err
		}
		for _, issue := range byLanguage[lang] {
			if issue.Severity == SeverityError {
				errs++
			} else {
				warns++
			}
			if _, err := fmt.Fprintf(w, "  %-7s %-12s %s: %s\n",
				issue.Severity, issue.Rule, issue.Page, issue.Message); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "\n%d errors, %d warnings (%d languages, %d pages checked)\n",
		errs, warns, result.LanguagesChecked, result.PagesChecked)
	return err
}
