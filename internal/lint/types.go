package lint

// Severity of a lint issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule identifies which check produced an issue.
type Rule string

const (
	RuleCoverage   Rule = "coverage"
	RuleBrokenLink Rule = "broken-link"
	RuleStaleness  Rule = "staleness"
)

// Issue is a single lint finding.
type Issue struct {
	Rule     Rule     `json:"rule"`
	Severity Severity `json:"severity"`
	Language string   `json:"language"`
	Page     string   `json:"page"`
	Message  string   `json:"message"`
}

// Result aggregates findings across all checked languages.
type Result struct {
	Issues []Issue `json:"issues"`
	// LanguagesChecked counts the secondary languages examined.
	LanguagesChecked int `json:"languages_checked"`
	// PagesChecked counts primary manual pages examined for coverage.
	PagesChecked int `json:"pages_checked"`
}

// HasErrors reports whether any issue is error severity.
func (r *Result) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any issue is warning severity.
func (r *Result) HasWarnings() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

func (r *Result) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}
