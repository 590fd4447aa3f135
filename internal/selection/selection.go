// Package selection resolves what a run should build: the primary
// language, one secondary language, every enabled secondary language, the
// local server, or nothing. The batch flag bypasses prompting entirely;
// interactive runs prompt through survey.
package selection

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/polydocs/internal/config"
	"git.home.luguber.info/inful/polydocs/internal/errors"
)

// Kind enumerates the build-selection choices.
type Kind string

const (
	KindPrimary  Kind = "primary"
	KindLanguage Kind = "language"
	KindAll      Kind = "all"
	KindServe    Kind = "serve"
	KindCancel   Kind = "cancel"
)

// Selection is the resolved run choice.
type Selection struct {
	Kind Kind
	// Language is the secondary language code when Kind is KindLanguage.
	Language string
	// IncludeAPI requests regeneration of the API reference metadata
	// before building.
	IncludeAPI bool
}

// IsBuild reports whether the selection triggers a site build.
func (s Selection) IsBuild() bool {
	return s.Kind == KindPrimary || s.Kind == KindLanguage || s.Kind == KindAll
}

// Batch returns the selection forced by the batch flag: build every
// enabled secondary language plus the primary, with API generation.
func Batch() Selection {
	return Selection{Kind: KindAll, IncludeAPI: true}
}

// Resolve maps one line of user input to a selection, case-insensitively.
// Recognized inputs are the fixed option keywords and the codes of
// enabled non-primary languages. Anything else is rejected with an error
// so callers can re-prompt; the input never falls through silently.
func Resolve(input string, cfg *config.Config) (Selection, error) {
	choice := strings.ToLower(strings.TrimSpace(input))

	switch choice {
	case "primary", cfg.Primary().Code:
		return Selection{Kind: KindPrimary}, nil
	case "all":
		return Selection{Kind: KindAll}, nil
	case "serve":
		return Selection{Kind: KindServe}, nil
	case "cancel", "quit", "exit":
		return Selection{Kind: KindCancel}, nil
	}

	for _, l := range cfg.Secondaries() {
		if choice == l.Code {
			return Selection{Kind: KindLanguage, Language: l.Code}, nil
		}
	}

	if l, ok := cfg.ByCode(choice); ok && !l.Enabled {
		return Selection{}, errors.New(errors.CategorySelection, errors.SeverityError,
			fmt.Sprintf("language %q is disabled", choice))
	}
	return Selection{}, errors.New(errors.CategorySelection, errors.SeverityError,
		fmt.Sprintf("unrecognized selection %q", input))
}
