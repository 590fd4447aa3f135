package selection

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"git.home.luguber.info/inful/polydocs/internal/config"
)

// Fixed menu labels. The language entries are built from the config.
const (
	optionAll    = "All languages"
	optionServe  = "Serve built site"
	optionCancel = "Cancel"
)

// Prompt asks the user which build to run and, for build-type choices,
// whether to regenerate the API reference. The select prompt only offers
// valid options, so the silent no-op path of free-text selection cannot
// occur.
func Prompt(cfg *config.Config) (Selection, error) {
	primary := cfg.Primary()
	options := []string{fmt.Sprintf("%s (%s, primary)", primary.Name, primary.Code)}
	codeByOption := map[string]string{}
	for _, l := range cfg.Secondaries() {
		label := fmt.Sprintf("%s (%s)", l.Name, l.Code)
		options = append(options, label)
		codeByOption[label] = l.Code
	}
	options = append(options, optionAll, optionServe, optionCancel)

	var choice string
	prompt := &survey.Select{
		Message: "Select documentation build:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return Selection{}, err
	}

	var sel Selection
	switch choice {
	case options[0]:
		sel = Selection{Kind: KindPrimary}
	case optionAll:
		sel = Selection{Kind: KindAll}
	case optionServe:
		return Selection{Kind: KindServe}, nil
	case optionCancel:
		return Selection{Kind: KindCancel}, nil
	default:
		sel = Selection{Kind: KindLanguage, Language: codeByOption[choice]}
	}

	includeAPI, err := promptIncludeAPI()
	if err != nil {
		return Selection{}, err
	}
	sel.IncludeAPI = includeAPI
	return sel, nil
}

func promptIncludeAPI() (bool, error) {
	var include bool
	prompt := &survey.Confirm{
		Message: "Regenerate API reference metadata?",
		Default: true,
	}
	if err := survey.AskOne(prompt, &include); err != nil {
		return false, err
	}
	return include, nil
}
