package builder

import (
	"fmt"

	"git.home.luguber.info/inful/polydocs/internal/errors"
)

func errMissingLanguage(code string) error {
	return errors.New(errors.CategorySelection, errors.SeverityFatal,
		fmt.Sprintf("language %q is not configured", code))
}

func exitCode(err error) int {
	return errors.ExitCode(err)
}
