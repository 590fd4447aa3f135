package config

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"git.home.luguber.info/inful/polydocs/internal/errors"
)

// Normalize canonicalizes language entries before validation: codes are
// trimmed and lowercased, and missing display names are derived from the
// BCP 47 tag. Invalid tags fail here so Validate can assume well-formed
// codes.
func Normalize(cfg *Config) error {
	for i := range cfg.Languages {
		l := &cfg.Languages[i]
		l.Code = strings.ToLower(strings.TrimSpace(l.Code))
		if l.Code == "" {
			return errors.ConfigInvalid("language entry with empty code")
		}

		tag, err := language.Parse(l.Code)
		if err != nil {
			return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "invalid language code").
				WithContext("code", l.Code)
		}

		if strings.TrimSpace(l.Name) == "" {
			l.Name = display.English.Tags().Name(tag)
		}
	}
	return nil
}
