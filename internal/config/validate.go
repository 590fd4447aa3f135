package config

import (
	"fmt"

	"git.home.luguber.info/inful/polydocs/internal/errors"
)

// Validate checks structural invariants of the language list. A
// configuration with zero or multiple primary languages is rejected, as
// is a disabled primary: the primary tree is the fallback source for
// every translated build and must always be buildable.
func Validate(cfg *Config) error {
	if len(cfg.Languages) == 0 {
		return errors.ConfigInvalid("no languages configured")
	}

	seen := make(map[string]bool, len(cfg.Languages))
	primaries := 0
	for _, l := range cfg.Languages {
		if seen[l.Code] {
			return errors.ConfigInvalid(fmt.Sprintf("duplicate language code %q", l.Code))
		}
		seen[l.Code] = true

		if l.Primary {
			primaries++
			if !l.Enabled {
				return errors.ConfigInvalid(fmt.Sprintf("primary language %q is disabled", l.Code))
			}
		}
	}

	switch primaries {
	case 0:
		return errors.ConfigInvalid("no primary language configured")
	case 1:
		return nil
	default:
		return errors.ConfigInvalid(fmt.Sprintf("%d languages marked primary, expected exactly one", primaries))
	}
}
