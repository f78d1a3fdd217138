package fix

import "github.com/wharflab/bashrs/internal/config"

// BuildFixModes extracts per-rule fix mode settings from a config.
// Returned keys use the canonical rule code format (e.g. "SC2086").
//
// Nil is returned when cfg is nil.
func BuildFixModes(cfg *config.Config) map[string]FixMode {
	if cfg == nil {
		return nil
	}

	modes := make(map[string]FixMode)
	for ruleCode, ruleCfg := range cfg.Rules.Overrides {
		if ruleCfg.Fix == "" {
			continue
		}
		modes[ruleCode] = ruleCfg.Fix
	}

	return modes
}
