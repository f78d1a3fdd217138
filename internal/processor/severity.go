package processor

import (
	"github.com/wharflab/bashrs/internal/rules"
	"github.com/wharflab/bashrs/internal/violation"
)

// SeverityOverride applies severity overrides from configuration.
// Allows users to downgrade warnings to info, upgrade info to errors, etc.
// Also auto-enables rules with EnabledByDefault=false when config options
// are supplied for them explicitly.
type SeverityOverride struct {
	registry *rules.Registry
}

// NewSeverityOverride creates a new severity override processor.
func NewSeverityOverride() *SeverityOverride {
	return NewSeverityOverrideWithRegistry(rules.Default())
}

// NewSeverityOverrideWithRegistry creates a severity override processor with a custom registry.
func NewSeverityOverrideWithRegistry(registry *rules.Registry) *SeverityOverride {
	if registry == nil {
		registry = rules.Default()
	}
	return &SeverityOverride{registry: registry}
}

// Name returns the processor's identifier.
func (p *SeverityOverride) Name() string {
	return "severity-override"
}

// Process applies severity overrides from config.
func (p *SeverityOverride) Process(violations []violation.Violation, ctx *Context) []violation.Violation {
	return transformViolations(violations, func(v violation.Violation) violation.Violation {
		cfg := ctx.ConfigForFile(v.Location.File)
		if cfg == nil {
			return v
		}

		override := cfg.Rules.GetSeverity(v.RuleCode)
		if override != "" {
			sev, err := violation.ParseSeverity(override)
			if err != nil {
				return v
			}
			v.Severity = sev
			return v
		}

		// Auto-enable: if config options were supplied for a rule the
		// registry marks disabled-by-default, treat it as warning.
		ruleConfig := cfg.Rules.Get(v.RuleCode)
		if ruleConfig != nil && len(ruleConfig.Options) > 0 {
			rule, ok := p.registry.Get(v.RuleCode)
			if ok && !rule.Metadata().EnabledByDefault {
				v.Severity = violation.SeverityWarning
			}
		}

		return v
	})
}
