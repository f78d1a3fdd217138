package processor

import (
	"github.com/wharflab/bashrs/internal/rules"
	"github.com/wharflab/bashrs/internal/violation"
)

// EnableFilter removes violations for disabled rules.
// Filters out violations with severity="off". Also respects Include/
// Exclude patterns from config.
type EnableFilter struct {
	registry *rules.Registry
}

// NewEnableFilter creates a new enable filter processor using the default registry.
func NewEnableFilter() *EnableFilter {
	return NewEnableFilterWithRegistry(rules.Default())
}

// NewEnableFilterWithRegistry creates an enable filter with a custom registry.
func NewEnableFilterWithRegistry(registry *rules.Registry) *EnableFilter {
	if registry == nil {
		registry = rules.Default()
	}
	return &EnableFilter{registry: registry}
}

// Name returns the processor's identifier.
func (p *EnableFilter) Name() string {
	return "enable-filter"
}

// Process filters out violations for disabled rules.
func (p *EnableFilter) Process(violations []violation.Violation, ctx *Context) []violation.Violation {
	return filterViolations(violations, func(v violation.Violation) bool {
		if v.Severity == violation.SeverityOff {
			return false
		}

		cfg := ctx.ConfigForFile(v.Location.File)
		if cfg != nil {
			if enabled := cfg.Rules.IsEnabled(v.RuleCode); enabled != nil {
				return *enabled
			}
		}
		return true
	})
}
