package config

import (
	"maps"
	"strings"

	"github.com/wharflab/bashrs/internal/rules/configutil"
)

// FixMode controls when auto-fixes are applied for a rule.
type FixMode string

const (
	// FixModeNever: fix.ApplyFixes never applies the rule's fixes.
	FixModeNever FixMode = "never"

	// FixModeExplicit: applied only when the rule is listed in
	// fix.Policy.ExplicitRules.
	FixModeExplicit FixMode = "explicit"

	// FixModeAlways: applied whenever the fix's safety level is within
	// fix.Policy.MaxSafety (default).
	FixModeAlways FixMode = "always"

	// FixModeUnsafeOnly: applied only to fixes whose safety level is Unsafe.
	FixModeUnsafeOnly FixMode = "unsafe-only"
)

// RuleConfig represents per-rule configuration.
// Can be specified in TOML as:
//
//	[rules.overrides.SC2086]
//	severity = "warning"
//	fix = "always"
//	# Rule-specific options are flattened at this level
type RuleConfig struct {
	// Severity overrides the rule's default severity.
	// Use "off" to disable the rule.
	Severity string `koanf:"severity"`

	// Fix controls when auto-fixes are applied for this rule.
	Fix FixMode `koanf:"fix"`

	// Exclude contains path patterns where this rule should not run.
	Exclude ExcludeConfig `koanf:"exclude"`

	// Options contains rule-specific configuration options.
	Options map[string]any `koanf:",remain"`
}

// ExcludeConfig defines file exclusion patterns for a rule.
type ExcludeConfig struct {
	// Paths contains doublestar glob patterns for files to exclude.
	Paths []string `koanf:"paths"`
}

// RulesConfig contains rule selection and per-rule configuration.
//
// Example TOML (Ruff-style selection):
//
//	[rules]
//	include = ["SC*"]     # Enable all SC rules
//	exclude = ["SC2086"]  # Disable a specific rule
//	known-external-vars = ["CI", "RUNNER_ID"]
//
//	[rules.overrides.DOCKER008]
//	severity = "error"
type RulesConfig struct {
	// Include explicitly enables rules.
	Include []string `koanf:"include"`

	// Exclude explicitly disables rules.
	Exclude []string `koanf:"exclude"`

	// KnownExternalVars lists environment variable names the suppression
	// engine should treat as externally supplied, not evidence of an
	// unset-variable bug (e.g. SC2154 "referenced but not assigned").
	KnownExternalVars []string `koanf:"known-external-vars"`

	// Overrides contains per-rule configuration, keyed by the full rule
	// code (e.g. "SC2086", "DOCKER008").
	Overrides map[string]RuleConfig `koanf:"overrides"`
}

// Get returns the configuration for a specific rule code.
// Returns nil if no configuration exists for the rule.
func (rc *RulesConfig) Get(ruleCode string) *RuleConfig {
	if rc == nil || rc.Overrides == nil {
		return nil
	}
	if cfg, ok := rc.Overrides[ruleCode]; ok {
		return &cfg
	}
	return nil
}

// IsEnabled checks if a rule is enabled based on Include/Exclude patterns.
// Returns nil if no configuration specifies enabled/disabled (use rule default).
// Include takes precedence over Exclude (Ruff-style semantics).
func (rc *RulesConfig) IsEnabled(ruleCode string) *bool {
	if rc == nil {
		return nil
	}

	if matchesAnyPattern(ruleCode, rc.Include) {
		return boolPtr(true)
	}

	if matchesAnyPattern(ruleCode, rc.Exclude) {
		return boolPtr(false)
	}

	if cfg := rc.Get(ruleCode); cfg != nil && strings.EqualFold(cfg.Severity, "off") {
		return boolPtr(false)
	}

	return nil
}

// matchesAnyPattern checks if ruleCode matches any pattern in the list.
func matchesAnyPattern(ruleCode string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesPattern(ruleCode, pattern) {
			return true
		}
	}
	return false
}

// matchesPattern checks if ruleCode matches a single pattern.
// Patterns can be:
//   - "*" (universal wildcard)
//   - an exact code ("SC2086")
//   - a category prefix wildcard ("SC*", "DOCKER*")
func matchesPattern(ruleCode, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if ruleCode == pattern {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(ruleCode, prefix)
	}
	return false
}

// GetSeverity returns the severity override for a rule.
// Returns empty string if no override is configured.
func (rc *RulesConfig) GetSeverity(ruleCode string) string {
	if rc == nil {
		return ""
	}
	if cfg := rc.Get(ruleCode); cfg != nil && cfg.Severity != "" {
		return cfg.Severity
	}
	return ""
}

// GetFixMode returns the fix mode for a rule.
// Returns FixModeAlways (default) if no override is configured.
func (rc *RulesConfig) GetFixMode(ruleCode string) FixMode {
	if rc == nil {
		return FixModeAlways
	}
	if cfg := rc.Get(ruleCode); cfg != nil && cfg.Fix != "" {
		return cfg.Fix
	}
	return FixModeAlways
}

// GetExcludePaths returns the exclusion patterns for a rule.
func (rc *RulesConfig) GetExcludePaths(ruleCode string) []string {
	if rc == nil {
		return nil
	}
	if cfg := rc.Get(ruleCode); cfg != nil {
		if cfg.Exclude.Paths == nil {
			return nil
		}
		out := make([]string, len(cfg.Exclude.Paths))
		copy(out, cfg.Exclude.Paths)
		return out
	}
	return nil
}

// GetOptions returns rule-specific options.
// Returns nil if no options are configured.
// Returns a shallow copy to prevent mutation of internal state.
func (rc *RulesConfig) GetOptions(ruleCode string) map[string]any {
	if rc == nil {
		return nil
	}
	if cfg := rc.Get(ruleCode); cfg != nil {
		if cfg.Options == nil {
			return nil
		}
		out := make(map[string]any, len(cfg.Options))
		maps.Copy(out, cfg.Options)
		return out
	}
	return nil
}

// DecodeRuleOptions returns typed rule options merged over defaults.
// Returns defaults if the rule has no options or decoding fails.
func DecodeRuleOptions[T any](rc *RulesConfig, ruleCode string, defaults T) T {
	if rc == nil {
		return defaults
	}
	return configutil.Resolve(rc.GetOptions(ruleCode), defaults)
}

// Set stores configuration for a rule, creating the Overrides map if nil.
func (rc *RulesConfig) Set(ruleCode string, cfg RuleConfig) {
	if rc.Overrides == nil {
		rc.Overrides = make(map[string]RuleConfig)
	}
	rc.Overrides[ruleCode] = cfg
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}
