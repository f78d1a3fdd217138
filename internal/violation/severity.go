// Package violation holds the driver-facing, multi-file report model that
// internal/processor, internal/reporter, and internal/fix operate over.
//
// The core diagnostic engine (internal/rules, internal/diag) produces
// per-file diag.Diagnostic values matching the spec's JSON shape exactly
// (§6). A whole-project scan — the teacher's internal/rules.Violation
// pipeline, kept here under its own package so it no longer collides with
// the core Rule/RuleMetadata/Registry types — aggregates Diagnostics from
// many files, normalizes paths, applies config overrides and inline
// directives, deduplicates, sorts, and attaches snippets before handing
// the result to a reporter. FromDiagnostic bridges the two layers.
package violation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity represents the severity level of a violation. Unlike
// diag.Severity (the core's 3-level Info/Warning/Error), this level adds
// Off (rule disabled by config) and Style (formatting-only preference),
// both of which are driver/report concerns, never produced by a core Rule
// directly.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver per json.Unmarshaler interface
type Severity int

const (
	// SeverityError indicates a critical issue that should fail the build.
	SeverityError Severity = iota
	// SeverityWarning indicates a significant issue that may cause problems.
	SeverityWarning
	// SeverityInfo indicates a suggestion or best practice recommendation.
	SeverityInfo
	// SeverityStyle indicates a style/formatting preference.
	SeverityStyle
	// SeverityOff disables the rule completely.
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityStyle:
		return "style"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity parses a severity string into a Severity value.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "off":
		return SeverityOff, nil
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "style":
		return SeverityStyle, nil
	default:
		return SeverityError, fmt.Errorf("unknown severity: %q", s)
	}
}

// IsMoreSevereThan returns true if s is more severe than other.
func (s Severity) IsMoreSevereThan(other Severity) bool {
	return s < other // Lower value = more severe
}

// IsAtLeast returns true if s is at least as severe as threshold.
func (s Severity) IsAtLeast(threshold Severity) bool {
	return s <= threshold
}
