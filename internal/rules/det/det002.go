package det

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var det002IntentionalMarkers = []string{
	"intentional: timestamp",
	"intentional timestamp",
	"timestamp for result tracking",
	"timestamp for tracking",
	"benchmark result",
	"logging timestamp",
	"log timestamp",
}

func det002IsIntentionalMarker(line string) bool {
	lower := strings.ToLower(line)
	for _, m := range det002IntentionalMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func det002IsTimestampForTracking(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "if ") || strings.HasPrefix(trimmed, "elif ") ||
		strings.HasPrefix(trimmed, "while ") ||
		strings.Contains(trimmed, "[ $(date") || strings.Contains(trimmed, "[[ $(date") {
		return false
	}
	return strings.Contains(trimmed, "=") && !strings.HasPrefix(trimmed, "[")
}

func det002IsVariableAssignment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "#") &&
		strings.Contains(trimmed, "=") && !strings.HasPrefix(trimmed, "[")
}

type det002Pattern struct {
	text string
	len  int
}

var det002Patterns = []det002Pattern{
	{"date +%s", 8},
	{"$(date", 6},
	{"`date", 5},
}

type det002Rule struct{}

func NewDET002Rule() rules.Rule { return det002Rule{} }

func (det002Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "DET002",
		Name:             "timestamp-usage",
		Description:      "Non-deterministic timestamp usage via 'date' breaks reproducible builds",
		DefaultSeverity:  diag.Error,
		Category:         rules.CategoryDeterminism,
		EnabledByDefault: true,
	}
}

func (det002Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	intentionalContext := false

	for i, line := range lines {
		if det002IsIntentionalMarker(line) {
			intentionalContext = true
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") && !det002IsVariableAssignment(line) {
			intentionalContext = false
		}

		for _, p := range det002Patterns {
			col := strings.Index(line, p.text)
			if col < 0 {
				continue
			}
			if intentionalContext && det002IsTimestampForTracking(line) {
				continue
			}
			out = append(out, diag.New(
				"DET002", diag.Error,
				"Non-deterministic timestamp usage - requires manual fix (UNSAFE)",
				diag.NewSpan(i+1, col+1, i+1, col+p.len),
			).WithFix(diag.NewFix("").WithSafety(diag.Unsafe).WithAlternatives(
				`Option 1: Use version: RELEASE="release-${VERSION}"`,
				`Option 2: Use git commit: RELEASE="release-$(git rev-parse --short HEAD)"`,
				`Option 3: Pass as argument: RELEASE="release-$1"`,
				"Option 4: Use SOURCE_DATE_EPOCH for reproducible builds",
				"Option 5: Mark as intentional: # Intentional: timestamp for result tracking",
			)))
			break
		}
	}
	return out
}
