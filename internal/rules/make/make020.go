package make

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

type make020Rule struct{}

func NewMAKE020Rule() rules.Rule { return make020Rule{} }

func (make020Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "MAKE020",
		Name:             "missing-include-guard",
		Description:      "Makefile defines variables but has no ifndef/endif guard against double inclusion",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryMake,
		EnabledByDefault: true,
	}
}

func (make020Rule) Check(input rules.LintInput) []diag.Diagnostic {
	source := string(input.Source)
	if strings.TrimSpace(source) == "" {
		return nil
	}
	if hasIfndef(source) || !shouldHaveGuard(source) {
		return nil
	}
	fix := "ifndef MAKEFILE_INCLUDED\nMAKEFILE_INCLUDED := 1\n\n" + source + "\n\nendif"
	lines := strings.Split(source, "\n")
	span := diag.NewSpan(1, 1, len(lines), len(lines[len(lines)-1]))
	return []diag.Diagnostic{diag.New(
		"MAKE020", diag.Warning,
		"Missing include guard - Makefile may be included multiple times (consider adding ifndef/endif guard)",
		span,
	).WithFix(diag.NewFix(fix).WithSafety(diag.SafeWithAssumptions).WithAssumptions(
		"This file is meant to be included by other Makefiles rather than invoked directly",
	))}
}

func hasIfndef(source string) bool {
	for _, line := range strings.Split(source, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "ifndef ") {
			return true
		}
	}
	return false
}

func shouldHaveGuard(source string) bool {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(line, "\t") {
			continue
		}
		if strings.Contains(trimmed, "=") && !strings.HasPrefix(trimmed, "export ") {
			return true
		}
	}
	return false
}
