// Package bash implements the BASHxxx rule family: shell hygiene and
// safety checks that go beyond ShellCheck's own catalog, ported from
// the teacher's original linter/rules/bash*.rs sources.
package bash

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

func lineSetsErrexit(trimmed string) bool {
	if strings.Contains(trimmed, "set") && strings.Contains(trimmed, "-o") && strings.Contains(trimmed, "errexit") {
		return true
	}
	if (strings.HasPrefix(trimmed, "set ") || trimmed == "set") && strings.Contains(trimmed, "-") {
		flagsStart := strings.Index(trimmed, "-")
		flagsPart := trimmed[flagsStart:]
		for _, flagGroup := range strings.Fields(flagsPart) {
			if strings.HasPrefix(flagGroup, "-") && !strings.HasPrefix(flagGroup, "--") && strings.Contains(flagGroup, "e") {
				return true
			}
		}
	}
	return false
}

type bash001Rule struct{}

func NewBASH001Rule() rules.Rule { return bash001Rule{} }

func (bash001Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "BASH001",
		Name:             "missing-set-e",
		Description:      "Missing 'set -e' in script",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryBash,
		EnabledByDefault: true,
	}
}

func (bash001Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	if len(lines) == 0 {
		return nil
	}

	hasShebang := strings.HasPrefix(strings.TrimSpace(lines[0]), "#!")
	hasSetE := false
	for _, line := range lines {
		if lineSetsErrexit(strings.TrimSpace(line)) {
			hasSetE = true
			break
		}
	}

	if hasShebang && !hasSetE {
		return []diag.Diagnostic{diag.New(
			"BASH001", diag.Warning,
			"Missing 'set -e' in script. Without it, script continues after errors. Add 'set -e' after shebang to exit on first error. Consider 'set -euo pipefail' for stricter error handling.",
			diag.NewSpan(1, 1, 1, len(lines[0])),
		)}
	}
	return nil
}
