package bash

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

type bash003Rule struct{}

func NewBASH003Rule() rules.Rule { return bash003Rule{} }

func (bash003Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "BASH003",
		Name:             "cd-and-command",
		Description:      "Dangerous 'cd && command' pattern that runs in the wrong directory if cd fails",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryBash,
		EnabledByDefault: true,
	}
}

func (bash003Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		codeOnly := trimmed
		if pos := strings.Index(trimmed, "#"); pos >= 0 {
			codeOnly = trimmed[:pos]
		}
		codeOnly = strings.TrimSpace(codeOnly)
		if codeOnly == "" {
			continue
		}
		if !strings.Contains(codeOnly, "cd ") || !strings.Contains(codeOnly, "&&") {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(codeOnly), "(") {
			continue
		}
		cdPos := strings.Index(codeOnly, "cd ")
		andPos := strings.Index(codeOnly[cdPos:], "&&")
		if andPos < 0 {
			continue
		}
		afterAnd := strings.TrimSpace(codeOnly[cdPos+andPos+2:])
		if afterAnd == "" {
			continue
		}
		out = append(out, diag.New(
			"BASH003", diag.Warning,
			"Dangerous 'cd && command' pattern - if cd fails, command runs in wrong directory; use 'cd dir || exit 1' or '(cd dir && cmd)' in subshell",
			diag.NewSpan(i+1, 1, i+1, len(line)),
		))
	}
	return out
}
