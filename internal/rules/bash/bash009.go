package bash

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

type bash009Rule struct{}

func NewBASH009Rule() rules.Rule { return bash009Rule{} }

func (bash009Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "BASH009",
		Name:             "inefficient-loop",
		Description:      "Loop could use a bash builtin instead of spawning an external command",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryBash,
		EnabledByDefault: true,
	}
}

func (bash009Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		codeOnly := trimmed
		if pos := strings.Index(trimmed, "#"); pos >= 0 {
			codeOnly = trimmed[:pos]
		}
		codeOnly = strings.TrimSpace(codeOnly)

		if strings.Contains(codeOnly, "for ") && strings.Contains(codeOnly, "$(seq") {
			out = append(out, diag.New(
				"BASH009", diag.Info,
				"Inefficient loop using $(seq ...) - use bash brace expansion {start..end} or C-style for loop for better performance and portability",
				diag.NewSpan(i+1, 1, i+1, len(line)),
			))
		}

		if strings.Contains(codeOnly, "cat ") && strings.Contains(codeOnly, "| while read") {
			out = append(out, diag.New(
				"BASH009", diag.Info,
				"Inefficient pattern 'cat file | while read' - use 'while read; do ... done < file' to avoid spawning cat process",
				diag.NewSpan(i+1, 1, i+1, len(line)),
			))
		}
	}
	return out
}
