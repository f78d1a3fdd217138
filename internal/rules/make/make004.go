// Package make implements the MAKExxx rule family: lint checks over
// preprocessed Makefile text, grounded on the original linter's
// make0xx.rs rules.
package make

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// phonyTargets are common non-file targets that should always be
// declared .PHONY.
var phonyTargets = map[string]bool{
	"all": true, "clean": true, "test": true, "install": true,
	"uninstall": true, "check": true, "build": true, "run": true,
	"help": true, "dist": true, "distclean": true, "lint": true,
	"format": true, "fmt": true, "doc": true, "docs": true,
	"benchmark": true, "bench": true, "coverage": true, "deploy": true,
	"release": true, "dev": true, "prod": true,
}

type make004Rule struct{}

func NewMAKE004Rule() rules.Rule { return make004Rule{} }

func (make004Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "MAKE004",
		Name:             "missing-phony",
		Description:      "Common non-file target is missing a .PHONY declaration",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryMake,
		EnabledByDefault: true,
	}
}

func (make004Rule) Check(input rules.LintInput) []diag.Diagnostic {
	source := string(input.Source)
	lines := strings.Split(source, "\n")
	declared := parsePhonyTargets(lines)

	var out []diag.Diagnostic
	for i, line := range lines {
		if shouldSkipMakeLine(line) || !isMakeTargetLine(line) || strings.Contains(line, "=") {
			continue
		}
		target := strings.TrimSpace(strings.SplitN(line, ":", 2)[0])
		if target == "" || !phonyTargets[target] || declared[target] {
			continue
		}
		out = append(out, diag.New(
			"MAKE004", diag.Warning,
			"Target '"+target+"' should be marked as .PHONY",
			diag.NewSpan(i+1, 1, i+1, len(target)),
		).WithFix(diag.NewFix(".PHONY: "+target).WithSafety(diag.Safe)))
	}
	return out
}

func parsePhonyTargets(lines []string) map[string]bool {
	declared := map[string]bool{}
	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(strings.TrimLeft(line, " \t")), ".PHONY:") &&
			!strings.HasPrefix(strings.TrimLeft(line, " \t"), ".PHONY:") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) < 2 {
			continue
		}
		for _, t := range strings.Fields(parts[1]) {
			declared[t] = true
		}
	}
	return declared
}

func shouldSkipMakeLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, ".PHONY") || strings.HasPrefix(trimmed, "#")
}

func isMakeTargetLine(line string) bool {
	return strings.Contains(line, ":") && !strings.HasPrefix(line, "\t") && strings.TrimSpace(line) != ""
}
