// Package docker implements the DOCKERxxx rule family: Dockerfile best
// practice checks, grounded on the original linter's docker0xx.rs rules.
package docker

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var shellPaths = []string{
	"/bin/sh", "/bin/bash", "/bin/ash", "/bin/dash", "/bin/zsh",
	"sh", "bash", "ash", "dash", "zsh",
}

type docker008Rule struct{}

func NewDOCKER008Rule() rules.Rule { return docker008Rule{} }

func (docker008Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "DOCKER008",
		Name:             "shell-in-cmd",
		Description:      "CMD/RUN uses a shell interpreter where direct execution would do",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryDocker,
		EnabledByDefault: true,
	}
}

func (docker008Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		span := diag.NewSpan(i+1, 1, i+1, clampLen(trimmed, 80))

		if rest, ok := strings.CutPrefix(trimmed, "CMD "); ok {
			if strings.HasPrefix(rest, "[") {
				if shell, found := findShellInExecForm(rest, true); found {
					out = append(out, diag.New("DOCKER008", diag.Warning,
						"CMD uses shell '"+shell+"' with -c flag - consider direct execution", span))
				}
			} else {
				out = append(out, diag.New("DOCKER008", diag.Info,
					"CMD uses shell form - consider exec form for better signal handling", span))
			}
		}

		if rest, ok := strings.CutPrefix(trimmed, "RUN "); ok {
			if strings.HasPrefix(rest, "[") {
				if shell, found := findShellInExecForm(rest, false); found {
					out = append(out, diag.New("DOCKER008", diag.Info,
						"RUN exec form with '"+shell+"' -c is redundant - shell form does the same", span))
				}
			}
		}
	}
	return out
}

func findShellInExecForm(rest string, extraPatterns bool) (string, bool) {
	for _, shell := range shellPaths {
		patterns := []string{`["` + shell + `", "-c"`, `["` + shell + `" , "-c"`}
		if extraPatterns {
			patterns = append(patterns, `['`+shell+`'`)
		}
		for _, p := range patterns {
			if strings.Contains(rest, p) {
				return shell, true
			}
		}
	}
	return "", false
}

func clampLen(s string, max int) int {
	if len(s) < max {
		return len(s)
	}
	return max
}
