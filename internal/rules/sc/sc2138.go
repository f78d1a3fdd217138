package sc

import (
	"regexp"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	functionInIf     = regexp.MustCompile(`\b(if|elif|else)\b[^;]*;\s*then[^\n]*\bfunction\b`)
	functionInLoop   = regexp.MustCompile(`\b(for|while|until)\b[^;]*;\s*do[^\n]*\bfunction\b`)
	functionAsName   = regexp.MustCompile(`\bfunction\s*\(\s*\)\s*\{`)
)

type sc2138Rule struct{}

func NewSC2138Rule() rules.Rule { return sc2138Rule{} }

func (sc2138Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2138",
		Name:             "function-defined-in-wrong-context",
		Description:      "Functions should be defined at the top level, and never named 'function'",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2138Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if m := functionInIf.FindStringIndex(line); m != nil {
			out = append(out, diag.New("SC2138", diag.Warning,
				"Functions should be defined at top level, not inside if statements",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
		if m := functionInLoop.FindStringIndex(line); m != nil {
			out = append(out, diag.New("SC2138", diag.Warning,
				"Functions should be defined at top level, not inside loops",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
		for _, m := range functionAsName.FindAllStringIndex(line, -1) {
			out = append(out, diag.New("SC2138", diag.Error,
				"'function' is a keyword and cannot be used as a function name",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
	})
	return out
}
