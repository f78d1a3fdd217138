package sc

import (
	"regexp"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	ifWithRedirect    = regexp.MustCompile(`\bif\s+[^;]+>\s*[^\s;]+\s*;`)
	whileWithRedirect = regexp.MustCompile(`\bwhile\s+[^;]+>\s*[^\s;]+\s*;`)
	forWithRedirect   = regexp.MustCompile(`\bfor\s+[^;]+>\s*[^\s;]+\s*;`)
)

type sc2095Rule struct{}

func NewSC2095Rule() rules.Rule { return sc2095Rule{} }

func (sc2095Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2095",
		Name:             "redirect-applies-to-condition-only",
		Description:      "Redirections only apply to the commands they precede, not the surrounding block",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2095Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if m := ifWithRedirect.FindStringIndex(line); m != nil {
			out = append(out, diag.New("SC2095", diag.Info,
				"Redirections only apply to the condition command, not the if block. Move redirection after 'fi' to redirect entire block",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
		if m := whileWithRedirect.FindStringIndex(line); m != nil {
			out = append(out, diag.New("SC2095", diag.Info,
				"Redirections only apply to the condition command, not the loop body. Wrap loop in { } and redirect after closing brace",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
		if m := forWithRedirect.FindStringIndex(line); m != nil {
			out = append(out, diag.New("SC2095", diag.Info,
				"Redirections only apply to the for statement itself, not the loop body. Wrap loop in { } and redirect after closing brace",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
	})
	return out
}
