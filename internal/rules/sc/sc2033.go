package sc

import (
	"regexp"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	exportInSubshell      = regexp.MustCompile(`\(\s*export\b`)
	exportInPipe          = regexp.MustCompile(`\|\s*export\b`)
	exportInCommandSubst  = regexp.MustCompile(`\$\(\s*export\b`)
)

type sc2033Rule struct{}

func NewSC2033Rule() rules.Rule { return sc2033Rule{} }

func (sc2033Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2033",
		Name:             "export-in-subshell",
		Description:      "Shell can't see variables exported in a subshell",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2033Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if m := exportInSubshell.FindStringIndex(line); m != nil {
			isCommandSubst := m[0] > 0 && line[m[0]-1] == '$'
			if !isCommandSubst {
				out = append(out, diag.New("SC2033", diag.Warning,
					"Shell can't see variables exported in a subshell. Remove parentheses or export in the current shell",
					diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
			}
		}
		if m := exportInPipe.FindStringIndex(line); m != nil {
			out = append(out, diag.New("SC2033", diag.Warning,
				"Shell can't see variables exported in a pipeline. The export only affects the pipeline subshell",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
		if m := exportInCommandSubst.FindStringIndex(line); m != nil {
			out = append(out, diag.New("SC2033", diag.Warning,
				"Shell can't see variables exported in a command substitution subshell",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
	})
	return out
}
