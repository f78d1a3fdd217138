package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	pipeToRead          = regexp.MustCompile(`\|\s*read\s+([A-Za-z_][A-Za-z0-9_]*)`)
	subshellAssignment  = regexp.MustCompile(`\(([A-Za-z_][A-Za-z0-9_]*)=`)
	whilePipeRead       = regexp.MustCompile(`\|\s*while\s+read\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

type sc2098Rule struct{}

func NewSC2098Rule() rules.Rule { return sc2098Rule{} }

func (sc2098Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2098",
		Name:             "subshell-assignment-not-visible",
		Description:      "This expansion will not see the assignment made in the subshell command",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2098Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if m := pipeToRead.FindStringSubmatchIndex(line); m != nil {
			varName := line[m[2]:m[3]]
			out = append(out, diag.New("SC2098", diag.Warning,
				"Variable '"+varName+"' is set in a subshell due to pipe. Use process substitution 'read "+varName+" < <(...)' or read from file instead",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
		if m := whilePipeRead.FindStringSubmatchIndex(line); m != nil {
			varName := line[m[2]:m[3]]
			out = append(out, diag.New("SC2098", diag.Warning,
				"Variable '"+varName+"' and loop body execute in subshell due to pipe. Variables set in loop won't be visible outside. Use process substitution instead",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
		if m := subshellAssignment.FindStringSubmatchIndex(line); m != nil {
			if strings.Contains(line, "function ") {
				return
			}
			varName := line[m[2]:m[3]]
			out = append(out, diag.New("SC2098", diag.Info,
				"Variable '"+varName+"' is assigned in a subshell and won't be visible in the parent shell",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
	})
	return out
}
