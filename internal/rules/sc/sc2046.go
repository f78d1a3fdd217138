package sc

import (
	"regexp"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// sc2046CmdSub matches a single-level (non-nested) `$(...)` command
// substitution. Nested substitutions are rare enough in practice that a
// one-level match covers the common case the rule targets.
var sc2046CmdSub = regexp.MustCompile(`\$\([^()]*\)`)

type sc2046Rule struct{}

func NewSC2046Rule() rules.Rule { return sc2046Rule{} }

func (sc2046Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2046",
		Name:             "quote-command-substitution",
		Description:      "Quote this to prevent word splitting on command substitution",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2046Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		for _, loc := range sc2046CmdSub.FindAllStringIndex(line, -1) {
			start, end := loc[0], loc[1]
			if isInsideQuotes(line, start) {
				continue
			}
			if sc2086IsAssignmentRHS(line, start) {
				continue
			}
			matched := line[start:end]
			out = append(out, diag.New("SC2046", diag.Warning,
				"Quote this to prevent word splitting",
				diag.NewSpan(lineNum, start+1, lineNum, end),
			).WithFix(diag.NewFix(`"` + matched + `"`)))
		}
	})
	return out
}
