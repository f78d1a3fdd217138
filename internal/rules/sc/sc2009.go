package sc

import (
	"regexp"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var sc2009Pattern = regexp.MustCompile(`ps\s+[^|]*\|\s*grep`)

type sc2009Rule struct{}

func NewSC2009Rule() rules.Rule { return sc2009Rule{} }

func (sc2009Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2009",
		Name:             "use-pgrep-over-ps-grep",
		Description:      "Consider using pgrep instead of grepping ps output",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2009Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		loc := sc2009Pattern.FindStringIndex(line)
		if loc == nil {
			return
		}
		out = append(out, diag.New(
			"SC2009", diag.Info,
			"Consider using pgrep instead of grepping ps output. pgrep is more reliable and efficient.",
			diag.NewSpan(lineNum, loc[0]+1, lineNum, loc[1]),
		).WithFix(diag.NewFix("pgrep").WithSafety(diag.SafeWithAssumptions).
			WithAssumptions("pgrep is available on the system", "Simple process name matching is sufficient").
			WithAlternatives("pgrep -f pattern  # Match full command line", "pgrep -u user pattern  # Match specific user")))
	})
	return out
}
