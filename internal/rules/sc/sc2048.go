package sc

import (
	"regexp"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// sc2048Star matches a bare, unquoted `$*`. Unlike `"$@"`, `$*` always
// joins arguments with the first char of IFS, so the fix direction
// (quote "$@" rather than quote "$*") differs from SC2068's generic
// quoting advice, warranting its own code per the spec's tie-break rule
// that overlapping rules may both emit.
var sc2048Star = regexp.MustCompile(`\$\*`)

type sc2048Rule struct{}

func NewSC2048Rule() rules.Rule { return sc2048Rule{} }

func (sc2048Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2048",
		Name:             "prefer-quoted-at-over-star",
		Description:      `Use "$@" (with quotes) to prevent whitespace problems`,
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2048Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		for _, loc := range sc2048Star.FindAllStringIndex(line, -1) {
			start, end := loc[0], loc[1]
			if isInsideQuotes(line, start) {
				continue
			}
			out = append(out, diag.New("SC2048", diag.Warning,
				`Use "$@" (with quotes) to prevent whitespace problems`,
				diag.NewSpan(lineNum, start+1, lineNum, end),
			).WithFix(diag.NewFix(`"$@"`).WithSafety(diag.SafeWithAssumptions).
				WithAssumptions("each positional parameter should be treated as a separate word")))
		}
	})
	return out
}
