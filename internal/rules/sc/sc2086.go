package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// sc2086Var matches a bare `$name` or `${name}` variable reference. Single
// special parameters ($@, $*, $?, $$, $!, $#, $0-9) are excluded: $@/$*
// are SC2068's/SC2048's concern, and the rest rarely contain whitespace
// that word-splitting could act on.
var sc2086Var = regexp.MustCompile(`\$(?:\{[a-zA-Z_][a-zA-Z0-9_]*\}|[a-zA-Z_][a-zA-Z0-9_]*)`)

type sc2086Rule struct{}

func NewSC2086Rule() rules.Rule { return sc2086Rule{} }

func (sc2086Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2086",
		Name:             "quote-variable-expansion",
		Description:      "Double quote to prevent globbing and word splitting",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

// sc2086IsAssignmentRHS reports whether the char immediately before a
// match is a bare `=` (simple assignment), where word splitting never
// applies to the expansion — `x=$y` is safe unquoted, `echo $y` is not.
func sc2086IsAssignmentRHS(line string, pos int) bool {
	if pos == 0 {
		return false
	}
	return line[pos-1] == '=' && (pos < 2 || line[pos-2] != '=')
}

// sc2086IsArithmeticContext reports whether pos falls inside a `$(( ))` or
// `(( ))` arithmetic expansion earlier on the same line, where bash does
// not word-split or glob.
func sc2086IsArithmeticContext(line string, pos int) bool {
	before := line[:pos]
	open := strings.Count(before, "((")
	closeCount := strings.Count(before, "))")
	return open > closeCount
}

func (sc2086Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		for _, loc := range sc2086Var.FindAllStringIndex(line, -1) {
			start, end := loc[0], loc[1]
			if isInsideQuotes(line, start) {
				continue
			}
			if sc2086IsAssignmentRHS(line, start) {
				continue
			}
			if sc2086IsArithmeticContext(line, start) {
				continue
			}
			matched := line[start:end]
			out = append(out, diag.New("SC2086", diag.Warning,
				"Double quote to prevent globbing and word splitting",
				diag.NewSpan(lineNum, start+1, lineNum, end),
			).WithFix(diag.NewFix(`"` + matched + `"`)))
		}
	})
	return out
}
