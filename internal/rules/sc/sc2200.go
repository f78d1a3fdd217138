package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	sc2200BraceExpansion = regexp.MustCompile(`\{[a-zA-Z0-9_/.]+([,]|\.\.)[a-zA-Z0-9_/.]*\}`)
	sc2200DoubleBracket  = regexp.MustCompile(`\[\[.*?\]\]`)
)

type sc2200Rule struct{}

func NewSC2200Rule() rules.Rule { return sc2200Rule{} }

func (sc2200Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2200",
		Name:             "brace-expansion-in-test",
		Description:      "Brace expansion doesn't happen in [[ ]]. Use separate statements or [ ]",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2200Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if !strings.Contains(line, "[[") {
			return
		}
		if strings.Contains(line, " =~ ") || strings.Contains(line, "]=~") {
			return
		}
		for _, bm := range sc2200DoubleBracket.FindAllStringIndex(line, -1) {
			bracketText := line[bm[0]:bm[1]]
			if sc2200BraceExpansion.MatchString(bracketText) {
				out = append(out, diag.New(
					"SC2200", diag.Warning,
					"Brace expansion doesn't happen in [[ ]]. Use separate comparisons or a case statement instead",
					diag.NewSpan(lineNum, bm[0]+1, lineNum, bm[1]),
				))
				break
			}
		}
	})
	return out
}
