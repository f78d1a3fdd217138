package sc

import (
	"regexp"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var sc2068Simple = regexp.MustCompile(`\$[@*]`)
var sc2068Array = regexp.MustCompile(`\$\{[a-zA-Z_][a-zA-Z0-9_]*\[[@*]\]\}`)

type sc2068Rule struct{}

func NewSC2068Rule() rules.Rule { return sc2068Rule{} }

func (sc2068Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2068",
		Name:             "quote-array-expansions",
		Description:      "Double quote array expansions to prevent globbing and word splitting",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2068Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		for _, loc := range sc2068Simple.FindAllStringIndex(line, -1) {
			if isInsideQuotes(line, loc[0]) {
				continue
			}
			matched := line[loc[0]:loc[1]]
			out = append(out, diag.New("SC2068", diag.Warning,
				"Double quote to prevent globbing and word splitting on $@/$*",
				diag.NewSpan(lineNum, loc[0]+1, lineNum, loc[1]),
			).WithFix(diag.NewFix(`"` + matched + `"`)))
		}
		for _, loc := range sc2068Array.FindAllStringIndex(line, -1) {
			if isInsideQuotes(line, loc[0]) {
				continue
			}
			matched := line[loc[0]:loc[1]]
			out = append(out, diag.New("SC2068", diag.Warning,
				"Double quote to prevent globbing and word splitting on array expansion",
				diag.NewSpan(lineNum, loc[0]+1, lineNum, loc[1]),
			).WithFix(diag.NewFix(`"` + matched + `"`)))
		}
	})
	return out
}
