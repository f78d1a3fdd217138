package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	sc2133ArithExpr      = regexp.MustCompile(`\$\(\(([^)]+)\)\)`)
	sc2133VarName        = regexp.MustCompile(`\b([a-zA-Z_][a-zA-Z0-9_]*)\b`)
	sc2133IncompleteArith = regexp.MustCompile(`\$\(\([^)]*[+\-*/]\s*\)\)`)
)

func sc2133AllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

type sc2133Rule struct{}

func NewSC2133Rule() rules.Rule { return sc2133Rule{} }

func (sc2133Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2133",
		Name:             "arithmetic-unexpected-tokens",
		Description:      "Unexpected tokens in arithmetic expansion, such as variables missing their $ prefix",
		DefaultSeverity:  diag.Error,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2133Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		for _, am := range sc2133ArithExpr.FindAllStringIndex(line, -1) {
			arithContent := line[am[0]:am[1]]
			for _, vm := range sc2133VarName.FindAllStringSubmatchIndex(arithContent, -1) {
				varStart, varEnd := vm[2], vm[3]
				varName := arithContent[varStart:varEnd]
				if varStart > 0 && arithContent[varStart-1] == '$' {
					continue
				}
				if sc2133AllDigits(varName) {
					continue
				}
				absStart := am[0] + varStart
				absEnd := absStart + len(varName)
				out = append(out, diag.New(
					"SC2133", diag.Error,
					"Use $"+varName+" instead of "+varName+" in arithmetic. Variables need $ prefix",
					diag.NewSpan(lineNum, absStart+1, lineNum, absEnd),
				))
			}
		}

		for _, m := range sc2133IncompleteArith.FindAllStringIndex(line, -1) {
			expr := line[m[0]:m[1]]
			trimmed := strings.TrimRight(strings.TrimSpace(strings.TrimRight(expr, ")")), " \t")
			if trimmed == "" {
				continue
			}
			last := trimmed[len(trimmed)-1]
			if last == '+' || last == '-' || last == '*' || last == '/' {
				out = append(out, diag.New(
					"SC2133", diag.Error,
					"Incomplete arithmetic expression - missing operand after operator",
					diag.NewSpan(lineNum, m[0]+1, lineNum, m[1]),
				))
			}
		}
	})
	return out
}
