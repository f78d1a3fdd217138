package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var numericOpLikelyString = regexp.MustCompile(`(-eq|-ne|-lt|-le|-gt|-ge)\s+"([^"]*[A-Za-z_.\-][^"]*)"`)

func sc2170LooksNumeric(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}

type sc2170Rule struct{}

func NewSC2170Rule() rules.Rule { return sc2170Rule{} }

func (sc2170Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2170",
		Name:             "numeric-operator-on-string",
		Description:      "Numerical -gt, -eq, etc. operators only work on integers. Use string operators like = instead",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2170Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if strings.Contains(line, "[[") {
			return
		}
		for _, m := range numericOpLikelyString.FindAllStringSubmatchIndex(line, -1) {
			opStart, opEnd := m[2], m[3]
			valStart, valEnd := m[4], m[5]
			op := line[opStart:opEnd]
			val := line[valStart:valEnd]
			if sc2170LooksNumeric(val) {
				continue
			}
			if strings.HasPrefix(val, "$") {
				continue
			}
			display := val
			if len(display) > 20 {
				display = display[:20] + "..."
			}
			out = append(out, diag.New(
				"SC2170", diag.Warning,
				`Numerical `+op+` operator used with string "`+display+`". Use string operators like = instead`,
				diag.NewSpan(lineNum, opStart+1, lineNum, opEnd),
			))
		}
	})
	return out
}
