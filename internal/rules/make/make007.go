package make

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var silentCommands = []string{"echo", "printf"}

type make007Rule struct{}

func NewMAKE007Rule() rules.Rule { return make007Rule{} }

func (make007Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "MAKE007",
		Name:             "silent-recipe-errors",
		Description:      "echo/printf recipe command missing the @ prefix, doubling its output",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryMake,
		EnabledByDefault: true,
	}
}

func (make007Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		if !strings.HasPrefix(line, "\t") {
			continue
		}
		if i > 0 && strings.HasSuffix(strings.TrimRight(lines[i-1], "\n"), "\\") {
			continue
		}
		trimmed := strings.TrimLeft(strings.TrimPrefix(line, "\t"), " \t")
		if strings.HasPrefix(trimmed, "@") {
			continue
		}
		for _, cmd := range silentCommands {
			if !isMakeCommandWord(trimmed, cmd) {
				continue
			}
			fix := strings.Replace(line, "\t", "\t@", 1)
			out = append(out, diag.New(
				"MAKE007", diag.Warning,
				"Command '"+cmd+"' without @ prefix - will show duplicate output",
				diag.NewSpan(i+1, 1, i+1, len(line)),
			).WithFix(diag.NewFix(fix).WithSafety(diag.Safe)))
			break
		}
	}
	return out
}

func isMakeCommandWord(line, cmd string) bool {
	if !strings.HasPrefix(line, cmd) {
		return false
	}
	if len(line) == len(cmd) {
		return true
	}
	next := line[len(cmd)]
	return next == ' ' || next == '\t'
}
