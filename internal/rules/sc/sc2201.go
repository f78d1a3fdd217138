package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	assignmentWithBraces = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=([^=\s]*\{[a-zA-Z0-9_,./\-]+\}[^\s]*)`)
	sc2201BraceExpansion = regexp.MustCompile(`\{[a-zA-Z0-9_./\-]+[,.]\.?[a-zA-Z0-9_./\-,]+\}`)
)

func sc2201HasBraceExpansion(value string) bool {
	for _, m := range sc2201BraceExpansion.FindAllStringIndex(value, -1) {
		start := m[0]
		if start > 0 && value[start-1] == '$' {
			continue
		}
		return true
	}
	return false
}

type sc2201Rule struct{}

func NewSC2201Rule() rules.Rule { return sc2201Rule{} }

func (sc2201Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2201",
		Name:             "brace-expansion-in-assignment",
		Description:      "Brace expansion doesn't happen in assignments. Use a loop or array",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2201Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "=(") {
			return
		}
		m := assignmentWithBraces.FindStringSubmatchIndex(trimmed)
		if m == nil {
			return
		}
		varName := trimmed[m[2]:m[3]]
		value := trimmed[m[4]:m[5]]
		if !sc2201HasBraceExpansion(value) {
			return
		}
		out = append(out, diag.New(
			"SC2201", diag.Warning,
			"Brace expansion doesn't happen in assignments. Use an array "+varName+"=(...) or a loop instead",
			diag.NewSpan(lineNum, m[0]+1, lineNum, m[1]),
		))
	})
	return out
}
