package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	sc2031Assignment = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)=`)
	sc2031VarUsage   = regexp.MustCompile(`\$\{?([a-zA-Z_][a-zA-Z0-9_]*)\}?`)
)

// lineHasStandaloneSubshell reports whether line contains a `(` that is
// not part of `$(` command substitution.
func lineHasStandaloneSubshell(line string) bool {
	if !strings.Contains(line, "(") || !strings.Contains(line, ")") {
		return false
	}
	for i, ch := range line {
		if ch == '(' && (i == 0 || line[i-1] != '$') {
			return true
		}
	}
	return false
}

type sc2031Rule struct{}

func NewSC2031Rule() rules.Rule { return sc2031Rule{} }

func (sc2031Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2031",
		Name:             "variable-modified-in-subshell",
		Description:      "Variable was modified in a subshell. Double check or use var=$(cmd)",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2031Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	subshellVars := make(map[string]bool)
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if lineHasStandaloneSubshell(line) {
			for _, m := range sc2031Assignment.FindAllStringSubmatchIndex(line, -1) {
				before := line[:m[0]]
				quoteCount := strings.Count(before, `"`) + strings.Count(before, `'`)
				if quoteCount%2 == 1 {
					continue
				}
				subshellVars[line[m[2]:m[3]]] = true
			}
		}
		for _, m := range sc2031VarUsage.FindAllStringSubmatchIndex(line, -1) {
			name := line[m[2]:m[3]]
			if subshellVars[name] {
				out = append(out, diag.New(
					"SC2031", diag.Warning,
					"Variable '"+name+"' was modified in a subshell. That change is lost; double-check or use var=$(cmd)",
					diag.NewSpan(lineNum, m[0]+1, lineNum, m[1]),
				))
			}
		}
	})
	return out
}
