package make

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

type make016Rule struct{}

func NewMAKE016Rule() rules.Rule { return make016Rule{} }

func (make016Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "MAKE016",
		Name:             "unquoted-prerequisite-variable",
		Description:      "Unquoted $(VAR)/${VAR} in prerequisites breaks on filenames containing spaces",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryMake,
		EnabledByDefault: true,
	}
}

func (make016Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		if !isMakeTargetLine(line) {
			continue
		}
		colon := strings.Index(line, ":")
		prereqs := strings.TrimSpace(line[colon+1:])
		if prereqs == "" {
			continue
		}
		for _, v := range findUnquotedVariables(prereqs) {
			out = append(out, diag.New(
				"MAKE016", diag.Warning,
				"Unquoted variable '"+v+"' in prerequisites - may break with spaces in filenames",
				diag.NewSpan(i+1, 1, i+1, len(line)),
			).WithFix(diag.NewFix(strings.Replace(line, v, `"`+v+`"`, 1)).WithSafety(diag.SafeWithAssumptions).WithAssumptions(
				"Quoting the prerequisite does not change which files Make resolves it to",
			)))
		}
	}
	return out
}

func findUnquotedVariables(prereqs string) []string {
	var vars []string
	inQuote := false
	for i := 0; i < len(prereqs); i++ {
		c := prereqs[i]
		if c == '"' {
			inQuote = !inQuote
			continue
		}
		if c != '$' || inQuote {
			continue
		}
		if i+1 >= len(prereqs) {
			continue
		}
		next := prereqs[i+1]
		if next != '(' && next != '{' {
			continue
		}
		ref, ok := extractVariableRef(prereqs[i:])
		if !ok || isAutomaticVariable(ref) {
			continue
		}
		vars = append(vars, ref)
	}
	return vars
}

func extractVariableRef(s string) (string, bool) {
	var close byte
	switch {
	case strings.HasPrefix(s, "$("):
		close = ')'
	case strings.HasPrefix(s, "${"):
		close = '}'
	default:
		return "", false
	}
	idx := strings.IndexByte(s, close)
	if idx < 0 {
		return "", false
	}
	return s[:idx+1], true
}

func isAutomaticVariable(v string) bool {
	content := strings.TrimSuffix(strings.TrimSuffix(
		strings.TrimPrefix(strings.TrimPrefix(v, "$("), "${"), ")"), "}")
	if len(content) != 1 {
		return false
	}
	switch content[0] {
	case '@', '<', '^', '?', '*', '+':
		return true
	}
	return false
}
