package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var trapVarPattern = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*)`)

func extractTrapVariables(trapLine string) []string {
	matches := trapVarPattern.FindAllStringSubmatch(trapLine, -1)
	vars := make([]string, 0, len(matches))
	for _, m := range matches {
		vars = append(vars, m[1])
	}
	return vars
}

func lineHasAssignment(line, varName string) bool {
	return strings.Contains(line, varName+"=") ||
		strings.Contains(line, "readonly "+varName+"=") ||
		strings.Contains(line, "local "+varName+"=")
}

// isIntentionalEarlyExpansion reports whether any variable referenced in a
// trap command is assigned on the same line or within the preceding 3 lines,
// treating the early expansion as deliberate rather than a quoting mistake.
func isIntentionalEarlyExpansion(lines []string, trapLineIdx int, trapLine string) bool {
	trapVars := extractTrapVariables(trapLine)
	if len(trapVars) == 0 {
		return false
	}
	for _, v := range trapVars {
		if lineHasAssignment(trapLine, v) {
			return true
		}
	}
	start := trapLineIdx - 3
	if start < 0 {
		start = 0
	}
	for i := start; i < trapLineIdx; i++ {
		for _, v := range trapVars {
			if lineHasAssignment(lines[i], v) {
				return true
			}
		}
	}
	return false
}

func hasTrapDoubleQuotedVar(line string) bool {
	return strings.Contains(line, "trap") && strings.Contains(line, `"`) && strings.Contains(line, "$")
}

type sc2064Rule struct{}

func NewSC2064Rule() rules.Rule { return sc2064Rule{} }

func (sc2064Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2064",
		Name:             "trap-variable-early-expansion",
		Description:      "Use single quotes, otherwise this expands now rather than when signalled",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2064Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for idx, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if !hasTrapDoubleQuotedVar(line) {
			continue
		}
		if isIntentionalEarlyExpansion(lines, idx, line) {
			continue
		}
		pos := strings.Index(line, "trap")
		out = append(out, diag.New(
			"SC2064", diag.Warning,
			"Use single quotes, otherwise this expands now rather than when signalled",
			diag.NewSpan(idx+1, pos+1, idx+1, len(line)),
		))
	}
	return out
}
