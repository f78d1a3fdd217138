package sc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	commandVarAssignment = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)=["']?([a-z_][a-z0-9_-]*)["']?\s*$`)
	commandVarUsage      = regexp.MustCompile(`^\s*\$(\{)?([a-zA-Z_][a-zA-Z0-9_]*)(\})?`)
)

type sc2194Rule struct{}

func NewSC2194Rule() rules.Rule { return sc2194Rule{} }

func (sc2194Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2194",
		Name:             "constant-command-in-variable",
		Description:      "This word is constant - consider using the command name directly instead of a variable",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2194Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic

	for i, line := range lines {
		lineNum := i + 1
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		am := commandVarAssignment.FindStringSubmatch(strings.TrimSpace(line))
		if am == nil {
			continue
		}
		varName, commandName := am[1], am[2]

		for j := i + 1; j < len(lines); j++ {
			nextTrimmed := strings.TrimSpace(lines[j])
			if nextTrimmed == "" || strings.HasPrefix(nextTrimmed, "#") {
				continue
			}
			um := commandVarUsage.FindStringSubmatchIndex(nextTrimmed)
			if um != nil {
				usedVar := nextTrimmed[um[4]:um[5]]
				if usedVar == varName {
					dollarPos := strings.Index(lines[j], "$")
					if dollarPos < 0 {
						dollarPos = 0
					}
					startCol := dollarPos + 1
					endCol := startCol + (um[1] - um[0]) - 1
					out = append(out, diag.New(
						"SC2194", diag.Info,
						"This variable '"+varName+"' is constant (assigned '"+commandName+"' on line "+strconv.Itoa(lineNum)+"). Consider using '"+commandName+"' directly",
						diag.NewSpan(j+1, startCol, j+1, endCol),
					))
				}
			}
			break
		}
	}
	return out
}
