package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var sc2032Assignment = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)=`)

var sc2032SpecialVars = map[string]bool{"PATH": true, "IFS": true, "PS1": true, "HOME": true}

type sc2032Rule struct{}

func NewSC2032Rule() rules.Rule { return sc2032Rule{} }

func (sc2032Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2032",
		Name:             "script-variable-not-exported",
		Description:      "Use own script's variable. To set/use it, source script or remove shebang",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2032Rule) Check(input rules.LintInput) []diag.Diagnostic {
	source := string(input.Source)
	lines := strings.Split(source, "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "#!") {
		return nil
	}

	var out []diag.Diagnostic
	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "export ") ||
			strings.HasPrefix(trimmed, "local ") ||
			strings.HasPrefix(trimmed, "readonly ") {
			continue
		}
		m := sc2032Assignment.FindStringSubmatchIndex(trimmed)
		if m == nil {
			continue
		}
		varName := trimmed[m[2]:m[3]]
		if sc2032SpecialVars[varName] {
			continue
		}
		pos := strings.Index(line, varName)
		if pos < 0 {
			pos = 0
		}
		out = append(out, diag.New(
			"SC2032", diag.Info,
			"Variable '"+varName+"' assigned in script with shebang. To affect the caller, source this script or remove the shebang",
			diag.NewSpan(lineNum, pos+1, lineNum, pos+len(varName)),
		))
	}
	return out
}
