package make

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// internalVars are Make-internal build variables that subprocesses
// almost never need in their environment.
var internalVars = map[string]bool{
	"CC": true, "CXX": true, "AR": true, "LD": true, "AS": true,
	"CFLAGS": true, "CXXFLAGS": true, "LDFLAGS": true,
	"SOURCES": true, "OBJECTS": true, "TARGET": true,
	"PREFIX": true, "DESTDIR": true, "BINDIR": true,
}

type make019Rule struct{}

func NewMAKE019Rule() rules.Rule { return make019Rule{} }

func (make019Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "MAKE019",
		Name:             "env-var-pollution",
		Description:      "export of a Make-internal build variable pollutes the subprocess environment",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryMake,
		EnabledByDefault: true,
	}
}

func (make019Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "export ") {
			continue
		}
		name, ok := extractExportVarName(trimmed)
		if !ok || !internalVars[name] {
			continue
		}
		out = append(out, diag.New(
			"MAKE019", diag.Warning,
			"Unnecessary export of '"+name+"' - variable is Make-internal and doesn't need to be in environment",
			diag.NewSpan(i+1, 1, i+1, len(line)),
		).WithFix(diag.NewFix(strings.Replace(line, "export ", "", 1)).WithSafety(diag.Safe)))
	}
	return out
}

func extractExportVarName(line string) (string, bool) {
	after, ok := strings.CutPrefix(line, "export ")
	if !ok {
		return "", false
	}
	eq := strings.Index(after, "=")
	if eq < 0 {
		return "", false
	}
	return strings.TrimSpace(after[:eq]), true
}
