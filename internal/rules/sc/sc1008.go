package sc

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// knownShells lists interpreter basenames the shebang rule accepts
// without complaint.
var knownShells = map[string]bool{
	"bash": true, "sh": true, "dash": true, "zsh": true,
	"ksh": true, "csh": true, "tcsh": true, "fish": true, "ash": true,
}

// shebangInterpreter extracts the interpreter name from a shebang line,
// handling both `#!/path/to/shell` and `#!/usr/bin/env shell` forms.
func shebangInterpreter(shebang string) string {
	trimmed := strings.TrimSpace(strings.TrimPrefix(shebang, "#!"))
	if trimmed == "" {
		return ""
	}
	parts := strings.Fields(trimmed)
	if len(parts) == 0 {
		return ""
	}
	if strings.HasSuffix(parts[0], "/env") && len(parts) > 1 {
		for _, p := range parts[1:] {
			if !strings.HasPrefix(p, "-") {
				return p
			}
		}
		return ""
	}
	path := parts[0]
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

type sc1008Rule struct{}

func NewSC1008Rule() rules.Rule { return sc1008Rule{} }

func (sc1008Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC1008",
		Name:             "unrecognized-shebang",
		Description:      "Unrecognized shebang interpreter",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc1008Rule) Check(input rules.LintInput) []diag.Diagnostic {
	source := string(input.Source)
	nl := strings.IndexByte(source, '\n')
	firstLine := source
	if nl >= 0 {
		firstLine = source[:nl]
	}
	if !strings.HasPrefix(strings.TrimSpace(firstLine), "#!") {
		return nil
	}
	interp := shebangInterpreter(firstLine)
	if interp == "" || knownShells[interp] {
		return nil
	}
	known := make([]string, 0, len(knownShells))
	for _, s := range []string{"bash", "sh", "dash", "zsh", "ksh", "csh", "tcsh", "fish", "ash"} {
		known = append(known, s)
	}
	return []diag.Diagnostic{diag.New(
		"SC1008", diag.Warning,
		"Unrecognized shebang interpreter '"+interp+"'. Expected one of: "+strings.Join(known, ", "),
		diag.NewSpan(1, 1, 1, len(firstLine)),
	)}
}
