package sc

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// outputCommands lists commands where a lone brace argument is suspicious.
var outputCommands = []string{"echo", "printf", "cat", "print"}

type sc1083Rule struct{}

func NewSC1083Rule() rules.Rule { return sc1083Rule{} }

func (sc1083Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC1083",
		Name:             "literal-brace",
		Description:      "This `{` or `}` is literal. Check expression (missing `;`?) or quote it",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc1083Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		trimmed := strings.TrimLeft(line, " \t")
		for _, cmd := range outputCommands {
			rest, ok := strings.CutPrefix(trimmed, cmd)
			if !ok || rest == "" || !isSpace(rest[0]) {
				continue
			}
			for _, arg := range strings.Fields(strings.TrimLeft(rest, " \t")) {
				if strings.ContainsAny(arg, ",") || strings.Contains(arg, "..") {
					continue
				}
				if strings.Contains(arg, "${") {
					continue
				}
				if strings.HasPrefix(arg, `"`) || strings.HasPrefix(arg, "'") {
					continue
				}
				if strings.HasPrefix(arg, ">") || strings.HasPrefix(arg, "<") {
					continue
				}
				if arg == "{" || arg == "}" {
					out = append(out, diag.New(
						"SC1083", diag.Warning,
						"SC1083: This "+arg+" is literal in "+cmd+". Check expression (missing `;`?) or quote it",
						diag.NewSpan(lineNum, 1, lineNum, len(line)),
					))
				}
			}
		}
	})
	return out
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }
