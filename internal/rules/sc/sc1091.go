package sc

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// isLiteralSourcePath reports whether arg looks like a constant path
// rather than a variable expansion (which SC1090 would cover instead).
func isLiteralSourcePath(arg string) bool {
	arg = strings.TrimSpace(arg)
	if arg == "" || strings.HasPrefix(arg, "$") {
		return false
	}
	return true
}

func extractSourcePath(arg string) string {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return arg
	}
	return strings.Trim(fields[0], `"'`)
}

type sc1091Rule struct{}

func NewSC1091Rule() rules.Rule { return sc1091Rule{} }

func (sc1091Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC1091",
		Name:             "not-following-source",
		Description:      "Not following sourced file: use shellcheck -x to follow sourced files",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc1091Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		trimmed := strings.TrimLeft(line, " \t")
		emit := func(arg string) {
			path := extractSourcePath(arg)
			out = append(out, diag.New(
				"SC1091", diag.Info,
				"SC1091: Not following: "+path+". Use shellcheck -x to follow sourced files",
				diag.NewSpan(lineNum, 1, lineNum, len(line)),
			))
		}
		if rest, ok := strings.CutPrefix(trimmed, "source"); ok && rest != "" && isSpace(rest[0]) {
			arg := strings.TrimLeft(rest, " \t")
			if isLiteralSourcePath(arg) {
				emit(arg)
			}
			return
		}
		if strings.HasPrefix(trimmed, ". ") || trimmed == "." {
			arg := strings.TrimLeft(trimmed[1:], " \t")
			if isLiteralSourcePath(arg) {
				emit(arg)
			}
		}
	})
	return out
}
