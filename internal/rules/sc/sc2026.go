package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// unquotedEquals matches a word with two `=` signs, the shape of an
// ambiguous unquoted assignment-looking token like `PATH=$PATH:/new`.
var unquotedEquals = regexp.MustCompile(`\b([a-zA-Z_][a-zA-Z0-9_]*=[a-zA-Z0-9_/.:-]+=[a-zA-Z0-9_/.:-]+)\b`)

func isSimpleAssignment(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.Contains(trimmed, "=") && !strings.Contains(trimmed, " ") {
		return strings.Count(trimmed, "=") == 1
	}
	return false
}

type sc2026Rule struct{}

func NewSC2026Rule() rules.Rule { return sc2026Rule{} }

func (sc2026Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2026",
		Name:             "unquoted-multi-equals",
		Description:      "This word is not properly quoted and contains multiple '=' signs",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2026Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if isSimpleAssignment(line) {
			return
		}
		for _, m := range unquotedEquals.FindAllStringIndex(line, -1) {
			match := line[m[0]:m[1]]
			if isInsideQuotes(line, m[0]) {
				continue
			}
			out = append(out, diag.New(
				"SC2026", diag.Warning,
				"This word '"+match+"' contains multiple '=' signs. Quote it to prevent word splitting",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1]),
			))
		}
	})
	return out
}
