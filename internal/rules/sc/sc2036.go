package sc

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

func isQuoteByte(b byte) bool { return b == '"' || b == '\'' }

// findUnescapedQuoteInBackticks scans chars from the opening backtick at
// start and returns the index of the first unescaped quote before the
// closing backtick, or -1 if none is found.
func findUnescapedQuoteInBackticks(chars []byte, start int) int {
	for i := start + 1; i < len(chars) && chars[i] != '`'; i++ {
		if isQuoteByte(chars[i]) && !(i > 0 && chars[i-1] == '\\') {
			return i
		}
	}
	return -1
}

type sc2036Rule struct{}

func NewSC2036Rule() rules.Rule { return sc2036Rule{} }

func (sc2036Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2036",
		Name:             "unescaped-quote-in-backticks",
		Description:      "Quotes in backticks need escaping. Use $( ) instead or escape quotes",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2036Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if !strings.Contains(line, "`") || (!strings.Contains(line, `"`) && !strings.Contains(line, "'")) {
			return
		}
		chars := []byte(line)
		for i := 0; i < len(chars); i++ {
			if chars[i] != '`' {
				continue
			}
			if q := findUnescapedQuoteInBackticks(chars, i); q >= 0 {
				out = append(out, diag.New(
					"SC2036", diag.Warning,
					`Quotes in backticks need escaping. Use $( ) instead or escape with \"`,
					diag.NewSpan(lineNum, i+1, lineNum, q+1),
				))
				// advance past this backtick expression to avoid duplicate reports
				if end := strings.IndexByte(line[i+1:], '`'); end >= 0 {
					i += end + 1
				}
			}
		}
	})
	return out
}
