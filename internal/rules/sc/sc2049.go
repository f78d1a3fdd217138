package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	regexMatchDoubleQuoted = regexp.MustCompile(`=~\s*"([^"]+)"`)
	regexMatchSingleQuoted = regexp.MustCompile(`=~\s*'([^']+)'`)
)

type sc2049Rule struct{}

func NewSC2049Rule() rules.Rule { return sc2049Rule{} }

func (sc2049Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2049",
		Name:             "regex-match-literal-string",
		Description:      "=~ is for regex matching. Use == for literal string comparisons",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2049Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if !strings.Contains(line, "[[") {
			return
		}
		if m := regexMatchDoubleQuoted.FindStringSubmatchIndex(line); m != nil {
			pattern := line[m[2]:m[3]]
			out = append(out, diag.New("SC2049", diag.Warning,
				`=~ is for regex matching. Use == for literal string comparison with "`+pattern+`"`,
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
			return
		}
		if m := regexMatchSingleQuoted.FindStringSubmatchIndex(line); m != nil {
			pattern := line[m[2]:m[3]]
			out = append(out, diag.New("SC2049", diag.Warning,
				"=~ is for regex matching. Use == for literal string comparison with '"+pattern+"'",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
	})
	return out
}
