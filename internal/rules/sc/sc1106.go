package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// singleBracketContent matches a `[ ... ]` test (not `[[ ... ]]`) and
// captures its inner content; the match indices give its position.
var singleBracketContent = regexp.MustCompile(`\[\s+([^\[\]]*\S)\s*\]`)

type sc1106Rule struct{}

func NewSC1106Rule() rules.Rule { return sc1106Rule{} }

func (sc1106Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC1106",
		Name:             "numeric-compare-in-single-bracket",
		Description:      "Use -lt/-gt instead of </> for numeric comparison in [ ]",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc1106Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.Contains(trimmed, "[[") {
			return
		}
		m := singleBracketContent.FindStringSubmatchIndex(line)
		if m == nil {
			return
		}
		content := line[m[2]:m[3]]
		contentStart := m[2]
		for offset, ch := range content {
			if ch != '<' && ch != '>' {
				continue
			}
			beforeOK := offset == 0 || content[offset-1] == ' '
			afterOK := offset+1 >= len(content) || content[offset+1] == ' '
			if !beforeOK || !afterOK {
				continue
			}
			replacement := "-gt"
			if ch == '<' {
				replacement = "-lt"
			}
			col := contentStart + offset
			out = append(out, diag.New(
				"SC1106", diag.Warning,
				"In [ ], use "+replacement+" instead of '"+string(ch)+"' for numeric comparison. The '"+string(ch)+"' is a shell redirection in [ ].",
				diag.NewSpan(lineNum, col+1, lineNum, col+1),
			).WithFix(diag.NewFix(replacement).WithSafety(diag.Unsafe).WithAlternatives(replacement)))
		}
	})
	return out
}
