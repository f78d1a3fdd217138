package sc

import (
	"regexp"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	sc2076Bracket    = regexp.MustCompile(`\[\[(.*?)\]\]`)
	sc2076RegexMatch = regexp.MustCompile(`=~\s+"([^"]+)"`)
)

type sc2076Rule struct{}

func NewSC2076Rule() rules.Rule { return sc2076Rule{} }

func (sc2076Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2076",
		Name:             "quoted-regex-rhs",
		Description:      "Don't quote right-hand side of =~, it'll match literally rather than as a regex",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2076Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		for _, bm := range sc2076Bracket.FindAllStringSubmatchIndex(line, -1) {
			bracketStart, bracketContentStart, bracketContentEnd := bm[0], bm[2], bm[3]
			content := line[bracketContentStart:bracketContentEnd]
			rm := sc2076RegexMatch.FindStringSubmatchIndex(content)
			if rm == nil {
				continue
			}
			quotedRegex := content[rm[2]:rm[3]]
			absStart := bracketStart + 2 + rm[0]
			absEnd := bracketStart + 2 + rm[1]
			out = append(out, diag.New(
				"SC2076", diag.Warning,
				"Don't quote right-hand side of =~ (regex will be treated as literal string)",
				diag.NewSpan(lineNum, absStart+1, lineNum, absEnd),
			).WithFix(diag.NewFix("=~ " + quotedRegex)))
		}
	})
	return out
}
