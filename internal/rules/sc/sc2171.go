package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	trailingBracket = regexp.MustCompile(`^\s*\]`)
	heredocStart    = regexp.MustCompile(`<<-?\s*'?(\w+)'?`)
)

type sc2171Rule struct{}

func NewSC2171Rule() rules.Rule { return sc2171Rule{} }

func (sc2171Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2171",
		Name:             "trailing-bracket-without-open",
		Description:      "Found trailing ] without opening [",
		DefaultSeverity:  diag.Error,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2171Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")

	var out []diag.Diagnostic
	inHeredoc := false
	var heredocMarker string

	for i, line := range lines {
		lineNum := i + 1

		if !inHeredoc {
			if m := heredocStart.FindStringSubmatch(line); m != nil {
				heredocMarker = m[1]
				inHeredoc = true
				continue
			}
		}
		if inHeredoc {
			if strings.TrimSpace(line) == heredocMarker {
				inHeredoc = false
				heredocMarker = ""
			}
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if trailingBracket.MatchString(line) {
			startCol := strings.Index(line, "]")
			if startCol < 0 {
				startCol = 0
			}
			out = append(out, diag.New("SC2171", diag.Error,
				"Found trailing ] without opening [",
				diag.NewSpan(lineNum, startCol+1, lineNum, startCol+1)))
		}
	}
	return out
}
