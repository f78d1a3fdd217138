package sc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var sc2129AppendRedirect = regexp.MustCompile(`>>\s*([^\s;|&<>]+)`)

type sc2129Rule struct{}

func NewSC2129Rule() rules.Rule { return sc2129Rule{} }

func (sc2129Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2129",
		Name:             "group-consecutive-redirects",
		Description:      "Consider using { cmd1; cmd2; } >> file instead of individual redirects",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

type sc2129Group struct {
	file      string
	startLine int
	count     int
}

func (sc2129Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")

	var groups []sc2129Group
	var curFile string
	var curStart, curCount int
	hasCur := false

	flush := func() {
		if curCount >= 2 {
			groups = append(groups, sc2129Group{file: curFile, startLine: curStart, count: curCount})
		}
		hasCur = false
		curCount = 0
	}

	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") || trimmed == "" {
			flush()
			continue
		}

		m := sc2129AppendRedirect.FindStringSubmatch(trimmed)
		if m == nil {
			flush()
			continue
		}
		file := m[1]
		if hasCur && curFile == file {
			curCount++
		} else {
			flush()
			curFile = file
			curStart = lineNum
			curCount = 1
			hasCur = true
		}
	}
	flush()

	var out []diag.Diagnostic
	for _, g := range groups {
		out = append(out, diag.New("SC2129", diag.Info,
			fmt.Sprintf("Consider using { cmd1; cmd2; } >> %s instead of %d individual redirects for better performance", g.file, g.count),
			diag.NewSpan(g.startLine, 1, g.startLine+g.count-1, 1),
		))
	}
	return out
}
