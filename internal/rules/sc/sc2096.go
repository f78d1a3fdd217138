package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	multipleStdoutRedirects = regexp.MustCompile(`>\s*[^\s;&|]+[^2>]*>\s*[^\s;&|]+`)
	multipleStderrRedirects = regexp.MustCompile(`2>\s*[^\s;&|]+.*2>\s*[^\s;&|]+`)
	multipleAppendRedirects = regexp.MustCompile(`>>\s*[^\s;&|]+.*>>\s*[^\s;&|]+`)
)

func sc2096StdoutCount(line string) int {
	parts := strings.Split(line, ">")
	count := 0
	for i := 1; i < len(parts); i++ {
		prev := parts[i-1]
		if !strings.HasSuffix(prev, "2") && !strings.HasSuffix(prev, "&") {
			count++
		}
	}
	return count
}

type sc2096Rule struct{}

func NewSC2096Rule() rules.Rule { return sc2096Rule{} }

func (sc2096Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2096",
		Name:             "redundant-redirection",
		Description:      "Redirections override previously specified redirections for the same stream",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2096Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if strings.Contains(line, "<<") || strings.Contains(line, "<<<") {
			return
		}
		if multipleStdoutRedirects.MatchString(line) && !strings.Contains(line, ">>") {
			if sc2096StdoutCount(line) > 1 {
				out = append(out, diag.New("SC2096", diag.Warning,
					"Multiple stdout redirections specified. Only the last one will be used, earlier ones are ignored",
					diag.NewSpan(lineNum, 1, lineNum, len(line))))
			}
		}
		if multipleStderrRedirects.MatchString(line) {
			out = append(out, diag.New("SC2096", diag.Warning,
				"Multiple stderr redirections specified. Only the last one will be used, earlier ones are ignored",
				diag.NewSpan(lineNum, 1, lineNum, len(line))))
		}
		if multipleAppendRedirects.MatchString(line) {
			out = append(out, diag.New("SC2096", diag.Warning,
				"Multiple append redirections specified. Only the last one will be used, earlier ones are ignored",
				diag.NewSpan(lineNum, 1, lineNum, len(line))))
		}
	})
	return out
}
