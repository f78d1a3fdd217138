package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// rangeWithPlus matches `[range]+` and `[[:posix:]]+` glob ranges followed
// by a literal `+` quantifier, which only has meaning in ERE contexts.
var rangeWithPlus = regexp.MustCompile(`\[(?:[^\]]|\[:.*?:\])+\]\+`)

type sc2102Rule struct{}

func NewSC2102Rule() rules.Rule { return sc2102Rule{} }

func (sc2102Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2102",
		Name:             "glob-range-plus-quantifier",
		Description:      "Ranges can only match single chars (to match + literally, use \\+)",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func hasEREFlag(arg string) bool {
	if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") {
		return false
	}
	for _, c := range arg[1:] {
		if c == 'E' || c == 'P' {
			return true
		}
	}
	return false
}

func isEREContext(line string) bool {
	if strings.Contains(line, "=~") {
		return true
	}
	if strings.Contains(line, "grep") {
		if strings.Contains(line, "--extended-regexp") || strings.Contains(line, "--perl-regexp") {
			return true
		}
		for _, word := range strings.Fields(line) {
			if hasEREFlag(word) {
				return true
			}
		}
	}
	if strings.Contains(line, "egrep") {
		return true
	}
	if strings.Contains(line, "sed") {
		for _, word := range strings.Fields(line) {
			if strings.HasPrefix(word, "-") && !strings.HasPrefix(word, "--") &&
				(strings.ContainsRune(word, 'E') || strings.ContainsRune(word, 'r')) {
				return true
			}
		}
	}
	if strings.Contains(line, "awk") || strings.Contains(line, "gawk") {
		return true
	}
	return false
}

func (sc2102Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if isEREContext(line) {
			return
		}
		for _, loc := range rangeWithPlus.FindAllStringIndex(line, -1) {
			out = append(out, diag.New("SC2102", diag.Warning,
				"Ranges can only match single chars (to match + literally, use \\+)",
				diag.NewSpan(lineNum, loc[0]+1, lineNum, loc[1])))
		}
	})
	return out
}
