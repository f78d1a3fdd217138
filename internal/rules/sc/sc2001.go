// Package sc implements the ShellCheck-compatible SCxxxx rule family,
// each file grounded on its counterpart in original_source/rash/src/
// linter/rules/*.rs and following the teacher's one-rule-per-file layout
// (internal/rules/hadolint/dl3006.go).
package sc

import (
	"regexp"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// sc2001Pattern2 matches `$(echo "$var" | sed 's/search/replace/')`.
var sc2001Pattern2 = regexp.MustCompile(`\$\(echo\s+"\$(\w+)"\s*\|\s*sed\s+'s/([a-zA-Z0-9_]+)/([a-zA-Z0-9_]+)/'\)`)

// sc2001Pattern1 matches the bare pipe form without command substitution.
var sc2001Pattern1 = regexp.MustCompile(`echo\s+"\$(\w+)"\s*\|\s*sed\s+'s/([a-zA-Z0-9_]+)/([a-zA-Z0-9_]+)/'`)

type sc2001Rule struct{}

func NewSC2001Rule() rules.Rule { return sc2001Rule{} }

func (sc2001Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2001",
		Name:             "use-parameter-expansion-over-sed",
		Description:      "See if you can use ${variable//search/replace} instead of sed",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2001Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if m := sc2001Pattern2.FindStringSubmatchIndex(line); m != nil {
			out = append(out, sc2001Diagnostic(lineNum, line, m))
			return
		}
		if m := sc2001Pattern1.FindStringSubmatchIndex(line); m != nil {
			out = append(out, sc2001Diagnostic(lineNum, line, m))
		}
	})
	return out
}

func sc2001Diagnostic(lineNum int, line string, m []int) diag.Diagnostic {
	startCol, endCol := m[0]+1, m[1]
	varName := line[m[2]:m[3]]
	search := line[m[4]:m[5]]
	replace := line[m[6]:m[7]]
	fixText := "${" + varName + "//" + search + "/" + replace + "}"
	return diag.New(
		"SC2001", diag.Info,
		"See if you can use ${variable//search/replace} instead of sed",
		diag.NewSpan(lineNum, startCol, lineNum, endCol),
	).WithFix(diag.NewFix(fixText))
}
