package sc

import (
	"regexp"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	missingSemicolonThen = regexp.MustCompile(`\]\s+then\b`)
	whileThen            = regexp.MustCompile(`\bwhile\b[^\n]*\bthen\b`)
	forThen              = regexp.MustCompile(`\bfor\b[^\n]*\bthen\b`)
)

type sc2135Rule struct{}

func NewSC2135Rule() rules.Rule { return sc2135Rule{} }

func (sc2135Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2135",
		Name:             "unexpected-then",
		Description:      "Unexpected 'then' after a condition that requires 'do' or a semicolon",
		DefaultSeverity:  diag.Error,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2135Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if m := missingSemicolonThen.FindStringIndex(line); m != nil {
			out = append(out, diag.New("SC2135", diag.Error,
				"Missing semicolon before 'then'. Use ]; then or put 'then' on next line",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
		if m := whileThen.FindStringIndex(line); m != nil {
			out = append(out, diag.New("SC2135", diag.Error,
				"'while' loops use 'do', not 'then'. Change 'then' to 'do'",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
		if m := forThen.FindStringIndex(line); m != nil {
			out = append(out, diag.New("SC2135", diag.Error,
				"'for' loops use 'do', not 'then'. Change 'then' to 'do'",
				diag.NewSpan(lineNum, m[0]+1, lineNum, m[1])))
		}
	})
	return out
}
