package sc

import (
	"regexp"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var sc2059WithVar = regexp.MustCompile(`printf\s+(['"]?)(\$[a-zA-Z_][a-zA-Z0-9_]*|\$\{[a-zA-Z_][a-zA-Z0-9_]*\})`)
var sc2059WithExpansion = regexp.MustCompile(`printf\s+"[^"]*\$[a-zA-Z_][a-zA-Z0-9_]*`)

type sc2059Rule struct{}

func NewSC2059Rule() rules.Rule { return sc2059Rule{} }

func (sc2059Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2059",
		Name:             "no-variable-printf-format",
		Description:      "Don't use variables in the printf format string",
		DefaultSeverity:  diag.Error,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

const sc2059Message = `Don't use variables in the printf format string. Use printf '..%s..' "$foo"`

func (sc2059Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if loc := sc2059WithVar.FindStringIndex(line); loc != nil {
			out = append(out, diag.New("SC2059", diag.Error, sc2059Message,
				diag.NewSpan(lineNum, loc[0]+1, lineNum, loc[1])))
			return
		}
		if loc := sc2059WithExpansion.FindStringIndex(line); loc != nil {
			out = append(out, diag.New("SC2059", diag.Error, sc2059Message,
				diag.NewSpan(lineNum, loc[0]+1, lineNum, loc[1])))
		}
	})
	return out
}
