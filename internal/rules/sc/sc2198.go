package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	arrayInTest   = regexp.MustCompile(`\$\{?([a-z_][a-z0-9_]*)(\[[^\]]*\])?\}?`)
	sc2198Bracket = regexp.MustCompile(`\[([^\]]+)\]`)
)

func sc2198LooksArrayLike(name string) bool {
	return strings.HasSuffix(name, "s") ||
		strings.Contains(name, "array") ||
		strings.Contains(name, "list") ||
		strings.Contains(name, "items")
}

type sc2198Rule struct{}

func NewSC2198Rule() rules.Rule { return sc2198Rule{} }

func (sc2198Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2198",
		Name:             "array-as-scalar-in-test",
		Description:      `Arrays don't work as scalars in comparisons. Use ${array[0]} or ${array[@]}`,
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2198Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if strings.Contains(line, "[[") {
			return
		}
		if !strings.Contains(line, "[") {
			return
		}
		for _, bm := range sc2198Bracket.FindAllStringIndex(line, -1) {
			bracketText := line[bm[0]:bm[1]]
			for _, cm := range arrayInTest.FindAllStringSubmatchIndex(bracketText, -1) {
				varName := bracketText[cm[2]:cm[3]]
				hasSubscript := cm[4] >= 0
				if hasSubscript || strings.Contains(bracketText, "#") {
					continue
				}
				if sc2198LooksArrayLike(varName) {
					startCol := bm[0] + 1
					endCol := bm[0] + len(bracketText)
					out = append(out, diag.New(
						"SC2198", diag.Warning,
						`Arrays don't work as scalars in [ ]. Use [ -n "${`+varName+`[0]}" ] for first element or [[ ]] with ${`+varName+`[@]}`,
						diag.NewSpan(lineNum, startCol, lineNum, endCol),
					))
					break
				}
			}
		}
	})
	return out
}
