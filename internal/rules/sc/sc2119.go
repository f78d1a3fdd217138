package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	sc211xFunctionDef = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*\(\s*\)\s*\{`)
	sc2119FunctionCall = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s+[^;|&<>]+`)
	sc211xArgReference = regexp.MustCompile(`\$[@*#]|\$\{?[0-9]+\}?`)
)

func sc211xUpdateBraceDepth(line string, depth int) int {
	depth += strings.Count(line, "{")
	depth -= strings.Count(line, "}")
	if depth < 0 {
		depth = 0
	}
	return depth
}

// sc2119FunctionsUsingArgs returns, for each `name() { ... }` function
// definition found in lines, whether its body references a positional
// parameter ($1, $@, $*, ...).
func sc2119FunctionsUsingArgs(lines []string) map[string]bool {
	usesArgs := map[string]bool{}
	inFunction := ""
	braceDepth := 0

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		trimmed := strings.TrimSpace(line)

		if m := sc211xFunctionDef.FindStringSubmatch(trimmed); m != nil {
			inFunction = m[1]
			usesArgs[inFunction] = false
			braceDepth = 1
			continue
		}

		if inFunction != "" {
			braceDepth = sc211xUpdateBraceDepth(line, braceDepth)
			if braceDepth == 0 {
				inFunction = ""
			} else if sc211xArgReference.MatchString(line) {
				usesArgs[inFunction] = true
			}
		}
	}
	return usesArgs
}

type sc2119Rule struct{}

func NewSC2119Rule() rules.Rule { return sc2119Rule{} }

func (sc2119Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2119",
		Name:             "function-ignores-arguments",
		Description:      `Use foo "$@" if function's $1 should mean script's $1`,
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2119Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	functionsUseArgs := sc2119FunctionsUsingArgs(lines)

	var out []diag.Diagnostic
	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || sc211xFunctionDef.MatchString(trimmed) {
			continue
		}
		m := sc2119FunctionCall.FindStringSubmatchIndex(trimmed)
		if m == nil {
			continue
		}
		funcName := trimmed[m[2]:m[3]]
		usesArgs, known := functionsUseArgs[funcName]
		if !known || usesArgs {
			continue
		}
		out = append(out, diag.New(
			"SC2119", diag.Info,
			`Use `+funcName+` "$@" if function's $1 should mean script's $1`,
			diag.NewSpan(lineNum, m[0]+1, lineNum, m[1]),
		))
	}
	return out
}
