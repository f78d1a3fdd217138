package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var sc2120FunctionCall = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\b`)

type sc2120funcInfo struct {
	lineNum  int
	usesArgs bool
}

type sc2120Rule struct{}

func NewSC2120Rule() rules.Rule { return sc2120Rule{} }

func (sc2120Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2120",
		Name:             "function-arguments-never-passed",
		Description:      "A function references arguments, but none are ever passed at its call sites",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2120Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")

	functionDefs := map[string]*sc2120funcInfo{}
	calledWithArgs := map[string]bool{}

	inFunction := ""
	braceDepth := 0

	for idx, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if m := sc211xFunctionDef.FindStringSubmatch(trimmed); m != nil {
			inFunction = m[1]
			functionDefs[inFunction] = &sc2120funcInfo{lineNum: idx + 1}
			braceDepth = 1
			continue
		}
		if inFunction != "" {
			braceDepth += strings.Count(line, "{")
			if c := strings.Count(line, "}"); c > 0 {
				braceDepth -= c
				if braceDepth < 0 {
					braceDepth = 0
				}
			}
			if braceDepth == 0 {
				inFunction = ""
			} else if sc211xArgReference.MatchString(line) {
				functionDefs[inFunction].usesArgs = true
			}
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || sc211xFunctionDef.MatchString(trimmed) {
			continue
		}
		m := sc2120FunctionCall.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		funcName := m[1]
		if _, known := functionDefs[funcName]; !known {
			continue
		}
		if len(trimmed) <= len(funcName)+1 {
			continue
		}
		after := strings.TrimLeft(trimmed[len(funcName):], " \t")
		if after == "" || strings.HasPrefix(after, ";") || strings.HasPrefix(after, "|") ||
			strings.HasPrefix(after, "&") || strings.HasPrefix(after, "<") || strings.HasPrefix(after, ">") {
			continue
		}
		calledWithArgs[funcName] = true
	}

	var out []diag.Diagnostic
	for funcName, info := range functionDefs {
		if info.usesArgs && !calledWithArgs[funcName] {
			out = append(out, diag.New(
				"SC2120", diag.Info,
				funcName+" references arguments, but none are ever passed",
				diag.NewSpan(info.lineNum, 1, info.lineNum, len(funcName)),
			))
		}
	}
	return out
}
