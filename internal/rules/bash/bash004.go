package bash

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

func isRFFlag(word string) bool {
	return strings.HasPrefix(word, "-") && strings.Contains(word, "r") && strings.Contains(word, "f")
}

func hasRMForceRecursive(line string) bool {
	if !strings.Contains(line, "rm ") {
		return false
	}
	words := strings.Fields(line)
	rmPos := -1
	for i, w := range words {
		if w == "rm" {
			rmPos = i
			break
		}
	}
	if rmPos < 0 {
		return false
	}
	for _, w := range words[rmPos+1:] {
		if !strings.HasPrefix(w, "-") {
			break
		}
		if isRFFlag(w) {
			return true
		}
	}
	return false
}

func hasUnguardedVariable(line string) bool {
	parts := strings.SplitN(line, "rm", 2)
	if len(parts) < 2 {
		return false
	}
	afterRM := parts[1]
	words := strings.Fields(afterRM)
	targetStart := -1
	for i, w := range words {
		if !strings.HasPrefix(w, "-") {
			targetStart = i
			break
		}
	}
	if targetStart < 0 {
		return false
	}
	for _, target := range words[targetStart:] {
		t := strings.Trim(target, `"'`)
		if strings.Contains(t, "$") && !strings.Contains(t, `\$`) &&
			!strings.Contains(t, ":?") && !strings.Contains(t, ":-") {
			return true
		}
	}
	return false
}

// findVariableSpan locates the first variable reference ($NAME or
// ${NAME...}) in line, returning its byte range and bare name.
func findVariableSpan(line string) (start, end int, name string, ok bool) {
	pos := strings.Index(line, "$")
	if pos < 0 {
		return 0, 0, "", false
	}
	rest := line[pos+1:]
	if strings.HasPrefix(rest, "{") {
		closeIdx := strings.Index(rest, "}")
		if closeIdx < 0 {
			return 0, 0, "", false
		}
		inner := rest[1:closeIdx]
		if c := strings.Index(inner, ":"); c >= 0 {
			inner = inner[:c]
		}
		return pos, pos + 1 + closeIdx + 1, inner, true
	}
	i := 0
	for i < len(rest) {
		c := rest[i]
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			break
		}
		i++
	}
	if i == 0 {
		return 0, 0, "", false
	}
	return pos, pos + 1 + i, rest[:i], true
}

type bash004Rule struct{}

func NewBASH004Rule() rules.Rule { return bash004Rule{} }

func (bash004Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "BASH004",
		Name:             "rm-rf-unguarded-variable",
		Description:      "Dangerous rm -rf with an unguarded variable that could expand to empty or /",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryBash,
		EnabledByDefault: true,
	}
}

func (bash004Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || trimmed == "" {
			continue
		}
		if !hasRMForceRecursive(trimmed) {
			continue
		}
		if !hasUnguardedVariable(trimmed) {
			continue
		}
		varStart, varEnd, varName, ok := findVariableSpan(line)
		if !ok {
			continue
		}
		out = append(out, diag.New(
			"BASH004", diag.Warning,
			"Dangerous rm -rf with unguarded variable $"+varName+` - use ${`+varName+`:?} to fail if unset/empty`,
			diag.NewSpan(i+1, varStart+1, i+1, varEnd),
		).WithFix(diag.NewFix(`${`+varName+`:?"Variable not set"}`)))
	}
	return out
}
