// Package sec implements the SECxxx rule family: shell-script security
// checks (path traversal, unsafe remote-code execution, hardcoded
// secrets), grounded on the original linter's sec01x.rs rules and, for
// SEC016, on the teacher's internal/rules/secretsincode gitleaks wiring.
package sec

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// fileCommands are commands that take a path argument and are therefore
// traversal vectors when that argument is built from an unsanitized
// variable.
var fileCommands = []string{
	"cat", "rm", "cp", "mv", "source", ".", "less", "more", "head", "tail",
	"chmod", "chown", "ln", "tar", "unzip",
}

type sec014Rule struct{}

func NewSEC014Rule() rules.Rule { return sec014Rule{} }

func (sec014Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SEC014",
		Name:             "path-traversal",
		Description:      "Variable interpolated into a file path without validating against '..' traversal",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategorySecurity,
		EnabledByDefault: true,
	}
}

func (sec014Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, cmd := range fileCommands {
			pos := containsCommand(trimmed, cmd)
			if pos < 0 {
				continue
			}
			after := trimmed[pos+len(cmd):]
			if !hasVariableInPath(after) {
				continue
			}
			out = append(out, diag.New(
				"SEC014", diag.Warning,
				"Potential path traversal: "+cmd+" with variable in path - validate input doesn't contain '..'",
				diag.NewSpan(i+1, 1, i+1, len(line)),
			))
			break
		}
	}
	return out
}

// containsCommand returns the index of cmd as a standalone word in line,
// or -1 if cmd doesn't appear there as a word.
func containsCommand(line, cmd string) int {
	if cmd == "." {
		if strings.HasPrefix(line, ". ") {
			return 0
		}
		for _, sep := range []string{" . ", "; . ", "&& . "} {
			if idx := strings.Index(line, sep); idx >= 0 {
				return idx + strings.Index(sep, ".")
			}
		}
		return -1
	}

	pos := strings.Index(line, cmd)
	if pos < 0 {
		return -1
	}
	beforeOK := pos == 0 || isWordBoundaryBefore(line[pos-1])
	afterIdx := pos + len(cmd)
	afterOK := afterIdx >= len(line) || isWordBoundaryAfter(line[afterIdx])
	if beforeOK && afterOK {
		return pos
	}
	return -1
}

func isWordBoundaryBefore(c byte) bool {
	switch c {
	case ' ', '\t', ';', '|', '&', '(':
		return true
	}
	return false
}

func isWordBoundaryAfter(c byte) bool {
	switch c {
	case ' ', '\t', ';', '|', '&', ')':
		return true
	}
	return false
}

// hasBareVariable reports whether part contains a $ reference that is not
// the start of a $(...) command substitution.
func hasBareVariable(part string) bool {
	trimmed := strings.Trim(part, `"'`)
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != '$' {
			continue
		}
		if i > 0 && trimmed[i-1] == '\\' {
			continue
		}
		isCmdSub := i+1 < len(trimmed) && trimmed[i+1] == '('
		if !isCmdSub {
			return true
		}
	}
	return false
}

// hasVariableInPath reports whether args interpolates a bare variable into
// a slash-separated path component.
func hasVariableInPath(args string) bool {
	hasPathSep := strings.Contains(args, "/")
	hasVariable := strings.Contains(args, "$") && !strings.Contains(args, `\$`)
	if !hasPathSep || !hasVariable {
		return false
	}
	for _, part := range strings.Split(args, "/") {
		if strings.Contains(part, "$") && hasBareVariable(part) {
			return true
		}
	}
	return false
}
