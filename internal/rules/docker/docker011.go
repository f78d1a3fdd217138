package docker

import (
	"strconv"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var rootUsers = map[string]bool{"root": true, "0": true}

type docker011Rule struct{}

func NewDOCKER011Rule() rules.Rule { return docker011Rule{} }

func (docker011Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "DOCKER011",
		Name:             "user-directive-validation",
		Description:      "Container runs as root: missing USER directive, root user, or UID 0",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryDocker,
		EnabledByDefault: true,
	}
}

func (docker011Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")

	var out []diag.Diagnostic
	lastUserLine := 0
	lastUserValue := ""
	hasUserDirective := false
	hasCmdOrEntrypoint := false
	cmdLine := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)

		if strings.HasPrefix(upper, "USER ") {
			hasUserDirective = true
			lastUserLine = i + 1
			lastUserValue = strings.TrimSpace(trimmed[5:])
			span := diag.NewSpan(i+1, 1, i+1, clampLen(trimmed, 80))

			userLower := strings.ToLower(lastUserValue)
			if rootUsers[userLower] {
				out = append(out, diag.New("DOCKER011", diag.Warning,
					"USER "+lastUserValue+" runs container as root - consider non-root user", span))
			}

			if uid, err := strconv.ParseUint(lastUserValue, 10, 32); err == nil && uid == 0 {
				out = append(out, diag.New("DOCKER011", diag.Warning,
					"USER 0 runs container as root - consider non-root UID", span))
			}
		}

		if strings.HasPrefix(upper, "CMD ") || strings.HasPrefix(upper, "CMD[") ||
			strings.HasPrefix(upper, "ENTRYPOINT ") || strings.HasPrefix(upper, "ENTRYPOINT[") {
			hasCmdOrEntrypoint = true
			cmdLine = i + 1
		}
	}

	if hasCmdOrEntrypoint && !hasUserDirective {
		out = append(out, diag.New("DOCKER011", diag.Warning,
			"No USER directive - container will run as root",
			diag.NewSpan(cmdLine, 1, cmdLine, 1)))
	}

	if hasUserDirective && rootUsers[strings.ToLower(lastUserValue)] {
		out = append(out, diag.New("DOCKER011", diag.Warning,
			"Final USER is root - consider switching to non-root before CMD",
			diag.NewSpan(lastUserLine, 1, lastUserLine, 1)))
	}

	return out
}
