package docker

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var shellFreeBases = []string{
	"gcr.io/distroless/", "distroless/", "scratch", "busybox:uclibc",
	"chainguard/", "cgr.dev/",
}

var shellInstallPatterns = []string{
	"apt-get install", "apt install", "apk add", "yum install", "dnf install",
	"bash", "/bin/sh", "/bin/bash",
}

type docker009Rule struct{}

func NewDOCKER009Rule() rules.Rule { return docker009Rule{} }

func (docker009Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "DOCKER009",
		Name:             "multi-stage-shell-free-final",
		Description:      "Final stage of a multi-stage build installs a shell or isn't a distroless/scratch base",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryDocker,
		EnabledByDefault: true,
	}
}

func (docker009Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")

	stageCount := 0
	finalLine := 0
	finalLineContent := ""
	hasShellInstallInFinal := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)

		if strings.HasPrefix(upper, "FROM ") {
			stageCount++
			finalLine = i + 1
			finalLineContent = trimmed
			hasShellInstallInFinal = false
		}

		if strings.HasPrefix(upper, "RUN ") && len(trimmed) > 4 {
			runContent := strings.ToLower(trimmed[4:])
			for _, p := range shellInstallPatterns {
				if strings.Contains(runContent, p) {
					hasShellInstallInFinal = true
					break
				}
			}
		}
	}

	if stageCount <= 1 || finalLine == 0 {
		return nil
	}

	isShellFreeBase := false
	lowerFinal := strings.ToLower(finalLineContent)
	for _, base := range shellFreeBases {
		if strings.Contains(lowerFinal, strings.ToLower(base)) {
			isShellFreeBase = true
			break
		}
	}

	var out []diag.Diagnostic
	span := diag.NewSpan(finalLine, 1, finalLine, 80)
	if hasShellInstallInFinal && !isShellFreeBase {
		out = append(out, diag.New("DOCKER009", diag.Warning,
			"Final stage may install shell - consider using distroless base image", span))
	}
	if !isShellFreeBase && finalLineContent != "" {
		out = append(out, diag.New("DOCKER009", diag.Info,
			"Consider using distroless/scratch base for shell-free final image", span))
	}
	return out
}
