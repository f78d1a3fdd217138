package sec

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var shellPipeTargets = []string{
	"| sh", "| bash", "| zsh", "| dash", "| ksh",
	"|sh", "|bash", "|zsh", "|dash", "|ksh",
	"| sudo sh", "| sudo bash", "|sudo sh", "|sudo bash",
}

type sec015Rule struct{}

func NewSEC015Rule() rules.Rule { return sec015Rule{} }

func (sec015Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SEC015",
		Name:             "unsafe-curl-wget",
		Description:      "curl/wget piped directly to a shell, or run with TLS verification disabled",
		DefaultSeverity:  diag.Error,
		Category:         rules.CategorySecurity,
		EnabledByDefault: true,
	}
}

func (sec015Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		span := diag.NewSpan(i+1, 1, i+1, len(line))

		if isPipeToShell(trimmed) {
			out = append(out, diag.New(
				"SEC015", diag.Error,
				"Piping curl/wget to shell executes arbitrary remote code - download, verify, then execute separately",
				span,
			))
			continue
		}

		if hasInsecureFlag(trimmed) {
			out = append(out, diag.New(
				"SEC015", diag.Warning,
				"curl/wget with --insecure/-k disables TLS certificate verification - vulnerable to MITM attacks",
				span,
			))
		}

		if strings.Contains(trimmed, "wget") && strings.Contains(trimmed, "--no-check-certificate") {
			out = append(out, diag.New(
				"SEC015", diag.Warning,
				"wget --no-check-certificate disables TLS verification - vulnerable to MITM attacks",
				span,
			))
		}
	}
	return out
}

func isPipeToShell(line string) bool {
	hasDownload := strings.Contains(line, "curl ") || strings.Contains(line, "wget ")
	if !hasDownload {
		return false
	}
	for _, target := range shellPipeTargets {
		if strings.Contains(line, target) {
			return true
		}
	}
	return false
}

func hasInsecureFlag(line string) bool {
	if !strings.Contains(line, "curl ") && !strings.Contains(line, "wget ") {
		return false
	}
	for _, word := range strings.Fields(line) {
		if word == "-k" || word == "--insecure" {
			return true
		}
		if strings.HasPrefix(word, "-") && !strings.HasPrefix(word, "--") &&
			strings.Contains(word, "k") && strings.Contains(line, "curl") {
			return true
		}
	}
	return false
}
