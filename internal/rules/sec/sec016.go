package sec

import (
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// sec016Rule scans shell source for hardcoded secrets using gitleaks'
// curated pattern database, the same library and approach the teacher's
// secretsincode rule uses for Dockerfile content. Unlike grep-based
// secret rules this catches real credential shapes (AWS keys, private
// key headers, API tokens) rather than just suspicious variable names.
type sec016Rule struct {
	mu       sync.Mutex
	detector *detect.Detector
}

func NewSEC016Rule() rules.Rule { return &sec016Rule{} }

func (*sec016Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SEC016",
		Name:             "secrets-in-code",
		Description:      "Detects hardcoded secrets, API keys, and credentials in shell script content",
		DefaultSeverity:  diag.Error,
		Category:         rules.CategorySecurity,
		EnabledByDefault: true,
		IsExperimental:   true,
	}
}

func (r *sec016Rule) Check(input rules.LintInput) []diag.Diagnostic {
	r.mu.Lock()
	if r.detector == nil {
		d, err := detect.NewDetectorDefaultConfig()
		if err != nil {
			r.mu.Unlock()
			return nil
		}
		r.detector = d
	}
	detector := r.detector
	r.mu.Unlock()

	if len(input.Source) == 0 {
		return nil
	}

	findings := detector.DetectString(string(input.Source))
	if len(findings) == 0 {
		return nil
	}

	var out []diag.Diagnostic
	for _, finding := range findings {
		msg := finding.Description
		if msg == "" {
			msg = "Potential secret detected"
		}

		startLine := finding.StartLine + 1
		endLine := finding.EndLine + 1
		startCol := finding.StartColumn + 1
		endCol := finding.EndColumn + 1
		if startLine < 1 {
			startLine = 1
		}
		if endLine < startLine {
			endLine = startLine
		}

		out = append(out, diag.New(
			"SEC016", diag.Error,
			msg+": "+redactSecret(finding.Secret)+" (rule: "+finding.RuleID+"). "+
				"Secrets embedded in scripts persist in version control history; "+
				"use environment variables injected at runtime or a secret manager instead.",
			diag.NewSpan(startLine, startCol, endLine, endCol),
		))
	}
	return out
}

// redactSecret shows only enough of a detected secret to confirm a match
// without leaking the value into diagnostic output.
func redactSecret(secret string) string {
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
