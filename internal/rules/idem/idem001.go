// Package idem implements the IDEMxxx rule family: lint-time detection of
// the same non-idempotent shell patterns the purifier rewrites (see
// internal/purify), grounded on spec section 4.5's mkdir/ln/rm/duplicate-
// write rewrite rules and the teacher's bash_transpiler/purification/mod.rs.
package idem

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// findMkdirWithoutP locates a bare `mkdir` command word in line whose flag
// arguments do not include -p (and not part of a longer identifier like
// "rmkdir" or a path component like "dir/mkdir.sh").
func findMkdirWithoutP(line string) (start, end int, ok bool) {
	words := strings.Fields(line)
	idx := -1
	for i, w := range words {
		if w == "mkdir" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, 0, false
	}
	for j := idx + 1; j < len(words); j++ {
		w := words[j]
		if !strings.HasPrefix(w, "-") {
			break
		}
		if w == "--parents" || (!strings.HasPrefix(w, "--") && strings.Contains(w, "p")) {
			return 0, 0, false
		}
	}
	pos := strings.Index(line, "mkdir")
	if pos < 0 {
		return 0, 0, false
	}
	return pos, pos + len("mkdir"), true
}

type idem001Rule struct{}

func NewIDEM001Rule() rules.Rule { return idem001Rule{} }

func (idem001Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "IDEM001",
		Name:             "mkdir-without-p",
		Description:      "mkdir without -p fails when re-run against a directory that already exists",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryIdempotency,
		EnabledByDefault: true,
	}
}

func (idem001Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		start, end, ok := findMkdirWithoutP(line)
		if !ok {
			continue
		}
		out = append(out, diag.New(
			"IDEM001", diag.Warning,
			"mkdir without -p fails if the directory already exists; re-running this script is not safe",
			diag.NewSpan(i+1, start+1, i+1, end),
		).WithFix(diag.NewFix("mkdir -p").WithSafety(diag.Safe)))
	}
	return out
}
