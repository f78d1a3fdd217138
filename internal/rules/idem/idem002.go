package idem

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// findLnS locates a bare `ln -s` invocation in line; it does not flag
// `ln -sf`/`ln -fs`, which already tolerate a pre-existing link target.
func findLnS(line string) (start, end int, ok bool) {
	words := strings.Fields(line)
	idx := -1
	for i, w := range words {
		if w == "ln" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, 0, false
	}
	sawS := false
	for j := idx + 1; j < len(words); j++ {
		w := words[j]
		if !strings.HasPrefix(w, "-") {
			break
		}
		if strings.Contains(w, "s") {
			sawS = true
		}
		if strings.Contains(w, "f") {
			return 0, 0, false
		}
	}
	if !sawS {
		return 0, 0, false
	}
	pos := strings.Index(line, "ln")
	return pos, pos + len("ln"), true
}

type idem002Rule struct{}

func NewIDEM002Rule() rules.Rule { return idem002Rule{} }

func (idem002Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "IDEM002",
		Name:             "ln-s-without-force",
		Description:      "ln -s fails if the link already exists; remove it first or use -f",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryIdempotency,
		EnabledByDefault: true,
	}
}

func (idem002Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		start, end, ok := findLnS(line)
		if !ok {
			continue
		}
		out = append(out, diag.New(
			"IDEM002", diag.Warning,
			"ln -s fails if the link target already exists; re-running this script is not safe. Remove the link first (rm -f target && ln -s ...) or use ln -sf",
			diag.NewSpan(i+1, start+1, i+1, end),
		).WithFix(diag.NewFix("ln -sf").WithSafety(diag.SafeWithAssumptions).WithAssumptions(
			"The link target, if it exists, is safe to unconditionally replace",
		)))
	}
	return out
}
