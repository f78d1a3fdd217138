package idem

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var redirectTarget = regexp.MustCompile(`>\s*([^\s;&|>]+)`)

// idem004 flags the second and later of several `... > file` redirections
// to the same literal file within a script: each overwrite silently
// discards the previous write, which is rarely what re-running the script
// as a whole is meant to do.
type idem004Rule struct{}

func NewIDEM004Rule() rules.Rule { return idem004Rule{} }

func (idem004Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "IDEM004",
		Name:             "duplicate-write-target",
		Description:      "Multiple non-append writes to the same file; only the last one survives",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryIdempotency,
		EnabledByDefault: true,
	}
}

func (idem004Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	seen := map[string]int{}
	var out []diag.Diagnostic

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if strings.Contains(line, ">>") {
			continue
		}
		m := redirectTarget.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		target := line[m[2]:m[3]]
		target = strings.Trim(target, `"'`)
		if target == "" || strings.HasPrefix(target, "&") {
			continue
		}
		if firstLine, ok := seen[target]; ok {
			out = append(out, diag.New(
				"IDEM004", diag.Info,
				"Target '"+target+"' was already written (non-append) on line "+strconv.Itoa(firstLine)+"; that earlier write is discarded",
				diag.NewSpan(i+1, m[0]+1, i+1, m[1]),
			))
		} else {
			seen[target] = i + 1
		}
	}
	return out
}
