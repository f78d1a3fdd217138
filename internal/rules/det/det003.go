package det

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var det003ProcessVar = regexp.MustCompile(`\$(\{)?(BASHPID|PPID|SECONDS)(\})?|\$\$`)

type det003Rule struct{}

func NewDET003Rule() rules.Rule { return det003Rule{} }

func (det003Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "DET003",
		Name:             "process-identifier-usage",
		Description:      "Process-derived variables ($$, $BASHPID, $PPID, $SECONDS) vary run to run, breaking determinism",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryDeterminism,
		EnabledByDefault: true,
	}
}

func (det003Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	var out []diag.Diagnostic
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		for _, m := range det003ProcessVar.FindAllStringIndex(line, -1) {
			matched := line[m[0]:m[1]]
			out = append(out, diag.New(
				"DET003", diag.Warning,
				"'"+matched+"' is derived from the running process and is non-deterministic across runs; avoid it in output that must be reproducible",
				diag.NewSpan(i+1, m[0]+1, i+1, m[1]),
			))
		}
	}
	return out
}
