package make

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

type make017Rule struct{}

func NewMAKE017Rule() rules.Rule { return make017Rule{} }

func (make017Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "MAKE017",
		Name:             "missing-oneshell",
		Description:      "Multi-line recipes run in separate shells without .ONESHELL",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryMake,
		EnabledByDefault: true,
	}
}

func (make017Rule) Check(input rules.LintInput) []diag.Diagnostic {
	source := string(input.Source)
	if strings.TrimSpace(source) == "" {
		return nil
	}
	if hasOneshell(source) || !hasMultilineRecipe(source) {
		return nil
	}
	// The span covers only the file's first byte, so the fix replaces
	// that byte with the directive followed by the byte itself, rather
	// than inserting another whole copy of source after it.
	fix := ".ONESHELL:\n\n" + source[:1]
	return []diag.Diagnostic{diag.New(
		"MAKE017", diag.Warning,
		"Missing .ONESHELL - multi-line recipes execute in separate shells (consider adding .ONESHELL: for consistent behavior)",
		diag.NewSpan(1, 1, 1, 1),
	).WithFix(diag.NewFix(fix).WithSafety(diag.SafeWithAssumptions).WithAssumptions(
		"Recipes don't rely on each line starting a fresh shell (e.g. per-line working directory resets)",
	))}
}

func hasOneshell(source string) bool {
	for _, line := range strings.Split(source, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ".ONESHELL") {
			return true
		}
	}
	return false
}

func hasMultilineRecipe(source string) bool {
	inRecipe := false
	count := 0
	for _, line := range strings.Split(source, "\n") {
		if strings.HasPrefix(line, "\t") {
			if inRecipe {
				count++
				if count >= 2 {
					return true
				}
			} else {
				inRecipe = true
				count = 1
			}
		} else if strings.TrimSpace(line) != "" {
			inRecipe = false
			count = 0
		}
	}
	return false
}
