package sc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var exitOrReturn = regexp.MustCompile(`(?:exit|return)\s+\d+`)

func isConditionalExit(line string) bool {
	if pos := strings.Index(line, "exit"); pos >= 0 {
		before := line[:pos]
		if strings.Contains(before, "||") || strings.Contains(before, "&&") {
			return true
		}
	}
	if pos := strings.Index(line, "return"); pos >= 0 {
		before := line[:pos]
		if strings.Contains(before, "||") || strings.Contains(before, "&&") {
			return true
		}
	}
	return false
}

type sc2317Rule struct{}

func NewSC2317Rule() rules.Rule { return sc2317Rule{} }

func (sc2317Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2317",
		Name:             "unreachable-command",
		Description:      "Command appears to be unreachable (dead code)",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2317Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")

	foundExit := false
	exitLine := 0

	for i, line := range lines {
		lineNum1 := i + 1
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") || trimmed == "" {
			continue
		}
		if trimmed == ";;" || trimmed == ";&" || trimmed == ";;&" {
			continue
		}
		if strings.HasPrefix(trimmed, "}") || strings.HasPrefix(trimmed, "fi") ||
			strings.HasPrefix(trimmed, "done") || strings.HasPrefix(trimmed, "esac") {
			foundExit = false
			continue
		}
		if strings.HasSuffix(trimmed, ")") && !strings.Contains(trimmed, "$(") && !strings.HasPrefix(trimmed, "(") {
			foundExit = false
			continue
		}
		if !foundExit && exitOrReturn.MatchString(trimmed) {
			if isConditionalExit(trimmed) {
				continue
			}
			foundExit = true
			exitLine = i
		} else if foundExit {
			return []diag.Diagnostic{diag.New("SC2317", diag.Warning,
				fmt.Sprintf("Command appears to be unreachable (code after exit/return on line %d)", exitLine+1),
				diag.NewSpan(lineNum1, 1, lineNum1, len(line)))}
		}
	}
	return nil
}
