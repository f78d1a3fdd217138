package sc

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// validAfterBracket lists tokens that may legally follow the closing `]`
// of a `[ ... ]` test without indicating a syntax error.
var validAfterBracket = []string{
	"&&", "||", "|", ";", ")", "then", "do", "else", "elif", "fi", "done",
	"esac", "{", "}", ">>", ">", "<", "2>", "&>", "2>&1", "#", "\\",
}

// findSingleBracketClose returns the byte index of the `]` closing a
// single-bracket test on line, or -1 if none is found.
func findSingleBracketClose(line string) int {
	open := strings.Index(line, "[")
	if open < 0 {
		return -1
	}
	if open+1 < len(line) && line[open+1] == '[' {
		return -1
	}
	close := strings.Index(line[open:], "]")
	if close < 0 {
		return -1
	}
	return open + close
}

type sc1140Rule struct{}

func NewSC1140Rule() rules.Rule { return sc1140Rule{} }

func (sc1140Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC1140",
		Name:             "extra-token-after-bracket",
		Description:      "Unexpected extra token after ]",
		DefaultSeverity:  diag.Error,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc1140Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.Contains(trimmed, "[[") || strings.Contains(trimmed, "]]") {
			return
		}
		bracketEnd := findSingleBracketClose(line)
		if bracketEnd < 0 {
			return
		}
		after := line[bracketEnd+1:]
		afterTrimmed := strings.TrimLeft(after, " \t")
		if afterTrimmed == "" {
			return
		}
		firstToken := strings.Fields(afterTrimmed)[0]
		if firstToken == "" {
			return
		}
		valid := false
		for _, v := range validAfterBracket {
			if firstToken == v || strings.HasPrefix(firstToken, v) {
				valid = true
				break
			}
		}
		if !valid {
			for _, p := range []string{";", "#", "|", "&", ">", "<"} {
				if strings.HasPrefix(firstToken, p) {
					valid = true
					break
				}
			}
		}
		if valid {
			return
		}
		col := bracketEnd + 1 + (len(after) - len(afterTrimmed))
		endCol := col + len(firstToken)
		out = append(out, diag.New(
			"SC1140", diag.Error,
			"Unexpected token '"+firstToken+"' after ]. Did you forget && or || ?",
			diag.NewSpan(lineNum, col+1, lineNum, endCol),
		))
	})
	return out
}
