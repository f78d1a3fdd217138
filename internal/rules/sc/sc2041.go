package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var readInFor = regexp.MustCompile(`\bread\s+`)

func isForLoopStart(line string) bool {
	return strings.Contains(line, "for ") && strings.Contains(line, " in ")
}

func isSingleLineForLoop(line string) bool {
	return strings.Contains(line, "; do ") && strings.Contains(line, "done")
}

func isWhileRead(line string, readPos int) bool {
	idx := strings.Index(line, "while")
	return idx >= 0 && idx < readPos
}

// readInSingleLineLoop returns the byte offset of `read ` between `; do `
// and `done` on a single-line for loop, or -1 if not found.
func readInSingleLineLoop(line string) int {
	if !strings.Contains(line, "read ") {
		return -1
	}
	readPos := strings.Index(line, "read ")
	doIdx := strings.Index(line, "; do ")
	if doIdx < 0 {
		return -1
	}
	doPos := doIdx + 5
	donePos := strings.Index(line, "done")
	if donePos < 0 {
		return -1
	}
	if readPos >= doPos && readPos < donePos {
		return readPos
	}
	return -1
}

type sc2041Rule struct{}

func NewSC2041Rule() rules.Rule { return sc2041Rule{} }

func (sc2041Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2041",
		Name:             "read-in-for-loop",
		Description:      "Use while read, not read in for loop, to read lines from files",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2041Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	inForLoop := false
	forLoopStartLine := 0

	forEachCodeLine(input.Source, func(lineNum int, line string) {
		emit := func(pos, length int) {
			out = append(out, diag.New(
				"SC2041", diag.Warning,
				"'read' in for loop reads from stdin, not loop data. Use 'while read' instead (for loop started at line "+itoa(forLoopStartLine)+")",
				diag.NewSpan(lineNum, pos+1, lineNum, pos+length),
			))
		}

		if isForLoopStart(line) {
			inForLoop = true
			forLoopStartLine = lineNum

			if isSingleLineForLoop(line) {
				if pos := readInSingleLineLoop(line); pos >= 0 {
					emit(pos, 5)
				}
				inForLoop = false
				return
			}
		}

		if inForLoop && strings.Contains(line, "done") {
			inForLoop = false
		}

		if inForLoop && strings.Contains(line, "read ") {
			if m := readInFor.FindStringIndex(line); m != nil {
				if isInsideQuotes(line, m[0]) || isWhileRead(line, m[0]) {
					return
				}
				emit(m[0], m[1]-m[0])
			}
		}
	})
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
