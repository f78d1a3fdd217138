package purify

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// contextLines is how many unchanged lines surround each hunk, matching
// the conventional unified-diff default.
const contextLines = 3

// buildUnifiedDiff renders a minimal unified diff between original and
// purified. No line-diff *generator* exists anywhere in the example
// corpus — bluekeyes/go-gitdiff only *parses* unified diff text — so
// this is a small hand-rolled longest-common-subsequence diff whose
// output buildUnifiedDiff produces is then handed back through
// gitdiff.NewParser by Hunks, giving callers the same structured
// *gitdiff.File/TextFragment shape they'd get from a real git diff
// (spec §4.5 "the purifier reports what it changed as a diff").
func buildUnifiedDiff(original, purified []byte) []byte {
	oldLines := splitLines(original)
	newLines := splitLines(purified)
	ops := diffLines(oldLines, newLines)
	if !opsHaveChange(ops) {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("--- a/script.sh\n")
	sb.WriteString("+++ b/script.sh\n")
	for _, h := range buildHunks(ops) {
		sb.WriteString(h.header())
		sb.WriteString(h.body)
	}
	return []byte(sb.String())
}

// Hunks parses a diff produced by buildUnifiedDiff (or any unified diff
// in the same shape) back into structured fragments via
// bluekeyes/go-gitdiff, so a reporter can walk hunks/lines instead of
// re-parsing text.
func Hunks(diff []byte) ([]*gitdiff.TextFragment, error) {
	if len(diff) == 0 {
		return nil, nil
	}
	parser := gitdiff.NewParser(strings.NewReader(string(diff)))
	var frags []*gitdiff.TextFragment
	for {
		file, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		frags = append(frags, file.TextFragments...)
	}
	return frags, nil
}

func splitLines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	return strings.Split(string(b), "\n")
}

type diffOp struct {
	kind byte // ' ' context, '-' removed, '+' added
	text string
}

func opsHaveChange(ops []diffOp) bool {
	for _, op := range ops {
		if op.kind != ' ' {
			return true
		}
	}
	return false
}

// diffLines computes a line-level diff via the standard O(n*m)
// longest-common-subsequence table; purified scripts are small enough
// (single files, not whole repositories) that this is the right
// complexity/simplicity tradeoff.
func diffLines(a, b []string) []diffOp {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []diffOp
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			ops = append(ops, diffOp{' ', a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, diffOp{'-', a[i]})
			i++
		default:
			ops = append(ops, diffOp{'+', b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, diffOp{'-', a[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, diffOp{'+', b[j]})
	}
	return ops
}

type hunk struct {
	oldStart, oldLines int
	newStart, newLines int
	body               string
}

func (h hunk) header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@\n", h.oldStart, h.oldLines, h.newStart, h.newLines)
}

// buildHunks groups diffOps into hunks separated by more than
// 2*contextLines of unchanged lines, the same grouping heuristic
// `diff -u` uses.
func buildHunks(ops []diffOp) []hunk {
	type lineNum struct{ old, new int }
	pos := lineNum{1, 1}

	var hunks []hunk
	i := 0
	for i < len(ops) {
		if ops[i].kind == ' ' {
			pos.old++
			pos.new++
			i++
			continue
		}
		// Found a change; back up to include leading context.
		start := i
		ctxStart := start
		for k := 0; k < contextLines && ctxStart > 0 && ops[ctxStart-1].kind == ' '; k++ {
			ctxStart--
		}
		leadingCtx := start - ctxStart
		oldStart := pos.old - leadingCtx
		newStart := pos.new - leadingCtx

		// Walk forward collecting changes plus trailing context, ending
		// a hunk once we see more than 2*contextLines of consecutive
		// unchanged lines.
		end := start
		oldCount, newCount := 0, 0
		runCtx := 0
		for end < len(ops) {
			op := ops[end]
			if op.kind == ' ' {
				runCtx++
				if runCtx > 2*contextLines {
					runCtx-- // ops[end] is not consumed
					break
				}
			} else {
				runCtx = 0
			}
			end++
		}
		trailingCtx := runCtx
		if trailingCtx > contextLines {
			trailingCtx = contextLines
		}
		hunkEnd := end - (runCtx - trailingCtx)

		var body strings.Builder
		for k := ctxStart; k < hunkEnd; k++ {
			op := ops[k]
			switch op.kind {
			case ' ':
				body.WriteString(" " + op.text + "\n")
				oldCount++
				newCount++
			case '-':
				body.WriteString("-" + op.text + "\n")
				oldCount++
			case '+':
				body.WriteString("+" + op.text + "\n")
				newCount++
			}
		}

		hunks = append(hunks, hunk{
			oldStart: oldStart, oldLines: oldCount,
			newStart: newStart, newLines: newCount,
			body: body.String(),
		})

		// Advance pos past everything consumed in this hunk (from
		// start, not ctxStart, since leading context was already
		// counted before we backed up).
		for k := start; k < hunkEnd; k++ {
			switch ops[k].kind {
			case ' ':
				pos.old++
				pos.new++
			case '-':
				pos.old++
			case '+':
				pos.new++
			}
		}
		i = hunkEnd
	}
	return hunks
}
