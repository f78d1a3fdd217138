package sc

import "strings"

// forEachCodeLine calls fn for every 1-indexed line in source that is not
// a comment-only line, matching the `line.trim_start().starts_with('#')`
// skip every original_source rule performs before matching.
func forEachCodeLine(source []byte, fn func(lineNum int, line string)) {
	lines := strings.Split(string(source), "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		fn(i+1, line)
	}
}

// isInsideQuotes reports whether byte offset pos in line is inside an
// open quote, via simple quote-parity counting (ported from sc2068.rs).
func isInsideQuotes(line string, pos int) bool {
	before := line[:pos]
	dq := strings.Count(before, `"`)
	sq := strings.Count(before, `'`)
	return dq%2 == 1 || sq%2 == 1
}
