// Package makepp preprocesses Makefile recipe lines into bash source the
// rest of the diagnostic engine can lint, the way internal/dockerfile
// turns RUN instructions into shell snippets for the teacher's BuildKit
// front end.
package makepp

import (
	"bytes"
	"regexp"
)

// targetPattern matches a Make target declaration line, e.g. "build:" or
// "test: deps".
var targetPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+\s*:`)

// Preprocess rewrites recipe lines (TAB-indented lines following a
// target declaration) so they read as plain bash: every "$$" becomes a
// single "$", while "$(...)" and "${...}" (Make variable references) are
// left untouched. Non-recipe lines pass through unchanged. The number of
// output lines always equals the number of input lines, so diagnostics
// keep the source's original line numbers.
func Preprocess(source []byte) []byte {
	lines := bytes.Split(source, []byte{'\n'})
	inRecipe := false

	for i, line := range lines {
		trimmed := bytes.TrimSpace(line)

		switch {
		case len(line) > 0 && line[0] == '\t':
			if inRecipe {
				lines[i] = rewriteRecipeLine(line)
			}
			continue
		case len(trimmed) == 0:
			// Blank lines don't terminate a recipe block per POSIX make,
			// but they also never start one.
			continue
		case targetPattern.Match(line):
			inRecipe = true
			continue
		default:
			inRecipe = false
		}
	}

	return bytes.Join(lines, []byte{'\n'})
}

// rewriteRecipeLine replaces every "$$" with "$", skipping over "$(...)"
// and "${...}" Make variable references so they reach the bash linter
// untouched (mvdan.cc/sh/v3 treats them as opaque text it can't parse
// anyway, but we still must not mangle the "$$" escaping they contain).
func rewriteRecipeLine(line []byte) []byte {
	var out bytes.Buffer
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != '$' {
			out.WriteByte(c)
			continue
		}

		if i+1 < len(line) && (line[i+1] == '(' || line[i+1] == '{') {
			end := matchingClose(line, i+1)
			if end == -1 {
				out.WriteByte(c)
				continue
			}
			out.Write(line[i : end+1])
			i = end
			continue
		}

		if i+1 < len(line) && line[i+1] == '$' {
			out.WriteByte('$')
			i++
			continue
		}

		out.WriteByte(c)
	}
	return out.Bytes()
}

// matchingClose returns the index of the ')' or '}' matching the
// opener at openIdx (a '(' or '{'), accounting for nesting, or -1 if
// unterminated.
func matchingClose(line []byte, openIdx int) int {
	open := line[openIdx]
	close := byte(')')
	if open == '{' {
		close = '}'
	}

	depth := 1
	for i := openIdx + 1; i < len(line); i++ {
		switch line[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
