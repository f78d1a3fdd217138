package purify

import (
	"regexp"
	"strconv"
	"strings"
)

var purifyRedirectTarget = regexp.MustCompile(`>\s*([^\s;&|>]+)`)

// flagSideEffects tracks non-append writes to the same file target
// across the script, matching idem.idem004Rule's detector. A script
// that redirects to the same path more than once with `>` has a side
// effect whose outcome depends on which write happened to run last;
// isolating that (spec §4.5 "side_effects_isolated") means naming it in
// the report rather than guessing which write the author meant to keep.
func flagSideEffects(lines []string, report *Report) {
	seen := map[string]int{}
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if strings.Contains(line, ">>") {
			continue
		}
		m := purifyRedirectTarget.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		target := strings.Trim(line[m[2]:m[3]], `"'`)
		if target == "" || strings.HasPrefix(target, "&") {
			continue
		}
		if firstLine, ok := seen[target]; ok {
			report.warn("line %d: target %q was already written (non-append) on line %s; only the last write survives",
				i+1, target, strconv.Itoa(firstLine))
			report.SideEffectsIsolated++
			continue
		}
		seen[target] = i + 1
	}
}
