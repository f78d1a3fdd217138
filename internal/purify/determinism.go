package purify

import (
	"regexp"
	"strings"
)

var (
	purifyRandomUsage     = regexp.MustCompile(`\$(\{)?RANDOM(\})?`)
	purifyProcessVar      = regexp.MustCompile(`\$(\{)?(BASHPID|PPID|SECONDS)(\})?|\$\$`)
	purifyTimestampTokens = []string{"date +%s", "$(date", "`date"}
)

// flagDeterminism detects $RANDOM, $(date ...)/`date`, and process-
// derived variables ($$, $BASHPID, $PPID, $SECONDS). None of these have
// a semantics-preserving automatic replacement (spec §4.5 "Non-
// deterministic constructs": removing them changes what the script
// computes), so unlike purifyIdempotency this pass only records
// warnings; it never rewrites the line.
func flagDeterminism(lines []string, report *Report) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		lineNo := i + 1
		if loc := purifyRandomUsage.FindString(line); loc != "" {
			report.warn("line %d: %s is non-deterministic; replace with a fixed seed, a counter, or an argument", lineNo, loc)
			continue
		}
		flaggedTimestamp := false
		for _, tok := range purifyTimestampTokens {
			if strings.Contains(line, tok) {
				report.warn("line %d: %s produces a non-deterministic timestamp; pass a version/commit/argument instead", lineNo, tok)
				flaggedTimestamp = true
				break
			}
		}
		if flaggedTimestamp {
			continue
		}
		if loc := purifyProcessVar.FindString(line); loc != "" {
			report.warn("line %d: %s is derived from the running process and varies run to run", lineNo, loc)
		}
	}
}
