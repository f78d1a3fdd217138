package purify

import "strings"

// purifyIdempotency rewrites the three non-idempotent patterns
// internal/rules/idem detects (mkdir without -p, ln -s without force, rm
// without -f) in place, matching the Safe/SafeWithAssumptions fixes
// those rules already attach to their diagnostics (spec §4.5
// "Idempotent rewrite rules").
func purifyIdempotency(lines []string, report *Report) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if rewritten, ok := rewriteMkdir(line); ok {
			lines[i] = rewritten
			report.IdempotencyFixes++
			continue
		}
		if rewritten, ok := rewriteLnS(line); ok {
			lines[i] = rewritten
			report.IdempotencyFixes++
			continue
		}
		if rewritten, ok := rewriteRM(line); ok {
			lines[i] = rewritten
			report.IdempotencyFixes++
		}
	}
}

// rewriteMkdir inserts -p into a bare `mkdir` invocation. Mirrors
// idem.findMkdirWithoutP's word-scanning: a flag cluster containing "p"
// (long form --parents, or any short cluster with a 'p') is already
// idempotent and left untouched.
func rewriteMkdir(line string) (string, bool) {
	words := strings.Fields(line)
	idx := -1
	for i, w := range words {
		if w == "mkdir" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	for j := idx + 1; j < len(words); j++ {
		w := words[j]
		if !strings.HasPrefix(w, "-") {
			break
		}
		if w == "--parents" || (!strings.HasPrefix(w, "--") && strings.Contains(w, "p")) {
			return "", false
		}
	}
	pos := strings.Index(line, "mkdir")
	if pos < 0 {
		return "", false
	}
	return line[:pos] + "mkdir -p" + line[pos+len("mkdir"):], true
}

// rewriteLnS turns `ln -s src dst` into `ln -sf src dst`. Already-forced
// invocations (-f anywhere in the flag cluster) are left alone.
func rewriteLnS(line string) (string, bool) {
	words := strings.Fields(line)
	idx := -1
	for i, w := range words {
		if w == "ln" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	flagEnd := idx + 1
	sawS := false
	for j := idx + 1; j < len(words); j++ {
		w := words[j]
		if !strings.HasPrefix(w, "-") {
			break
		}
		if strings.Contains(w, "s") {
			sawS = true
		}
		if strings.Contains(w, "f") {
			return "", false
		}
		flagEnd = j + 1
	}
	if !sawS {
		return "", false
	}
	// flagEnd points one past the last flag word we scanned; the
	// original `-s` flag word is at flagEnd-1.
	flagWord := words[flagEnd-1]
	pos := strings.Index(line, flagWord)
	if pos < 0 {
		return "", false
	}
	return line[:pos] + flagWord + "f" + line[pos+len(flagWord):], true
}

// rewriteRM inserts -f into a bare `rm` invocation guarded neither by
// -f nor by a trailing `|| true`/`|| :`.
func rewriteRM(line string) (string, bool) {
	if strings.Contains(line, "|| true") || strings.Contains(line, "|| :") {
		return "", false
	}
	words := strings.Fields(line)
	idx := -1
	for i, w := range words {
		if w == "rm" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	for j := idx + 1; j < len(words); j++ {
		w := words[j]
		if !strings.HasPrefix(w, "-") {
			break
		}
		if w == "--force" || (!strings.HasPrefix(w, "--") && strings.Contains(w, "f")) {
			return "", false
		}
	}
	pos := strings.Index(line, "rm")
	if pos < 0 {
		return "", false
	}
	return line[:pos] + "rm -f" + line[pos+len("rm"):], true
}
