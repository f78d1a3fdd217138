package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/config"
	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

// sc2154ConventionVar matches the spec §4.2 "conventionally all-uppercase
// identifiers are treated as env-provided" rule.
var sc2154ConventionVar = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

var (
	sc2154Assignment   = regexp.MustCompile(`^\s*(?:export\s+|local\s+|readonly\s+|declare\s+(?:-\w+\s+)*)?([A-Za-z_][A-Za-z0-9_]*)\+?=`)
	sc2154BareDecl     = regexp.MustCompile(`^\s*(?:export|local|readonly|declare)\s+(?:-\w+\s+)*([A-Za-z_][A-Za-z0-9_]*)\s*$`)
	sc2154ForIn        = regexp.MustCompile(`\bfor\s+([A-Za-z_][A-Za-z0-9_]*)\s+in\b`)
	sc2154ForArith     = regexp.MustCompile(`\bfor\s*\(\(\s*([A-Za-z_][A-Za-z0-9_]*)`)
	sc2154Read         = regexp.MustCompile(`\bread\s+(?:-\w+\s+)*((?:[A-Za-z_][A-Za-z0-9_]*\s*)+)$`)
	sc2154FunctionDecl = regexp.MustCompile(`^\s*(?:function\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*\(\)\s*\{?\s*$|^\s*function\s+([A-Za-z_][A-Za-z0-9_]*)\s*\{?\s*$`)
	sc2154VarRef       = regexp.MustCompile(`\$(?:\{([A-Za-z_][A-Za-z0-9_]*)(?:[^}]*)?\}|([A-Za-z_][A-Za-z0-9_]*))`)
)

// sc2154CollectAssignments walks the whole source once to find every name
// bash ever binds: plain assignments, declare/local/readonly/export, for
// loop variables (both `for x in` and C-style), and `read` targets.
func sc2154CollectAssignments(lines []string) map[string]bool {
	assigned := map[string]bool{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if m := sc2154Assignment.FindStringSubmatch(line); m != nil {
			assigned[m[1]] = true
		}
		if m := sc2154BareDecl.FindStringSubmatch(line); m != nil {
			assigned[m[1]] = true
		}
		if m := sc2154ForIn.FindStringSubmatch(line); m != nil {
			assigned[m[1]] = true
		}
		if m := sc2154ForArith.FindStringSubmatch(line); m != nil {
			assigned[m[1]] = true
		}
		if m := sc2154Read.FindStringSubmatch(line); m != nil {
			for _, name := range strings.Fields(m[1]) {
				assigned[name] = true
			}
		}
	}
	return assigned
}

type sc2154Rule struct{}

func NewSC2154Rule() rules.Rule { return sc2154Rule{} }

func (sc2154Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2154",
		Name:             "referenced-but-not-assigned",
		Description:      "Variable is referenced but never assigned",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

// Check implements spec §4.2's "environmental suppressions": a static
// known-external-variable set (seeded from internal/config's default,
// since the spec treats the list as policy, not law), the all-uppercase
// naming convention, and test-function context (any variable is
// suppressed inside a `test_*`-named function, since test fixtures
// commonly reference variables set up by a test harness).
func (sc2154Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	assigned := sc2154CollectAssignments(lines)

	knownExternal := map[string]bool{}
	for _, name := range config.Default().Rules.KnownExternalVars {
		knownExternal[name] = true
	}

	var out []diag.Diagnostic
	inTestFunction := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		if m := sc2154FunctionDecl.FindStringSubmatch(line); m != nil {
			name := m[1]
			if name == "" {
				name = m[2]
			}
			inTestFunction = strings.HasPrefix(name, "test_")
			continue
		}
		if trimmed == "}" {
			inTestFunction = false
			continue
		}
		if inTestFunction {
			continue
		}

		lineNum := i + 1
		for _, loc := range sc2154VarRef.FindAllStringSubmatchIndex(line, -1) {
			start, end := loc[0], loc[1]
			name := submatchOrEmpty(line, loc, 2)
			if name == "" {
				name = submatchOrEmpty(line, loc, 4)
			}
			if name == "" {
				continue
			}
			if assigned[name] || knownExternal[name] || sc2154ConventionVar.MatchString(name) {
				continue
			}
			if isInsideQuotes(line, start) && strings.Count(line[:start], "'")%2 == 1 {
				continue // single-quoted: no interpolation, not a real reference
			}
			out = append(out, diag.New("SC2154", diag.Warning,
				"Variable '"+name+"' is referenced but not assigned anywhere",
				diag.NewSpan(lineNum, start+1, lineNum, end)))
		}
	}
	return out
}

// submatchOrEmpty returns the text of submatch group idx/idx+1 from loc
// (FindAllStringSubmatchIndex's flat index pairs), or "" if the group did
// not participate in the match.
func submatchOrEmpty(line string, loc []int, idx int) string {
	if loc[idx] < 0 || loc[idx+1] < 0 {
		return ""
	}
	return line[loc[idx]:loc[idx+1]]
}
