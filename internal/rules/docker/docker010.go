package docker

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var healthcheckInterval = regexp.MustCompile(`--interval=(\d+)s`)

type healthcheckAnalysis struct {
	hasHealthcheck   bool
	isHealthcheckNone bool
	healthcheckLine  int
	intervalSeconds  int
	hasInterval      bool
	hasCmdOrEntry    bool
	cmdLine          int
}

func analyzeDockerfile(source string) healthcheckAnalysis {
	var a healthcheckAnalysis
	for i, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)

		if strings.HasPrefix(upper, "HEALTHCHECK") {
			a.hasHealthcheck = true
			a.healthcheckLine = i + 1
			rest := strings.TrimSpace(trimmed[len("HEALTHCHECK"):])
			if strings.HasPrefix(strings.ToUpper(rest), "NONE") {
				a.isHealthcheckNone = true
			}
			if m := healthcheckInterval.FindStringSubmatch(trimmed); m != nil {
				secs, err := strconv.Atoi(m[1])
				if err == nil {
					a.intervalSeconds = secs
					a.hasInterval = true
				}
			}
		}

		if strings.HasPrefix(upper, "CMD ") || strings.HasPrefix(upper, "CMD[") ||
			strings.HasPrefix(upper, "ENTRYPOINT ") || strings.HasPrefix(upper, "ENTRYPOINT[") {
			a.hasCmdOrEntry = true
			a.cmdLine = i + 1
		}
	}
	return a
}

func isIntervalTooAggressive(seconds int) bool {
	return seconds < 5
}

func shouldSuggestHealthcheck(a healthcheckAnalysis) bool {
	return a.hasCmdOrEntry && !a.hasHealthcheck
}

func isHealthcheckAfterCmd(healthcheckLine, cmdLine int) bool {
	return cmdLine > 0 && healthcheckLine > cmdLine
}

type docker010Rule struct{}

func NewDOCKER010Rule() rules.Rule { return docker010Rule{} }

func (docker010Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "DOCKER010",
		Name:             "healthcheck-validation",
		Description:      "HEALTHCHECK is missing, disabled, misordered, or polls too aggressively",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryDocker,
		EnabledByDefault: true,
	}
}

func (docker010Rule) Check(input rules.LintInput) []diag.Diagnostic {
	source := string(input.Source)
	a := analyzeDockerfile(source)
	var out []diag.Diagnostic

	if a.isHealthcheckNone {
		out = append(out, diag.New("DOCKER010", diag.Info,
			"HEALTHCHECK NONE disables health monitoring - ensure this is intentional",
			diag.NewSpan(a.healthcheckLine, 1, a.healthcheckLine, 80)))
	}

	if a.hasInterval && isIntervalTooAggressive(a.intervalSeconds) {
		out = append(out, diag.New("DOCKER010", diag.Warning,
			"HEALTHCHECK interval "+strconv.Itoa(a.intervalSeconds)+"s may be too aggressive - consider 10s+",
			diag.NewSpan(a.healthcheckLine, 1, a.healthcheckLine, 80)))
	}

	if shouldSuggestHealthcheck(a) {
		out = append(out, diag.New("DOCKER010", diag.Info,
			"Consider adding HEALTHCHECK for container health monitoring",
			diag.NewSpan(a.cmdLine, 1, a.cmdLine, 1)))
	}

	if a.hasHealthcheck && isHealthcheckAfterCmd(a.healthcheckLine, a.cmdLine) {
		out = append(out, diag.New("DOCKER010", diag.Info,
			"HEALTHCHECK should typically come before CMD for readability",
			diag.NewSpan(a.healthcheckLine, 1, a.healthcheckLine, 1)))
	}

	return out
}
