package directive

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/sourcemap"
)

// Regex patterns for directive parsing. All patterns are case-insensitive
// for the directive keywords. Rule lists allow optional whitespace around
// commas (e.g., "SC2086, SC2009").
var (
	// # bashrs disable-next-line=CODE[,CODE]*[;reason=...]
	bashrsNextLinePattern = regexp.MustCompile(
		`(?i)#\s*bashrs\s+disable-next-line\s*=\s*([A-Za-z0-9_,\s]+?)(?:;reason\s*=\s*(.*))?$`)

	// # bashrs disable-file=CODE[,CODE]*[;reason=...]
	bashrsFilePattern = regexp.MustCompile(
		`(?i)#\s*bashrs\s+disable-file\s*=\s*([A-Za-z0-9_,\s]+?)(?:;reason\s*=\s*(.*))?$`)

	// # tally [global] ignore=RULE1,RULE2[;reason=explanation] (legacy
	// teacher syntax, accepted as a SourceBashrs-equivalent input).
	tallyPattern = regexp.MustCompile(
		`(?i)#\s*tally\s+(global\s+)?ignore\s*=\s*([A-Za-z0-9_,\s/.-]+?)(?:;reason\s*=\s*(.*))?$`)

	// # hadolint [global] ignore=RULE1,RULE2[;reason=explanation]
	hadolintPattern = regexp.MustCompile(
		`(?i)#\s*hadolint\s+(global\s+)?ignore\s*=\s*([A-Za-z0-9_,\s/.-]+?)(?:;reason\s*=\s*(.*))?$`)

	// # check=skip=RULE1,RULE2[;reason=explanation] (buildx - always file-level)
	buildxPattern = regexp.MustCompile(
		`(?i)#\s*check\s*=\s*skip\s*=\s*([A-Za-z0-9_,\s/.-]+?)(?:;reason\s*=\s*(.*))?$`)

	// # bashrs|hadolint|tally shell=NAME
	shellPattern = regexp.MustCompile(
		`(?i)#\s*(bashrs|hadolint|tally)\s+shell\s*=\s*(\S+)\s*$`)
)

// RuleValidator is a function that checks if a rule code is known.
// Returns true if the rule exists in the registry.
type RuleValidator func(string) bool

// Parse extracts all inline directives from a SourceMap.
// If validator is non-nil, unknown rule codes generate parse errors.
func Parse(sm *sourcemap.SourceMap, validator RuleValidator) *ParseResult {
	result := &ParseResult{}
	comments := sm.Comments()

	for _, comment := range comments {
		if !comment.IsDirective {
			continue
		}

		if sd := parseShell(comment); sd != nil {
			result.ShellDirectives = append(result.ShellDirectives, *sd)
			continue
		}

		if d, err := parseNextLine(comment, bashrsNextLinePattern, SourceBashrs, sm); d != nil || err != nil {
			recordDirective(d, err, validator, result)
			continue
		}
		if d, err := parseFile(comment, bashrsFilePattern, SourceBashrs); d != nil || err != nil {
			recordDirective(d, err, validator, result)
			continue
		}
		if d, err := parseIgnoreDirective(comment, sm, tallyPattern, SourceBashrs); d != nil || err != nil {
			recordDirective(d, err, validator, result)
			continue
		}
		if d, err := parseIgnoreDirective(comment, sm, hadolintPattern, SourceHadolint); d != nil || err != nil {
			recordDirective(d, err, validator, result)
			continue
		}
		if d, err := parseBuildx(comment); d != nil || err != nil {
			recordDirective(d, err, validator, result)
			continue
		}
	}

	return result
}

func recordDirective(d *Directive, err *ParseError, validator RuleValidator, result *ParseResult) {
	if err != nil {
		result.Errors = append(result.Errors, *err)
	}
	if d != nil {
		validateDirective(d, validator, result)
	}
}

// validateDirective validates rule codes and adds the directive or errors.
func validateDirective(d *Directive, validator RuleValidator, result *ParseResult) {
	if validator != nil {
		var unknownRules []string
		for _, rule := range d.Rules {
			if rule != "all" && !validator(rule) {
				unknownRules = append(unknownRules, rule)
			}
		}
		if len(unknownRules) > 0 {
			result.Errors = append(result.Errors, ParseError{
				Line:    d.Line,
				Message: "unknown rule code(s): " + strings.Join(unknownRules, ", "),
				RawText: d.RawText,
			})
			return
		}
	}
	result.Directives = append(result.Directives, *d)
}

// parseNextLine parses a canonical "disable-next-line=" directive.
func parseNextLine(comment sourcemap.Comment, pattern *regexp.Regexp, source DirectiveSource, sm *sourcemap.SourceMap) (*Directive, *ParseError) {
	matches := pattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return nil, nil
	}
	var reason string
	if len(matches) > 2 {
		reason = strings.TrimSpace(matches[2])
	}
	codes, err := parseRuleList(matches[1])
	if err != nil {
		return nil, &ParseError{Line: comment.Line, Message: err.Error(), RawText: comment.Text}
	}
	return &Directive{
		Type:      TypeNextLine,
		Rules:     codes,
		Line:      comment.Line,
		AppliesTo: nextNonCommentLineRange(comment.Line, sm),
		RawText:   comment.Text,
		Source:    source,
		Reason:    reason,
	}, nil
}

// parseFile parses a canonical "disable-file=" directive.
func parseFile(comment sourcemap.Comment, pattern *regexp.Regexp, source DirectiveSource) (*Directive, *ParseError) {
	matches := pattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return nil, nil
	}
	var reason string
	if len(matches) > 2 {
		reason = strings.TrimSpace(matches[2])
	}
	codes, err := parseRuleList(matches[1])
	if err != nil {
		return nil, &ParseError{Line: comment.Line, Message: err.Error(), RawText: comment.Text}
	}
	return &Directive{
		Type:      TypeFile,
		Rules:     codes,
		Line:      comment.Line,
		AppliesTo: FileRange(),
		RawText:   comment.Text,
		Source:    source,
		Reason:    reason,
	}, nil
}

// parseIgnoreDirective parses a directive with pattern matching [global]
// ignore=RULES format, used by the legacy tally and hadolint forms.
func parseIgnoreDirective(
	comment sourcemap.Comment,
	sm *sourcemap.SourceMap,
	pattern *regexp.Regexp,
	source DirectiveSource,
) (*Directive, *ParseError) {
	matches := pattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return nil, nil
	}

	isGlobal := strings.TrimSpace(matches[1]) != ""
	rulesStr := matches[2]

	var reason string
	if len(matches) > 3 {
		reason = strings.TrimSpace(matches[3])
	}

	codes, err := parseRuleList(rulesStr)
	if err != nil {
		return nil, &ParseError{
			Line:    comment.Line,
			Message: err.Error(),
			RawText: comment.Text,
		}
	}

	d := &Directive{
		Rules:   codes,
		Line:    comment.Line,
		RawText: comment.Text,
		Source:  source,
		Reason:  reason,
	}

	if isGlobal {
		d.Type = TypeFile
		d.AppliesTo = FileRange()
	} else {
		d.Type = TypeNextLine
		d.AppliesTo = nextNonCommentLineRange(comment.Line, sm)
	}

	return d, nil
}

// parseBuildx attempts to parse a buildx-format directive. buildx's
// check=skip is always file-level.
func parseBuildx(comment sourcemap.Comment) (*Directive, *ParseError) {
	matches := buildxPattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return nil, nil
	}

	var reason string
	if len(matches) > 2 {
		reason = strings.TrimSpace(matches[2])
	}

	codes, err := parseRuleList(matches[1])
	if err != nil {
		return nil, &ParseError{
			Line:    comment.Line,
			Message: err.Error(),
			RawText: comment.Text,
		}
	}

	return &Directive{
		Type:      TypeFile,
		Rules:     codes,
		Line:      comment.Line,
		AppliesTo: FileRange(),
		RawText:   comment.Text,
		Source:    SourceBuildx,
		Reason:    reason,
	}, nil
}

// parseShell recognizes `# bashrs|hadolint|tally shell=NAME` hints.
func parseShell(comment sourcemap.Comment) *ShellDirective {
	matches := shellPattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return nil
	}
	var source DirectiveSource
	switch strings.ToLower(matches[1]) {
	case "hadolint":
		source = SourceHadolint
	default:
		source = SourceBashrs
	}
	return &ShellDirective{Shell: matches[2], Line: comment.Line, Source: source}
}

// parseRuleList parses a comma-separated list of rule codes.
// Returns an error if the list is empty.
func parseRuleList(s string) ([]string, error) {
	if s == "" {
		return nil, &parseRuleError{msg: "empty rule list"}
	}

	parts := strings.Split(s, ",")
	codes := make([]string, 0, len(parts))

	for _, part := range parts {
		code := strings.TrimSpace(part)
		if code == "" {
			continue
		}
		codes = append(codes, code)
	}

	if len(codes) == 0 {
		return nil, &parseRuleError{msg: "empty rule list"}
	}

	return codes, nil
}

type parseRuleError struct {
	msg string
}

func (e *parseRuleError) Error() string {
	return e.msg
}

// nextNonCommentLineRange finds the range for the next line that is
// neither blank nor a comment.
// If there is no next line (directive at end of file), returns a range
// that matches nothing.
func nextNonCommentLineRange(directiveLine int, sm *sourcemap.SourceMap) LineRange {
	lineCount := sm.LineCount()

	for i := directiveLine + 1; i < lineCount; i++ {
		line := strings.TrimSpace(sm.Line(i))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return LineRange{Start: i, End: i}
	}

	return LineRange{Start: -1, End: -1}
}
