package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var sc2058ValidUnaryOps = map[byte]bool{
	'e': true, 'f': true, 'd': true, 'r': true, 'w': true, 'x': true,
	's': true, 'z': true, 'n': true, 'h': true, 'L': true, 'p': true,
	'b': true, 'c': true, 't': true, 'S': true, 'g': true, 'u': true,
	'k': true, 'O': true, 'G': true, 'N': true, 'a': true,
}

var (
	sc2058BracketUnary = regexp.MustCompile(`\[\s+-([a-zA-Z]+)\s+`)
	sc2058TestUnary    = regexp.MustCompile(`\btest\s+-([a-zA-Z]+)\s+`)
)

func sc2058IsValid(op string) bool {
	return len(op) == 1 && sc2058ValidUnaryOps[op[0]]
}

type sc2058Rule struct{}

func NewSC2058Rule() rules.Rule { return sc2058Rule{} }

func (sc2058Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2058",
		Name:             "unknown-unary-operator",
		Description:      "Unknown unary operator in test expression",
		DefaultSeverity:  diag.Error,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2058Rule) Check(input rules.LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	forEachCodeLine(input.Source, func(lineNum int, line string) {
		if strings.Contains(line, "[") {
			if m := sc2058BracketUnary.FindStringSubmatchIndex(line); m != nil {
				op := line[m[2]:m[3]]
				if !sc2058IsValid(op) {
					out = append(out, diag.New("SC2058", diag.Error,
						"Unknown unary operator '-"+op+"' in test expression",
						diag.NewSpan(lineNum, m[2], lineNum, m[3])))
				}
			}
		}
		if strings.Contains(line, "test ") {
			if m := sc2058TestUnary.FindStringSubmatchIndex(line); m != nil {
				op := line[m[2]:m[3]]
				if !sc2058IsValid(op) {
					out = append(out, diag.New("SC2058", diag.Error,
						"Unknown unary operator '-"+op+"' in test expression",
						diag.NewSpan(lineNum, m[2], lineNum, m[3])))
				}
			}
		}
	})
	return out
}
