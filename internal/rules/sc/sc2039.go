package sc

import (
	"regexp"
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

var (
	sc2039Array       = regexp.MustCompile(`\w+\s*=\s*\(`)
	sc2039DblBracket  = regexp.MustCompile(`\[\[`)
	sc2039Source      = regexp.MustCompile(`\bsource\s+`)
	sc2039Function    = regexp.MustCompile(`\bfunction\s+\w+\s*\(\s*\)`)
	sc2039Exponent    = regexp.MustCompile(`\$\(\([^)]*\*\*[^)]*\)\)`)
)

type sc2039Rule struct{}

func NewSC2039Rule() rules.Rule { return sc2039Rule{} }

func (sc2039Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "SC2039",
		Name:             "posix-sh-undefined-feature",
		Description:      "In POSIX sh, this bash-specific feature is undefined",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryShellCheck,
		EnabledByDefault: true,
	}
}

func (sc2039Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	if len(lines) == 0 {
		return nil
	}
	if lines[0] != "#!/bin/sh" && lines[0] != "#!/usr/bin/env sh" {
		return nil
	}

	var out []diag.Diagnostic
	add := func(lineNum int, loc []int, msg string) {
		out = append(out, diag.New("SC2039", diag.Warning, msg,
			diag.NewSpan(lineNum, loc[0]+1, lineNum, loc[1])))
	}

	for i := 1; i < len(lines); i++ {
		lineNum := i + 1
		line := lines[i]
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if loc := sc2039Array.FindStringIndex(line); loc != nil {
			add(lineNum, loc, "In POSIX sh, arrays are undefined. Use space-separated strings or multiple variables.")
		}
		if loc := sc2039DblBracket.FindStringIndex(line); loc != nil {
			add(lineNum, loc, "In POSIX sh, [[ ]] is undefined. Use [ ] instead.")
		}
		if loc := sc2039Source.FindStringIndex(line); loc != nil {
			add(lineNum, loc, "In POSIX sh, 'source' is undefined. Use '.' instead.")
		}
		if loc := sc2039Function.FindStringIndex(line); loc != nil {
			add(lineNum, loc, "In POSIX sh, 'function' keyword is undefined. Use name() syntax instead.")
		}
		if loc := sc2039Exponent.FindStringIndex(line); loc != nil {
			add(lineNum, loc, "In POSIX sh, ** exponentiation is undefined. Use * for multiplication or bc for powers.")
		}
	}
	return out
}
