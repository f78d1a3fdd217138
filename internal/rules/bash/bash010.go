package bash

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

type bash010Rule struct{}

func NewBASH010Rule() rules.Rule { return bash010Rule{} }

func (bash010Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "BASH010",
		Name:             "missing-script-header",
		Description:      "Script missing a shebang or a leading description comment",
		DefaultSeverity:  diag.Info,
		Category:         rules.CategoryBash,
		EnabledByDefault: true,
	}
}

func (bash010Rule) Check(input rules.LintInput) []diag.Diagnostic {
	lines := strings.Split(string(input.Source), "\n")
	if len(lines) == 0 {
		return nil
	}

	hasShebang := strings.HasPrefix(strings.TrimSpace(lines[0]), "#!")
	hasDescription := false

	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#!") {
			continue
		}
		if strings.HasPrefix(trimmed, "#") && len(trimmed) > 2 {
			hasDescription = true
			break
		}
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			break
		}
	}

	var out []diag.Diagnostic
	if !hasShebang {
		out = append(out, diag.New(
			"BASH010", diag.Info,
			"Script missing shebang - add '#!/bin/bash' or '#!/usr/bin/env bash' to specify interpreter",
			diag.NewSpan(1, 1, 1, len(lines[0])),
		))
	}
	if !hasDescription {
		out = append(out, diag.New(
			"BASH010", diag.Info,
			"Script missing description comment - add a comment explaining the script's purpose after the shebang",
			diag.NewSpan(1, 1, 1, len(lines[0])),
		))
	}
	return out
}
