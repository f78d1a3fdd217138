package lint

import (
	"testing"

	"github.com/wharflab/bashrs/internal/config"

	_ "github.com/wharflab/bashrs/internal/rules/bash"
	_ "github.com/wharflab/bashrs/internal/rules/det"
	_ "github.com/wharflab/bashrs/internal/rules/docker"
	_ "github.com/wharflab/bashrs/internal/rules/idem"
	_ "github.com/wharflab/bashrs/internal/rules/make"
	_ "github.com/wharflab/bashrs/internal/rules/sc"
	_ "github.com/wharflab/bashrs/internal/rules/sec"
)

func TestLintShell_FindsViolations(t *testing.T) {
	source := []byte("#!/bin/bash\ncurl http://example.com/install.sh | bash\n")

	result := LintShell("deploy.sh", source, config.Default())

	if result.ParseError != nil {
		t.Fatalf("unexpected parse error: %v", result.ParseError)
	}
	if len(result.Violations) == 0 {
		t.Fatal("expected at least one violation for pipe-to-shell, got none")
	}

	found := false
	for _, v := range result.Violations {
		if v.RuleCode == "SEC015" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SEC015 among violations, got %+v", result.Violations)
	}
}

func TestLintShell_InlineSuppression(t *testing.T) {
	source := []byte("#!/bin/bash\n# bashrs disable-next-line=SEC015\ncurl http://example.com/install.sh | bash\n")

	result := LintShell("deploy.sh", source, config.Default())
	if result.ParseError != nil {
		t.Fatalf("unexpected parse error: %v", result.ParseError)
	}

	for _, v := range result.Violations {
		if v.RuleCode == "SEC015" {
			t.Errorf("expected SEC015 to be suppressed, but it appeared: %+v", v)
		}
	}

	suppressedFound := false
	for _, v := range result.Suppressed {
		if v.RuleCode == "SEC015" {
			suppressedFound = true
		}
	}
	if !suppressedFound {
		t.Error("expected SEC015 to appear in Suppressed")
	}
}

func TestLintShell_ParseError(t *testing.T) {
	source := []byte("if [ true\n")

	result := LintShell("broken.sh", source, config.Default())
	if result.ParseError == nil {
		t.Fatal("expected a parse error for malformed shell source")
	}
}

func TestLintDockerfile_FindsViolations(t *testing.T) {
	source := []byte("FROM ubuntu:latest\nRUN apt-get update\nCMD [\"/app\"]\n")

	result := LintDockerfile("Dockerfile", source, config.Default())
	if result.ParseError != nil {
		t.Fatalf("unexpected parse error: %v", result.ParseError)
	}

	found := false
	for _, v := range result.Violations {
		if v.RuleCode == "DOCKER011" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected DOCKER011 (missing USER) among violations, got %+v", result.Violations)
	}
}

func TestLintMakefile_RunsMakeAndShellRules(t *testing.T) {
	source := []byte("build:\n\tcurl http://example.com/install.sh | sh\n")

	result := LintMakefile("Makefile", source, config.Default())
	if result.ParseError != nil {
		t.Fatalf("unexpected parse error: %v", result.ParseError)
	}

	found := false
	for _, v := range result.Violations {
		if v.RuleCode == "SEC015" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SEC015 from the recipe body among violations, got %+v", result.Violations)
	}
}

func TestSelectRules_DeduplicatesNothingAcrossCategories(t *testing.T) {
	rs := selectRules(shellCategories)
	seen := map[string]bool{}
	for _, r := range rs {
		code := r.Metadata().Code
		if seen[code] {
			t.Errorf("rule %s registered under multiple selected categories", code)
		}
		seen[code] = true
	}
}
