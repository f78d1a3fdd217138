package docker_test

import (
	"strings"
	"testing"

	"github.com/wharflab/bashrs/internal/dockerfile"
	"github.com/wharflab/bashrs/internal/rules"
	"github.com/wharflab/bashrs/internal/rules/docker"
)

func parseDockerInput(t *testing.T, content string) rules.LintInput {
	t.Helper()
	parsed, err := dockerfile.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("dockerfile.Parse() error = %v", err)
	}
	return rules.LintInput{Source: []byte(content), Dockerfile: parsed, FileKind: "dockerfile"}
}

func TestDOCKER012_UnderLimitNotFlagged(t *testing.T) {
	r := docker.NewDOCKER012Rule()
	input := parseDockerInput(t, "FROM alpine:3.18\nRUN echo hello\n")
	diags := r.Check(input)
	if len(diags) != 0 {
		t.Errorf("Check() = %d diagnostics, want 0", len(diags))
	}
}

func TestDOCKER012_BlankAndCommentLinesExcluded(t *testing.T) {
	r := docker.NewDOCKER012Rule()
	var b strings.Builder
	b.WriteString("FROM alpine:3.18\n")
	for i := 0; i < 301; i++ {
		b.WriteString("\n# padding comment\n")
	}
	input := parseDockerInput(t, b.String())
	diags := r.Check(input)
	if len(diags) != 0 {
		t.Errorf("Check() = %d diagnostics, want 0 (blank/comment lines shouldn't count)", len(diags))
	}
}

func TestDOCKER012_OverLimitFlagged(t *testing.T) {
	r := docker.NewDOCKER012Rule()
	var b strings.Builder
	b.WriteString("FROM alpine:3.18\n")
	for i := 0; i < 301; i++ {
		b.WriteString("RUN echo step\n")
	}
	input := parseDockerInput(t, b.String())
	diags := r.Check(input)
	if len(diags) != 1 {
		t.Fatalf("Check() = %d diagnostics, want 1", len(diags))
	}
	if diags[0].Code != "DOCKER012" {
		t.Errorf("Code = %q, want DOCKER012", diags[0].Code)
	}
}

func TestDOCKER012_NilDockerfileNotFlagged(t *testing.T) {
	r := docker.NewDOCKER012Rule()
	diags := r.Check(rules.LintInput{Source: []byte("FROM alpine\n"), FileKind: "dockerfile"})
	if len(diags) != 0 {
		t.Errorf("Check() = %d diagnostics, want 0 for a nil Dockerfile field", len(diags))
	}
}
