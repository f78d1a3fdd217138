package docker_test

import (
	"testing"

	"github.com/wharflab/bashrs/internal/rules/docker"
)

const docker013SyntaxDirective = "# syntax=docker/dockerfile:1\n"

func TestDOCKER013_RunHeredocWithoutShebangFlagged(t *testing.T) {
	r := docker.NewDOCKER013Rule()
	content := docker013SyntaxDirective + "FROM alpine\nRUN <<EOF\necho hello\nEOF\n"
	diags := r.Check(parseDockerInput(t, content))
	if len(diags) != 1 {
		t.Fatalf("Check() = %d diagnostics, want 1", len(diags))
	}
	if diags[0].Code != "DOCKER013" {
		t.Errorf("Code = %q, want DOCKER013", diags[0].Code)
	}
}

func TestDOCKER013_RunHeredocWithShebangNotFlagged(t *testing.T) {
	r := docker.NewDOCKER013Rule()
	content := docker013SyntaxDirective + "FROM alpine\nRUN <<EOF\n#!/bin/sh -e\necho hello\nEOF\n"
	diags := r.Check(parseDockerInput(t, content))
	if len(diags) != 0 {
		t.Errorf("Check() = %d diagnostics, want 0", len(diags))
	}
}

func TestDOCKER013_CopyHeredocNotFlagged(t *testing.T) {
	r := docker.NewDOCKER013Rule()
	content := docker013SyntaxDirective + "FROM alpine\nCOPY <<EOF /app/config.txt\nkey=value\nEOF\n"
	diags := r.Check(parseDockerInput(t, content))
	if len(diags) != 0 {
		t.Errorf("Check() = %d diagnostics, want 0 (COPY heredocs are inline sources, not scripts)", len(diags))
	}
}

func TestDOCKER013_NoHeredocsNotFlagged(t *testing.T) {
	r := docker.NewDOCKER013Rule()
	diags := r.Check(parseDockerInput(t, "FROM alpine\nRUN echo hello\n"))
	if len(diags) != 0 {
		t.Errorf("Check() = %d diagnostics, want 0", len(diags))
	}
}
