// Package rules defines the Rule interface and registry every SC/BASH/
// DET/IDEM/SEC/MAKE/DOCKER check implements, directly templated on the
// teacher's internal/rules package (BuildContext/LintInput/RuleMetadata/
// Rule/Registry), adapted from BuildKit's Dockerfile AST to our own
// bashast/Make-preprocessed-text/Dockerfile-AST inputs.
package rules

import (
	"github.com/wharflab/bashrs/internal/bashast"
	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/dockerfile"
	"github.com/wharflab/bashrs/internal/sourcemap"
)

// Category groups rules by the family of concern they check, matching
// the spec's own namespace prefixes.
type Category string

const (
	CategoryShellCheck  Category = "shellcheck"  // SCxxxx
	CategoryBash        Category = "bash"        // BASHxxx
	CategoryDeterminism Category = "determinism" // DETxxx
	CategoryIdempotency Category = "idempotency" // IDEMxxx
	CategorySecurity    Category = "security"    // SECxxx
	CategoryMake        Category = "make"        // MAKExxx
	CategoryDocker      Category = "docker"      // DOCKERxxx
)

// RuleMetadata describes a rule for documentation, filtering, and
// reporting purposes — the registry's source of truth for a rule's code,
// default severity, and category.
type RuleMetadata struct {
	Code             string
	Name             string
	Description      string
	DocURL           string
	DefaultSeverity  diag.Severity
	Category         Category
	EnabledByDefault bool
	IsExperimental   bool
}

// LintInput bundles everything a rule needs: the raw source bytes, the
// parsed bashast (nil for Make/Dockerfile rules), the Dockerfile parse
// result (nil unless FileKind=="dockerfile") carrying both the BuildKit
// AST and the line-classification counts and heredocs derived from it,
// and the file's classification from the suppression engine
// (script/config/library/makefile/dockerfile).
type LintInput struct {
	Source     []byte
	File       *bashast.File
	Dockerfile *dockerfile.ParseResult
	FileKind   string

	sm *sourcemap.SourceMap
}

// NewLintInput builds a LintInput over bash source.
func NewLintInput(source []byte, file *bashast.File, fileKind string) LintInput {
	return LintInput{Source: source, File: file, FileKind: fileKind}
}

// SourceMap returns (creating if needed) the SourceMap over Source.
func (in *LintInput) SourceMap() *sourcemap.SourceMap {
	if in.sm == nil {
		in.sm = sourcemap.New(in.Source)
	}
	return in.sm
}

// Snippet returns the source text for a span (1-indexed, inclusive).
func (in *LintInput) Snippet(span diag.Span) string {
	return in.SourceMap().Snippet(span.StartLine-1, span.EndLine-1)
}

// Rule is implemented by every check. Check must never panic in
// production use; the registry's runner recovers from panics at the
// call boundary and converts them into an INTERNAL001 meta-diagnostic,
// but a well-behaved Rule should not rely on that safety net.
type Rule interface {
	Metadata() RuleMetadata
	Check(input LintInput) []diag.Diagnostic
}
