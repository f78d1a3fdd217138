// Package lint wires the diagnostic core together: it parses a file,
// selects the rules that apply to its kind, runs them, converts the
// resulting diagnostics to violations, applies inline-suppression
// directives, and runs the standard processor.Chain to normalize,
// dedupe, sort, and attach snippets.
package lint

import (
	"bytes"
	"fmt"

	"github.com/wharflab/bashrs/internal/bashparser"
	"github.com/wharflab/bashrs/internal/config"
	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/directive"
	"github.com/wharflab/bashrs/internal/dockerfile"
	makepp "github.com/wharflab/bashrs/internal/make"
	"github.com/wharflab/bashrs/internal/processor"
	"github.com/wharflab/bashrs/internal/rules"
	"github.com/wharflab/bashrs/internal/sourcemap"
	"github.com/wharflab/bashrs/internal/violation"
)

// File kind identifiers, threaded through rules.LintInput.FileKind so a
// rule can special-case the file it's looking at if it needs to.
const (
	KindShell      = "shell"
	KindMakefile   = "makefile"
	KindDockerfile = "dockerfile"
)

// shellCategories are run against shell scripts and Makefile recipes,
// both of which are bash source once preprocessed.
var shellCategories = []rules.Category{
	rules.CategoryShellCheck,
	rules.CategoryBash,
	rules.CategoryDeterminism,
	rules.CategoryIdempotency,
	rules.CategorySecurity,
}

// dockerCategories are run against Dockerfiles.
var dockerCategories = []rules.Category{
	rules.CategoryDocker,
	rules.CategorySecurity,
}

// Result is the outcome of linting a single file.
type Result struct {
	File       string
	Violations []violation.Violation
	Suppressed []violation.Violation
	ParseError error
}

// LintShell lints a shell script's source, returning the file's violations
// after rule selection, suppression, and the standard processor chain.
func LintShell(file string, source []byte, cfg *config.Config) Result {
	astFile, err := bashparser.Parse(source)
	if err != nil {
		return Result{File: file, ParseError: fmt.Errorf("parse %s: %w", file, err)}
	}

	input := rules.NewLintInput(source, astFile, KindShell)
	diags := rules.Run(selectRules(shellCategories), input)
	return finishPipeline(file, source, diags, cfg)
}

// LintMakefile lints a Makefile. MAKE-family rules reason about the
// Makefile's own text (targets, recipe indentation, export lines) and run
// against the original source; internal/make.Preprocess rewrites
// tab-indented recipe lines into parseable bash so the shell-family rule
// families can run against recipe bodies the same way they run against
// a standalone script.
func LintMakefile(file string, source []byte, cfg *config.Config) Result {
	preprocessed := makepp.Preprocess(source)

	astFile, err := bashparser.Parse(preprocessed)
	if err != nil {
		return Result{File: file, ParseError: fmt.Errorf("parse %s: %w", file, err)}
	}

	makeInput := rules.NewLintInput(source, nil, KindMakefile)
	diags := rules.Run(selectRules([]rules.Category{rules.CategoryMake}), makeInput)

	shellInput := rules.NewLintInput(preprocessed, astFile, KindMakefile)
	diags = append(diags, rules.Run(selectRules(shellCategories), shellInput)...)

	return finishPipeline(file, source, diags, cfg)
}

// LintDockerfile lints a Dockerfile by parsing it into buildkit's AST and
// running the DOCKER-family and security-family rules over its source.
func LintDockerfile(file string, source []byte, cfg *config.Config) Result {
	parsed, err := dockerfile.Parse(bytes.NewReader(source))
	if err != nil {
		return Result{File: file, ParseError: fmt.Errorf("parse %s: %w", file, err)}
	}

	input := rules.LintInput{Source: source, Dockerfile: parsed, FileKind: KindDockerfile}
	diags := rules.Run(selectRules(dockerCategories), input)
	return finishPipeline(file, source, diags, cfg)
}

func selectRules(categories []rules.Category) []rules.Rule {
	reg := rules.Default()
	var out []rules.Rule
	for _, cat := range categories {
		out = append(out, reg.ByCategory(cat)...)
	}
	return out
}

// finishPipeline converts diagnostics to violations, applies inline
// suppression directives, then runs the standard processor chain on the
// violations left: PathNormalization -> EnableFilter -> SeverityOverride
// -> PathExclusionFilter -> Deduplication -> Sorting -> SnippetAttachment.
func finishPipeline(file string, source []byte, diags []diag.Diagnostic, cfg *config.Config) Result {
	if cfg == nil {
		cfg = config.Default()
	}

	violations := make([]violation.Violation, 0, len(diags))
	for _, d := range diags {
		violations = append(violations, violation.FromDiagnostic(file, d))
	}

	sm := sourcemap.New(source)
	validator := func(code string) bool {
		_, ok := rules.Default().Get(code)
		return ok
	}
	parseResult := directive.Parse(sm, validator)

	filterResult := directive.Filter(violations, parseResult.Directives)

	ctx := processor.NewContext(cfg, map[string][]byte{file: source})
	chain := processor.NewChain(
		processor.NewPathNormalization(),
		processor.NewEnableFilterWithRegistry(rules.Default()),
		processor.NewSeverityOverrideWithRegistry(rules.Default()),
		processor.NewPathExclusionFilter(),
		processor.NewDeduplication(),
		processor.NewSorting(),
		processor.NewSnippetAttachment(),
	)

	finalViolations := chain.Process(filterResult.Violations, ctx)

	return Result{
		File:       file,
		Violations: finalViolations,
		Suppressed: filterResult.Suppressed,
	}
}
