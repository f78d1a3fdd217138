// Package processor provides a composable violation processing pipeline.
//
// The processor chain pattern is inspired by golangci-lint's approach:
// violations flow through a sequence of processors, each transforming
// the slice (filtering, modifying, or augmenting).
//
// Standard pipeline order:
//  1. PathNormalization - Cross-platform path consistency
//  2. EnableFilter - Remove violations for disabled rules
//  3. SeverityOverride - Apply config severity overrides
//  4. PathExclusionFilter - Remove per-rule path exclusions
//  5. Deduplication - Remove duplicate violations
//  6. Sorting - Stable output ordering
//  7. SnippetAttachment - Populate SourceCode field
//
// Inline suppression directives (# bashrs disable-next-line=...) are not
// a processor: internal/lint applies them with directive.Filter before
// running the chain.
package processor

import (
	"github.com/wharflab/bashrs/internal/config"
	"github.com/wharflab/bashrs/internal/sourcemap"
	"github.com/wharflab/bashrs/internal/violation"
)

// Processor transforms a slice of violations.
// Implementations should be stateless where possible, using Context for shared state.
type Processor interface {
	// Name returns the processor's identifier (for debugging/logging).
	Name() string

	// Process applies the processor's logic to violations.
	// Returns the transformed slice (may be same, filtered, or modified).
	// Must not modify the input slice; return a new slice if filtering.
	Process(violations []violation.Violation, ctx *Context) []violation.Violation
}

// Context provides shared state for processors.
// Populated once before running the chain, then passed to each processor.
type Context struct {
	// Config is the loaded configuration.
	Config *config.Config

	// FileSources maps file paths to their raw source content.
	// Used by SnippetAttachment for extracting source code.
	FileSources map[string][]byte

	// SourceMaps caches parsed source maps by file path.
	// Lazily populated by GetSourceMap.
	sourceMaps map[string]*sourcemap.SourceMap
}

// NewContext creates a new processor context.
func NewContext(cfg *config.Config, fileSources map[string][]byte) *Context {
	return &Context{
		Config:      cfg,
		FileSources: fileSources,
		sourceMaps:  make(map[string]*sourcemap.SourceMap),
	}
}

// ConfigForFile returns the configuration to apply to file. The core
// treats configuration as process-wide (§5: "the registry and static
// suppression tables are treated as read-only after initialization"), so
// every file shares the one loaded Config; the per-file signature is kept
// so a future driver can layer path-specific overrides without changing
// callers.
func (ctx *Context) ConfigForFile(_ string) *config.Config {
	return ctx.Config
}

// GetSourceMap returns or creates a SourceMap for the given file.
// Returns nil if the file is not in FileSources.
func (ctx *Context) GetSourceMap(file string) *sourcemap.SourceMap {
	if sm, ok := ctx.sourceMaps[file]; ok {
		return sm
	}
	source, ok := ctx.FileSources[file]
	if !ok {
		return nil
	}
	sm := sourcemap.New(source)
	ctx.sourceMaps[file] = sm
	return sm
}

// Chain runs processors in sequence.
type Chain struct {
	processors []Processor
}

// NewChain creates a new processor chain.
func NewChain(processors ...Processor) *Chain {
	return &Chain{processors: processors}
}

// Process runs all processors in sequence.
func (c *Chain) Process(violations []violation.Violation, ctx *Context) []violation.Violation {
	for _, p := range c.processors {
		violations = p.Process(violations, ctx)
	}
	return violations
}

// filterViolations is a helper for processors that filter violations.
// It returns a new slice containing only violations where keep() returns true.
func filterViolations(violations []violation.Violation, keep func(v violation.Violation) bool) []violation.Violation {
	result := make([]violation.Violation, 0, len(violations))
	for _, v := range violations {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

// transformViolations is a helper for processors that modify violations.
// It returns a new slice with each violation transformed by transform().
func transformViolations(
	violations []violation.Violation,
	transform func(v violation.Violation) violation.Violation,
) []violation.Violation {
	result := make([]violation.Violation, len(violations))
	for i, v := range violations {
		result[i] = transform(v)
	}
	return result
}
