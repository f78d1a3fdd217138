package processor

import (
	"github.com/wharflab/bashrs/internal/reporter"
	"github.com/wharflab/bashrs/internal/violation"
)

// Sorting ensures stable, deterministic output ordering.
// Order: file path, then line number, then column, then rule code.
// This ensures identical output across runs and platforms.
type Sorting struct{}

// NewSorting creates a new sorting processor.
func NewSorting() *Sorting {
	return &Sorting{}
}

// Name returns the processor's identifier.
func (p *Sorting) Name() string {
	return "sorting"
}

// Process sorts violations in a stable order.
// Uses the existing reporter.SortViolations implementation.
func (p *Sorting) Process(violations []violation.Violation, _ *Context) []violation.Violation {
	// reporter.SortViolations returns a new sorted slice
	return reporter.SortViolations(violations)
}
