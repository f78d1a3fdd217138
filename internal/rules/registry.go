package rules

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/wharflab/bashrs/internal/diag"
)

// Registry is a thread-safe collection of rules, keyed by code. Rule
// files register themselves from an init() func, mirroring the teacher's
// self-registration pattern in internal/rules/hadolint.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule to the registry. It panics on a duplicate code,
// since that indicates a programming error (two rule files claiming the
// same code), not a runtime condition callers should handle.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code := rule.Metadata().Code
	if _, exists := r.rules[code]; exists {
		panic(fmt.Sprintf("rules: duplicate registration for code %q", code))
	}
	r.rules[code] = rule
}

// Get returns the rule registered under code, if any.
func (r *Registry) Get(code string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[code]
	return rule, ok
}

// All returns every registered rule, sorted by code.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Metadata().Code < out[j].Metadata().Code
	})
	return out
}

// Codes returns every registered code, sorted.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.rules))
	for code := range r.rules {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// ByCategory returns every registered rule in the given category, sorted
// by code.
func (r *Registry) ByCategory(cat Category) []Rule {
	var out []Rule
	for _, rule := range r.All() {
		if rule.Metadata().Category == cat {
			out = append(out, rule)
		}
	}
	return out
}

// EnabledByDefault returns every registered rule enabled out of the box.
func (r *Registry) EnabledByDefault() []Rule {
	var out []Rule
	for _, rule := range r.All() {
		if rule.Metadata().EnabledByDefault {
			out = append(out, rule)
		}
	}
	return out
}

// Run invokes every rule in rules against input, recovering from any
// panic a single rule raises and converting it into an INTERNAL001 Info
// meta-diagnostic instead of propagating — the InternalRuleFailure
// discipline from spec §7: one recover per rule per source, never
// surfaced as a returned error.
func Run(rulesToRun []Rule, input LintInput) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, rule := range rulesToRun {
		out = append(out, runOne(rule, input)...)
	}
	return out
}

func runOne(rule Rule, input LintInput) (result []diag.Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			result = []diag.Diagnostic{{
				Code:     diag.InternalRuleFailureCode,
				Severity: diag.Info,
				Message:  fmt.Sprintf("rule %s failed internally: %v", rule.Metadata().Code, rec),
				Span:     diag.Point(1, 1),
				Meta:     true,
			}}
		}
	}()
	return rule.Check(input)
}

// defaultRegistry is populated by every rule family's init() function.
var defaultRegistry = NewRegistry()

// Register adds rule to the package-level default registry.
func Register(rule Rule) { defaultRegistry.Register(rule) }

// Default returns the package-level default registry.
func Default() *Registry { return defaultRegistry }

// lists every Category value in one place for documentation purposes;
// the result is discarded and nothing checks that the values are distinct.
var _ = slices.Contains([]Category{
	CategoryShellCheck, CategoryBash, CategoryDeterminism,
	CategoryIdempotency, CategorySecurity, CategoryMake, CategoryDocker,
}, CategoryBash)
