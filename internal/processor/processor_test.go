package processor

import (
	"testing"

	"github.com/wharflab/bashrs/internal/config"
	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
	"github.com/wharflab/bashrs/internal/violation"
)

func TestChain(t *testing.T) {
	violations := []violation.Violation{
		violation.NewViolation(violation.NewLineLocation("a.txt", 1), "rule1", "message1", violation.SeverityWarning),
		violation.NewViolation(violation.NewLineLocation("b.txt", 2), "rule2", "message2", violation.SeverityError),
	}

	// Chain that filters out all violations
	chain := NewChain(&mockProcessor{name: "filter-all", filter: func(v violation.Violation) bool { return false }})
	ctx := NewContext(config.Default(), nil)

	result := chain.Process(violations, ctx)
	if len(result) != 0 {
		t.Errorf("expected 0 violations, got %d", len(result))
	}
}

func TestPathNormalization(t *testing.T) {
	violations := []violation.Violation{
		violation.NewViolation(violation.NewLineLocation("path\\to\\file.txt", 1), "rule1", "msg", violation.SeverityWarning),
	}

	p := NewPathNormalization()
	ctx := NewContext(config.Default(), nil)

	result := p.Process(violations, ctx)
	if len(result) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(result))
	}
	if result[0].Location.File != "path/to/file.txt" {
		t.Errorf("expected path/to/file.txt, got %s", result[0].Location.File)
	}
}

func TestDeduplication(t *testing.T) {
	violations := []violation.Violation{
		violation.NewViolation(
			violation.NewLineLocation("file.txt", 1), "rule1", "msg1", violation.SeverityWarning),
		// duplicate
		violation.NewViolation(
			violation.NewLineLocation("file.txt", 1), "rule1", "msg2", violation.SeverityWarning),
		// different line
		violation.NewViolation(
			violation.NewLineLocation("file.txt", 2), "rule1", "msg3", violation.SeverityWarning),
		// different rule
		violation.NewViolation(
			violation.NewLineLocation("file.txt", 1), "rule2", "msg4", violation.SeverityWarning),
	}

	p := NewDeduplication()
	ctx := NewContext(config.Default(), nil)

	result := p.Process(violations, ctx)
	if len(result) != 3 {
		t.Errorf("expected 3 unique violations, got %d", len(result))
	}
}

func TestSorting(t *testing.T) {
	violations := []violation.Violation{
		violation.NewViolation(violation.NewLineLocation("b.txt", 2), "rule2", "msg", violation.SeverityWarning),
		violation.NewViolation(violation.NewLineLocation("a.txt", 1), "rule1", "msg", violation.SeverityWarning),
		violation.NewViolation(violation.NewLineLocation("b.txt", 1), "rule1", "msg", violation.SeverityWarning),
	}

	p := NewSorting()
	ctx := NewContext(config.Default(), nil)

	result := p.Process(violations, ctx)
	if len(result) != 3 {
		t.Fatalf("expected 3 violations, got %d", len(result))
	}

	// Should be sorted by file, then line
	if result[0].Location.File != "a.txt" {
		t.Errorf("first violation should be in a.txt, got %s", result[0].Location.File)
	}
	if result[1].Location.File != "b.txt" || result[1].Location.Start.Line != 1 {
		t.Errorf(
			"second violation should be b.txt:1, got %s:%d",
			result[1].Location.File, result[1].Location.Start.Line)
	}
	if result[2].Location.File != "b.txt" || result[2].Location.Start.Line != 2 {
		t.Errorf(
			"third violation should be b.txt:2, got %s:%d",
			result[2].Location.File, result[2].Location.Start.Line)
	}
}

func TestEnableFilter(t *testing.T) {
	violations := []violation.Violation{
		violation.NewViolation(
			violation.NewLineLocation("file.txt", 1), "DOCKER012", "msg", violation.SeverityWarning),
		violation.NewViolation(
			violation.NewLineLocation("file.txt", 2),
			"DOCKER008", "msg", violation.SeverityWarning),
	}

	cfg := config.Default()
	cfg.Rules.Exclude = append(cfg.Rules.Exclude, "DOCKER012")

	p := NewEnableFilter()
	ctx := NewContext(cfg, nil)

	result := p.Process(violations, ctx)
	if len(result) != 1 {
		t.Fatalf("expected 1 violation (disabled rule filtered), got %d", len(result))
	}
	if result[0].RuleCode != "DOCKER008" {
		t.Errorf("expected DOCKER008, got %s", result[0].RuleCode)
	}
}

func TestSeverityOverride(t *testing.T) {
	violations := []violation.Violation{
		violation.NewViolation(
			violation.NewLineLocation("file.txt", 1), "DOCKER012", "msg", violation.SeverityWarning),
		violation.NewViolation(
			violation.NewLineLocation("file.txt", 2), "DOCKER008", "msg", violation.SeverityWarning),
	}

	cfg := config.Default()
	cfg.Rules.Set("DOCKER012", config.RuleConfig{Severity: "info"})

	p := NewSeverityOverride()
	ctx := NewContext(cfg, nil)

	result := p.Process(violations, ctx)
	if len(result) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(result))
	}
	if result[0].Severity != violation.SeverityInfo {
		t.Errorf("expected severity info for DOCKER012, got %s", result[0].Severity)
	}
	if result[1].Severity != violation.SeverityWarning {
		t.Errorf("expected severity warning for DOCKER008, got %s", result[1].Severity)
	}
}

func TestPathExclusionFilter(t *testing.T) {
	violations := []violation.Violation{
		violation.NewViolation(
			violation.NewLineLocation("src/main.sh", 1), "SEC015", "msg", violation.SeverityWarning),
		violation.NewViolation(
			violation.NewLineLocation("test/main_test.sh", 1), "SEC015", "msg", violation.SeverityWarning),
		violation.NewViolation(
			violation.NewLineLocation("vendor/lib.sh", 1), "SEC015", "msg", violation.SeverityWarning),
	}

	cfg := config.Default()
	cfg.Rules.Set("SEC015", config.RuleConfig{
		Exclude: config.ExcludeConfig{
			Paths: []string{"test/**", "vendor/**"},
		},
	})

	p := NewPathExclusionFilter()
	ctx := NewContext(cfg, nil)

	result := p.Process(violations, ctx)
	if len(result) != 1 {
		t.Fatalf("expected 1 violation (test and vendor excluded), got %d", len(result))
	}
	if result[0].Location.File != "src/main.sh" {
		t.Errorf("expected src/main.sh, got %s", result[0].Location.File)
	}
}

func TestSnippetAttachment(t *testing.T) {
	source := []byte("line 1\nline 2\nline 3\n")
	violations := []violation.Violation{
		violation.NewViolation(violation.NewLineLocation("file.txt", 2), "rule1", "msg", violation.SeverityWarning),
	}

	p := NewSnippetAttachment()
	ctx := NewContext(config.Default(), map[string][]byte{"file.txt": source})

	result := p.Process(violations, ctx)
	if len(result) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(result))
	}
	if result[0].SourceCode != "line 2" {
		t.Errorf("expected 'line 2', got %q", result[0].SourceCode)
	}
}

// mockProcessor is a test helper for custom processor behavior.
type mockProcessor struct {
	name   string
	filter func(v violation.Violation) bool
}

func (m *mockProcessor) Name() string { return m.name }

func (m *mockProcessor) Process(violations []violation.Violation, _ *Context) []violation.Violation {
	if m.filter == nil {
		return violations
	}
	return filterViolations(violations, m.filter)
}

func TestSeverityOverride_AutoEnableOffRules(t *testing.T) {
	registry := rules.NewRegistry()
	mockRule := &mockRuleWithMetadata{
		code:             "DOCKER099",
		defaultSeverity:  diag.Info,
		enabledByDefault: false,
	}
	registry.Register(mockRule)

	violations := []violation.Violation{
		violation.NewViolation(
			violation.NewLineLocation("file.txt", 1),
			"DOCKER099",
			"test violation",
			violation.SeverityInfo,
		),
	}

	cfg := config.Default()
	cfg.Rules.Set("DOCKER099", config.RuleConfig{
		Options: map[string]any{
			"threshold": 5,
		},
	})

	p := NewSeverityOverrideWithRegistry(registry)
	ctx := NewContext(cfg, nil)

	result := p.Process(violations, ctx)
	if len(result) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(result))
	}
	if result[0].Severity != violation.SeverityWarning {
		t.Errorf("expected severity=warning (auto-enabled), got %v", result[0].Severity)
	}
}

// mockRuleWithMetadata is a mock rule for testing.
type mockRuleWithMetadata struct {
	code             string
	defaultSeverity  diag.Severity
	enabledByDefault bool
}

func (m *mockRuleWithMetadata) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             m.code,
		DefaultSeverity:  m.defaultSeverity,
		EnabledByDefault: m.enabledByDefault,
	}
}

func (m *mockRuleWithMetadata) Check(_ rules.LintInput) []diag.Diagnostic {
	return nil
}
