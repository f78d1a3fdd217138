package processor

import (
	"testing"

	"github.com/wharflab/bashrs/internal/violation"
)

func TestSupersession_ErrorSuppressesLower(t *testing.T) {
	t.Parallel()
	p := NewSupersession()

	violations := []violation.Violation{
		{
			RuleCode: "buildkit/ReservedStageName",
			Severity: violation.SeverityError,
			Location: violation.Location{File: "Dockerfile", Start: violation.Position{Line: 1}},
		},
		{
			RuleCode: "buildkit/StageNameCasing",
			Severity: violation.SeverityWarning,
			Location: violation.Location{File: "Dockerfile", Start: violation.Position{Line: 1}},
		},
		{
			RuleCode: "buildkit/StageNameCasing",
			Severity: violation.SeverityWarning,
			Location: violation.Location{File: "Dockerfile", Start: violation.Position{Line: 5}},
		},
	}

	result := p.Process(violations, nil)
	if len(result) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(result))
	}
	if result[0].RuleCode != "buildkit/ReservedStageName" {
		t.Errorf("expected ReservedStageName, got %q", result[0].RuleCode)
	}
	if result[1].RuleCode != "buildkit/StageNameCasing" || result[1].Location.Start.Line != 5 {
		t.Errorf("expected StageNameCasing on line 5, got %q on line %d",
			result[1].RuleCode, result[1].Location.Start.Line)
	}
}

func TestSupersession_MultipleErrors(t *testing.T) {
	t.Parallel()
	p := NewSupersession()

	violations := []violation.Violation{
		{
			RuleCode: "rule/error-a",
			Severity: violation.SeverityError,
			Location: violation.Location{File: "Dockerfile", Start: violation.Position{Line: 3}},
		},
		{
			RuleCode: "rule/error-b",
			Severity: violation.SeverityError,
			Location: violation.Location{File: "Dockerfile", Start: violation.Position{Line: 3}},
		},
		{
			RuleCode: "rule/info",
			Severity: violation.SeverityInfo,
			Location: violation.Location{File: "Dockerfile", Start: violation.Position{Line: 3}},
		},
	}

	result := p.Process(violations, nil)
	if len(result) != 2 {
		t.Fatalf("expected 2 violations (both errors kept, info dropped), got %d", len(result))
	}
}

func TestSupersession_NoErrors(t *testing.T) {
	t.Parallel()
	p := NewSupersession()

	violations := []violation.Violation{
		{
			RuleCode: "buildkit/StageNameCasing",
			Severity: violation.SeverityWarning,
			Location: violation.Location{File: "Dockerfile", Start: violation.Position{Line: 1}},
		},
		{
			RuleCode: "buildkit/DuplicateStageName",
			Severity: violation.SeverityWarning,
			Location: violation.Location{File: "Dockerfile", Start: violation.Position{Line: 3}},
		},
	}

	result := p.Process(violations, nil)
	if len(result) != 2 {
		t.Fatalf("expected 2 violations (no suppression), got %d", len(result))
	}
}
