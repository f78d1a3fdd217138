package docker

import (
	"fmt"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/rules"
)

const docker012DefaultMaxLines = 300

type docker012Rule struct{}

func NewDOCKER012Rule() rules.Rule { return docker012Rule{} }

func (docker012Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "DOCKER012",
		Name:             "max-lines",
		Description:      "Dockerfile exceeds the recommended maximum line count",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryDocker,
		EnabledByDefault: false,
	}
}

func (docker012Rule) Check(input rules.LintInput) []diag.Diagnostic {
	if input.Dockerfile == nil {
		return nil
	}

	effective := input.Dockerfile.TotalLines - input.Dockerfile.BlankLines - input.Dockerfile.CommentLines
	skipped := input.Dockerfile.BlankLines + input.Dockerfile.CommentLines

	if effective <= docker012DefaultMaxLines {
		return nil
	}

	msg := fmt.Sprintf("file has %d lines", effective)
	if skipped > 0 {
		msg += fmt.Sprintf(" (excluding %d blank/comment lines)", skipped)
	}
	msg += fmt.Sprintf(", maximum recommended is %d", docker012DefaultMaxLines)

	return []diag.Diagnostic{
		diag.New("DOCKER012", diag.Warning, msg, diag.NewSpan(1, 1, 1, 1)),
	}
}
