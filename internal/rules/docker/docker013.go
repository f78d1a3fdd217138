package docker

import (
	"strings"

	"github.com/wharflab/bashrs/internal/diag"
	"github.com/wharflab/bashrs/internal/dockerfile"
	"github.com/wharflab/bashrs/internal/rules"
)

type docker013Rule struct{}

func NewDOCKER013Rule() rules.Rule { return docker013Rule{} }

func (docker013Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "DOCKER013",
		Name:             "heredoc-missing-shebang",
		Description:      "RUN heredoc has no #! interpreter line and runs without -e, so a failing command mid-script won't stop the build",
		DefaultSeverity:  diag.Warning,
		Category:         rules.CategoryDocker,
		EnabledByDefault: true,
	}
}

func (docker013Rule) Check(input rules.LintInput) []diag.Diagnostic {
	if input.Dockerfile == nil {
		return nil
	}

	var out []diag.Diagnostic
	for _, hd := range dockerfile.ExtractHeredocs(input.Dockerfile) {
		if !hd.IsScript() {
			continue
		}
		if strings.HasPrefix(strings.TrimLeft(hd.Content, " \t\n"), "#!") {
			continue
		}
		line := hd.Line + 1
		out = append(out, diag.New("DOCKER013", diag.Warning,
			"RUN heredoc '"+hd.Name+"' has no #! interpreter line - it runs under the default shell without -e, so a failing command mid-script won't stop the build",
			diag.NewSpan(line, 1, line, 1)))
	}
	return out
}
