package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/wharflab/bashrs/internal/config"
	"github.com/wharflab/bashrs/internal/discovery"
	"github.com/wharflab/bashrs/internal/lint"
	"github.com/wharflab/bashrs/internal/reporter"
	"github.com/wharflab/bashrs/internal/sourcemap"
	"github.com/wharflab/bashrs/internal/version"
	"github.com/wharflab/bashrs/internal/violation"
)

// Exit codes mirror the scheme of the driver this was generalized from,
// widened from "no Dockerfiles found" to "no artifacts of any of the
// three kinds found".
const (
	ExitSuccess     = 0
	ExitViolations  = 1
	ExitConfigError = 2
	ExitNoFiles     = 3
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Lint shell scripts, Makefiles, and Dockerfiles",
		ArgsUsage: "[PATH...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: auto-discover)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, sarif, github-actions, markdown",
				Sources: cli.EnvVars("BASHRS_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path: stdout, stderr, or a file path",
				Sources: cli.EnvVars("BASHRS_OUTPUT_PATH"),
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "Disable colored output",
				Sources: cli.EnvVars("NO_COLOR"),
			},
			&cli.BoolFlag{
				Name:    "hide-source",
				Usage:   "Hide source code snippets",
				Sources: cli.EnvVars("BASHRS_HIDE_SOURCE"),
			},
			&cli.StringFlag{
				Name:    "fail-level",
				Usage:   "Minimum severity to cause a non-zero exit: error, warning, info, none",
				Sources: cli.EnvVars("BASHRS_FAIL_LEVEL"),
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Usage:   "Glob pattern to exclude files (repeatable)",
				Sources: cli.EnvVars("BASHRS_EXCLUDE"),
			},
			&cli.BoolFlag{
				Name:    "fix",
				Usage:   "Apply safe fixes in place",
				Sources: cli.EnvVars("BASHRS_FIX"),
			},
		},
		Action: runLint,
	}
}

func runLint(_ context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	discovered, err := discovery.Discover(inputs, discovery.Options{
		ExcludePatterns: cmd.StringSlice("exclude"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to discover files: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if len(discovered) == 0 {
		fmt.Fprintf(os.Stderr, "No shell scripts, Makefiles, or Dockerfiles found in: %v\n", inputs)
		return cli.Exit("", ExitNoFiles)
	}

	sources := map[string][]byte{}
	var allViolations []violation.Violation
	var firstCfg *config.Config

	for _, df := range discovered {
		cfg, cfgErr := loadConfigForFile(cmd, df.Path)
		if cfgErr != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load config for %s: %v\n", df.Path, cfgErr)
			return cli.Exit("", ExitConfigError)
		}
		if firstCfg == nil {
			firstCfg = cfg
		}

		source, readErr := os.ReadFile(df.Path)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", df.Path, readErr)
			return cli.Exit("", ExitConfigError)
		}
		sources[df.Path] = source

		result := lintFile(df, source, cfg)
		if result.ParseError != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", result.ParseError)
			return cli.Exit("", ExitConfigError)
		}
		allViolations = append(allViolations, result.Violations...)
	}

	if cmd.Bool("fix") {
		allViolations = applyLintFixes(allViolations, sources)
	}

	allViolations = reporter.SortViolations(allViolations)

	if firstCfg == nil {
		firstCfg = config.Default()
	}
	return writeLintReport(cmd, firstCfg, allViolations, sources, len(discovered))
}

func lintFile(df discovery.DiscoveredFile, source []byte, cfg *config.Config) lint.Result {
	switch df.Kind {
	case discovery.KindMakefile:
		return lint.LintMakefile(df.Path, source, cfg)
	case discovery.KindDockerfile:
		return lint.LintDockerfile(df.Path, source, cfg)
	default:
		return lint.LintShell(df.Path, source, cfg)
	}
}

// applyLintFixes rewrites each violated file's safe SuggestedFix edits in
// place and drops the fixed violations from the report. Unlike the
// diagnostic-level fix.ApplyFixes (which needs diag.Diagnostic spans
// before FromDiagnostic loses the Fix's full Alternatives/Assumptions
// shape), this works directly off violation.SuggestedFix since lint's
// pipeline only returns violations, not the diagnostics behind them.
func applyLintFixes(violations []violation.Violation, sources map[string][]byte) []violation.Violation {
	byFile := map[string][]violation.Violation{}
	for _, v := range violations {
		byFile[v.Location.File] = append(byFile[v.Location.File], v)
	}

	var remaining []violation.Violation
	for file, vs := range byFile {
		source, ok := sources[file]
		if !ok {
			remaining = append(remaining, vs...)
			continue
		}
		fixed := 0
		for _, v := range vs {
			if v.SuggestedFix == nil || v.SuggestedFix.Safety != violation.FixSafe {
				remaining = append(remaining, v)
				continue
			}
			newSource, ok := applyEdits(source, v.SuggestedFix.Edits)
			if !ok {
				remaining = append(remaining, v)
				continue
			}
			source = newSource
			fixed++
		}
		if fixed > 0 {
			sources[file] = source
			if err := os.WriteFile(file, source, 0o644); err != nil { //nolint:gosec // file permissions follow the original file's umask
				fmt.Fprintf(os.Stderr, "Warning: failed to write fixes to %s: %v\n", file, err)
			}
		}
	}
	return remaining
}

// applyEdits resolves each TextEdit's line/column Location back to a byte
// range via a sourcemap over the (unmodified-so-far) source, the same
// technique internal/fix.applySpan uses for diag.Span. Edits are applied
// in reverse order so an earlier edit's offsets don't shift under a later
// one.
func applyEdits(source []byte, edits []violation.TextEdit) ([]byte, bool) {
	if len(edits) == 0 {
		return source, false
	}
	sm := sourcemap.New(source)
	ordered := append([]violation.TextEdit(nil), edits...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Location.Start.Line > ordered[j].Location.Start.Line ||
			(ordered[i].Location.Start.Line == ordered[j].Location.Start.Line &&
				ordered[i].Location.Start.Column > ordered[j].Location.Start.Column)
	})

	out := source
	applied := false
	for _, edit := range ordered {
		start := sm.LineOffset(edit.Location.Start.Line-1) + (edit.Location.Start.Column - 1)
		end := sm.LineOffset(edit.Location.End.Line-1) + edit.Location.End.Column
		if start < 0 || end < 0 || start > len(out) || end > len(out) || start > end {
			continue
		}
		next := make([]byte, 0, len(out)-(end-start)+len(edit.NewText))
		next = append(next, out[:start]...)
		next = append(next, edit.NewText...)
		next = append(next, out[end:]...)
		out = next
		applied = true
	}
	return out, applied
}

func loadConfigForFile(cmd *cli.Command, targetFile string) (*config.Config, error) {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = config.Discover(targetFile)
	}
	return config.LoadFromFile(configPath)
}

func writeLintReport(cmd *cli.Command, cfg *config.Config, violations []violation.Violation, sources map[string][]byte, filesScanned int) error {
	format := cmd.String("format")
	if format == "" {
		format = cfg.Output.Format
	}
	formatType, err := reporter.ParseFormat(format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	w, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	defer closeFn()

	var color *bool
	if cmd.Bool("no-color") {
		f := false
		color = &f
	}

	showSource := cfg.Output.ShowSource && !cmd.Bool("hide-source")

	rep, err := reporter.New(reporter.Options{
		Format:      formatType,
		Writer:      w,
		Color:       color,
		ShowSource:  showSource,
		ToolName:    "bashrs",
		ToolURI:     "https://github.com/wharflab/bashrs",
		ToolVersion: version.RawVersion(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	if err := rep.Report(violations, sources, reporter.ReportMetadata{FilesScanned: filesScanned}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write report: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	failLevel := cmd.String("fail-level")
	if failLevel == "" {
		failLevel = cfg.Output.FailLevel
	}
	if exceedsFailLevel(violations, failLevel) {
		return cli.Exit("", ExitViolations)
	}
	return nil
}

func exceedsFailLevel(violations []violation.Violation, failLevel string) bool {
	if failLevel == "none" {
		return false
	}
	threshold, err := violation.ParseSeverity(orDefault(failLevel, "warning"))
	if err != nil {
		threshold = violation.SeverityWarning
	}
	for _, v := range violations {
		if v.Severity.IsAtLeast(threshold) {
			return true
		}
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// openOutput resolves the "stdout"/"stderr"/path output destination
// used by both --output and cfg.Output.Path into a writer, plus a close
// function the caller always defers.
func openOutput(cmd *cli.Command, cfg *config.Config) (*os.File, func(), error) {
	path := cmd.String("output")
	if path == "" {
		path = cfg.Output.Path
	}
	switch path {
	case "", "stdout":
		return os.Stdout, func() {}, nil
	case "stderr":
		return os.Stderr, func() {}, nil
	default:
		f, err := os.Create(path) //nolint:gosec // path is operator-supplied via --output/config, not attacker-controlled
		if err != nil {
			return nil, func() {}, err
		}
		return f, func() { _ = f.Close() }, nil
	}
}
