package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wharflab/bashrs/internal/config"
	"github.com/wharflab/bashrs/internal/discovery"
	"github.com/wharflab/bashrs/internal/rules"
	"github.com/wharflab/bashrs/internal/score"
)

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "Score shell scripts, Makefiles, and Dockerfiles against the weighted rubric",
		ArgsUsage: "[PATH...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the project report as JSON",
			},
		},
		Action: runScore,
	}
}

func runScore(_ context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	discovered, err := discovery.Discover(inputs, discovery.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to discover files: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if len(discovered) == 0 {
		fmt.Fprintf(os.Stderr, "No shell scripts, Makefiles, or Dockerfiles found in: %v\n", inputs)
		return cli.Exit("", ExitNoFiles)
	}

	registry := rules.Default()
	cfg := config.Default()

	var artifacts []score.ArtifactReport
	for _, df := range discovered {
		source, readErr := os.ReadFile(df.Path)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", df.Path, readErr)
			return cli.Exit("", ExitConfigError)
		}
		result := lintFile(df, source, cfg)
		if result.ParseError != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", df.Path, result.ParseError)
			continue
		}
		artifacts = append(artifacts, score.ScoreArtifact(df.Path, result.Violations, registry))
	}

	project := score.ScoreProject(artifacts)

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(project)
	}

	for _, a := range project.Artifacts {
		fmt.Printf("%-50s %6.1f  %s\n", a.Path, a.Score, a.Grade)
	}
	fmt.Printf("%-50s %6.1f  %s\n", "TOTAL", project.Score, project.Grade)
	return nil
}
