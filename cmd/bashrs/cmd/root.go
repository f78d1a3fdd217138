// Package cmd assembles bashrs's command tree: lint, purify, transpile,
// score, and version, following the same Command-per-subcommand /
// NewApp / Execute shape the lint/root driver of the repo this was
// generalized from uses.
package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wharflab/bashrs/internal/version"
)

// NewApp builds the bashrs command tree.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:        "bashrs",
		Usage:       "Lint, purify, and transpile shell scripts, Makefiles, and Dockerfiles",
		Version:     version.Version(),
		Description: "A safety-oriented toolchain for bash scripts, Makefile recipes, and Dockerfiles: a diagnostic rule engine, an idempotency/determinism purifier, and a restricted-language-to-POSIX-shell transpiler.",
		Commands: []*cli.Command{
			lintCommand(),
			purifyCommand(),
			transpileCommand(),
			scoreCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the bashrs CLI against os.Args.
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
