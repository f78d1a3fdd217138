package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wharflab/bashrs/internal/emit"
	"github.com/wharflab/bashrs/internal/ir"
	"github.com/wharflab/bashrs/internal/restrictedparser"
)

func transpileCommand() *cli.Command {
	return &cli.Command{
		Name:      "transpile",
		Usage:     "Transpile a restricted-language source file to POSIX shell",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "Target dialect: posix, bash, dash, ash",
				Value: "posix",
			},
			&cli.StringFlag{
				Name:  "verify",
				Usage: "Verification level: none, basic, strict, paranoid",
				Value: "none",
			},
			&cli.BoolFlag{
				Name:  "proof",
				Usage: "Emit a proof sidecar regardless of verification level",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the emitted shell script here instead of stdout",
			},
			&cli.StringFlag{
				Name:  "proof-output",
				Usage: "Write the proof sidecar JSON here instead of <output>.proof.json",
			},
			&cli.BoolFlag{
				Name:  "optimize",
				Usage: "Enable emitter-level optimizations",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Reject constructs the emitter would otherwise degrade gracefully",
			},
		},
		Action: runTranspile,
	}
}

func runTranspile(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return cli.Exit("Error: transpile takes exactly one FILE argument", ExitConfigError)
	}
	file := args[0]

	source, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", file, err)
		return cli.Exit("", ExitConfigError)
	}

	program, err := restrictedparser.Parse(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse %s: %v\n", file, err)
		return cli.Exit("", ExitConfigError)
	}

	lowered, err := ir.Lower(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: lower %s: %v\n", file, err)
		return cli.Exit("", ExitConfigError)
	}

	cfg := emit.Config{
		Dialect:    emit.ParseDialect(cmd.String("dialect")),
		Verify:     emit.ParseVerificationLevel(cmd.String("verify")),
		EmitProof:  cmd.Bool("proof"),
		Optimize:   cmd.Bool("optimize"),
		StrictMode: cmd.Bool("strict"),
	}

	shellSource, proof, err := emit.Emit(lowered, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: emit %s: %v\n", file, err)
		return cli.Exit("", ExitConfigError)
	}

	out := cmd.String("output")
	if out == "" {
		os.Stdout.Write(shellSource)
	} else if err := os.WriteFile(out, shellSource, 0o755); err != nil { //nolint:gosec // an emitted shell script is meant to be executable
		fmt.Fprintf(os.Stderr, "Error: failed to write %s: %v\n", out, err)
		return cli.Exit("", ExitConfigError)
	}

	if proof != nil {
		if err := writeProof(cmd, out, proof); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write proof sidecar: %v\n", err)
			return cli.Exit("", ExitConfigError)
		}
	}

	return nil
}

func writeProof(cmd *cli.Command, output string, proof *emit.Proof) error {
	path := cmd.String("proof-output")
	if path == "" {
		if output == "" {
			return proofTo(os.Stderr, proof)
		}
		path = output + ".proof.json"
	}
	f, err := os.Create(path) //nolint:gosec // path is operator-supplied via --proof-output/--output
	if err != nil {
		return err
	}
	defer f.Close()
	return proofTo(f, proof)
}

func proofTo(w io.Writer, proof *emit.Proof) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(proof)
}
