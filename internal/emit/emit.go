// Package emit serializes Shell IR (internal/ir) to POSIX-family shell
// text (spec §4.7). The emitter is the one place dialect differences are
// encoded, as emitter flags over an otherwise dialect-agnostic IR (spec
// §9 "Dialect differences").
package emit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/wharflab/bashrs/internal/ir"
)

// Dialect is the target shell (spec §6 "Transpiler configuration").
type Dialect int

const (
	DialectPosix Dialect = iota
	DialectBash
	DialectDash
	DialectAsh
)

func (d Dialect) String() string {
	switch d {
	case DialectPosix:
		return "posix"
	case DialectBash:
		return "bash"
	case DialectDash:
		return "dash"
	case DialectAsh:
		return "ash"
	default:
		return "posix"
	}
}

// ParseDialect parses a dialect name; unknown names fall back to posix.
func ParseDialect(s string) Dialect {
	switch s {
	case "bash":
		return DialectBash
	case "dash":
		return DialectDash
	case "ash":
		return DialectAsh
	default:
		return DialectPosix
	}
}

// VerificationLevel controls how much proof material Emit attaches.
type VerificationLevel int

const (
	VerifyNone VerificationLevel = iota
	VerifyBasic
	VerifyStrict
	VerifyParanoid
)

func ParseVerificationLevel(s string) VerificationLevel {
	switch s {
	case "basic":
		return VerifyBasic
	case "strict":
		return VerifyStrict
	case "paranoid":
		return VerifyParanoid
	default:
		return VerifyNone
	}
}

// Config mirrors the transpiler configuration in spec §6.
type Config struct {
	Dialect    Dialect
	Verify     VerificationLevel
	EmitProof  bool
	Optimize   bool
	StrictMode bool
}

// Proof is the sidecar Emit attaches when EmitProof is set or the
// verification level is paranoid. InputHash is the hex SHA-256 of the
// emitted script text: Emit receives only the lowered IR, so the
// restricted source itself is not hashed. The exact shape is
// underspecified beyond these fields (spec §9 Open Questions); this is
// the stable shape we commit to.
type Proof struct {
	InputHash         string   `json:"input_hash"`
	Dialect           string   `json:"dialect"`
	VerificationLevel string   `json:"verification_level"`
	PropertyClaims    []string `json:"property_claims"`
}

var paranoidClaims = []string{
	"every variable expansion is double-quoted",
	"command substitutions use $(...), never backticks",
	"comparison results materialize as 0/1 via POSIX arithmetic expansion",
	"output is deterministic: identical IR and config produce byte-identical text",
}

// emitter holds per-emission state: the monotonic temp-var counter is
// scoped per function (spec §4.7 "named from a monotonic counter per
// function scope"), reset by Emit for every function it renders.
type emitter struct {
	cfg      Config
	buf      strings.Builder
	tmpCount int
	helpers  map[string]bool
	indent   int
}

// Emit serializes prog to shell text for the given dialect/verification
// level. Output is deterministic: identical (prog, cfg) always produce
// byte-identical bytes (spec §4.7, Testable Property 6) because
// rendering never consults wall-clock time, randomness, or map iteration
// order (function names are sorted before emission).
func Emit(prog *ir.Program, cfg Config) ([]byte, *Proof, error) {
	e := &emitter{cfg: cfg, helpers: map[string]bool{}}

	e.writeLine("#!/bin/sh")
	e.writeLine("set -eu")
	e.buf.WriteString("\n")

	names := sortedFunctionNames(prog)
	collectHelpers(prog, e.helpers)

	for _, name := range helperNamesNeeded(e.helpers) {
		e.writeHelperDef(name)
	}

	for _, name := range names {
		e.tmpCount = 0
		e.emitFunction(name, prog.Functions[name])
	}

	if prog.Entry != "" {
		e.buf.WriteString("\n")
		e.writeLine(fmt.Sprintf("%s \"$@\"", prog.Entry))
	}

	out := []byte(e.buf.String())

	var proof *Proof
	if cfg.EmitProof || cfg.Verify == VerifyParanoid {
		sum := sha256.Sum256(out)
		proof = &Proof{
			InputHash:         hex.EncodeToString(sum[:]),
			Dialect:           cfg.Dialect.String(),
			VerificationLevel: verifyLevelString(cfg.Verify),
			PropertyClaims:    append([]string(nil), paranoidClaims...),
		}
	}

	return out, proof, nil
}

func verifyLevelString(v VerificationLevel) string {
	switch v {
	case VerifyBasic:
		return "basic"
	case VerifyStrict:
		return "strict"
	case VerifyParanoid:
		return "paranoid"
	default:
		return "none"
	}
}

func sortedFunctionNames(prog *ir.Program) []string {
	names := make([]string, 0, len(prog.Functions))
	for name := range prog.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	// Entry point renders last so helper/other functions are defined
	// before it is invoked at the bottom of the script.
	sort.SliceStable(names, func(i, j int) bool {
		if names[i] == prog.Entry {
			return false
		}
		if names[j] == prog.Entry {
			return true
		}
		return names[i] < names[j]
	})
	return names
}

func (e *emitter) writeLine(s string) {
	e.buf.WriteString(strings.Repeat("\t", e.indent))
	e.buf.WriteString(s)
	e.buf.WriteString("\n")
}

func (e *emitter) nextTmp() string {
	e.tmpCount++
	return fmt.Sprintf("__tmp%d", e.tmpCount)
}

func (e *emitter) emitFunction(name string, body []ir.ShellStmt) {
	e.writeLine(name + "() {")
	e.indent++
	if len(body) == 0 {
		e.writeLine(":")
	}
	for _, stmt := range body {
		e.emitStmt(stmt)
	}
	e.indent--
	e.writeLine("}")
}
