package emit

import (
	"sort"

	"github.com/wharflab/bashrs/internal/ir"
)

// collectHelpers walks every function in prog and records, in helpers,
// every runtime helper name any Exec node requires (spec §4.6 "Command
// effects" / §C "Runtime helper injection": "a fixed table of helper
// shell functions the emitter prepends").
func collectHelpers(prog *ir.Program, helpers map[string]bool) {
	for _, body := range prog.Functions {
		collectHelpersInStmts(body, helpers)
	}
}

func collectHelpersInStmts(stmts []ir.ShellStmt, helpers map[string]bool) {
	for _, stmt := range stmts {
		collectHelpersInStmt(stmt, helpers)
	}
}

func collectHelpersInStmt(stmt ir.ShellStmt, helpers map[string]bool) {
	switch s := stmt.(type) {
	case *ir.Exec:
		for _, h := range s.RequiresHelpers {
			helpers[h] = true
		}
		for _, a := range s.Args {
			collectHelpersInValue(a, helpers)
		}
	case *ir.Let:
		collectHelpersInValue(s.Value, helpers)
	case *ir.If:
		collectHelpersInStmt(s.Cond, helpers)
		collectHelpersInStmts(s.Then, helpers)
		collectHelpersInStmts(s.Else, helpers)
	case *ir.For:
		collectHelpersInValue(s.Seq.Start, helpers)
		collectHelpersInValue(s.Seq.End, helpers)
		collectHelpersInStmts(s.Body, helpers)
	case *ir.Sequence:
		collectHelpersInStmts(s.Stmts, helpers)
	}
}

func collectHelpersInValue(v ir.ShellValue, helpers map[string]bool) {
	switch val := v.(type) {
	case *ir.CommandSub:
		collectHelpersInStmts(val.Body, helpers)
	case *ir.Arithmetic:
		collectHelpersInValue(val.Left, helpers)
		collectHelpersInValue(val.Right, helpers)
	case *ir.Concat:
		for _, p := range val.Parts {
			collectHelpersInValue(p, helpers)
		}
	}
}

// helperNamesNeeded returns a sorted, deterministic list of helper names
// to define, restricted to names this package actually knows how to
// render (an unrecognized helper name is a Lower bug, not an Emit one,
// and is silently skipped rather than producing broken shell text).
func helperNamesNeeded(helpers map[string]bool) []string {
	names := make([]string, 0, len(helpers))
	for name := range helpers {
		if _, ok := helperDefs[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// helperDefs is the fixed table of runtime helper shell functions (spec
// §C "Runtime helper injection": "a fixed table of helper shell
// functions the emitter prepends", rather than inlining the same
// download/verify boilerplate at every call site).
var helperDefs = map[string]string{
	"rash_download_verified": `rash_download_verified() {
	_url="$1"
	_dest="$2"
	_sha256="${3:-}"
	if command -v curl >/dev/null 2>&1; then
		curl -fsSL -o "$_dest" "$_url"
	elif command -v wget >/dev/null 2>&1; then
		wget -q -O "$_dest" "$_url"
	else
		echo "rash_download_verified: neither curl nor wget available" >&2
		return 1
	fi
	if [ -n "$_sha256" ]; then
		rash_checksum_compare "$_dest" "$_sha256"
	fi
}`,
	"rash_checksum_compare": `rash_checksum_compare() {
	_file="$1"
	_expected="$2"
	_actual=$(sha256sum "$_file" 2>/dev/null | cut -d' ' -f1)
	if [ -z "$_actual" ]; then
		_actual=$(shasum -a 256 "$_file" 2>/dev/null | cut -d' ' -f1)
	fi
	if [ "$_actual" != "$_expected" ]; then
		echo "rash_checksum_compare: checksum mismatch for $_file" >&2
		return 1
	fi
}`,
}

func (e *emitter) writeHelperDef(name string) {
	def, ok := helperDefs[name]
	if !ok {
		return
	}
	e.buf.WriteString(def)
	e.buf.WriteString("\n\n")
}
