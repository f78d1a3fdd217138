package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/bashrs/internal/diag"
)

func spanOnLine(line, startCol, endCol int) diag.Span {
	return diag.Span{StartLine: line, StartCol: startCol, EndLine: line, EndCol: endCol}
}

func TestApplyFixesSingleReplacement(t *testing.T) {
	src := []byte("echo $foo\n")
	d := diag.New("SC2086", diag.Warning, "unquoted variable", spanOnLine(1, 6, 9)).
		WithFix(diag.Fix{Replacement: `"$foo"`, Safety: diag.Safe})

	out, applied, skipped := ApplyFixes(src, []diag.Diagnostic{d}, Policy{MaxSafety: diag.Unsafe})

	require.Len(t, applied, 1)
	assert.Empty(t, skipped)
	assert.Equal(t, "echo \"$foo\"\n", out)
}

func TestApplyFixesSkipsAboveMaxSafety(t *testing.T) {
	src := []byte("rm $f\n")
	d := diag.New("SEC001", diag.Error, "dangerous rm", spanOnLine(1, 1, 5)).
		WithFix(diag.Fix{Replacement: `rm -- "$f"`, Safety: diag.Unsafe})

	out, applied, skipped := ApplyFixes(src, []diag.Diagnostic{d}, Policy{MaxSafety: diag.Safe})

	assert.Empty(t, applied)
	require.Len(t, skipped, 1)
	assert.Equal(t, SkipUnsafe, skipped[0].Reason)
	assert.Equal(t, string(src), out)
}

func TestApplyFixesSkipsModeNever(t *testing.T) {
	src := []byte("echo $foo\n")
	d := diag.New("SC2086", diag.Warning, "unquoted variable", spanOnLine(1, 6, 9)).
		WithFix(diag.Fix{Replacement: `"$foo"`, Safety: diag.Safe})

	policy := Policy{MaxSafety: diag.Unsafe, RuleModes: map[string]FixMode{"SC2086": FixModeNever}}
	out, applied, skipped := ApplyFixes(src, []diag.Diagnostic{d}, policy)

	assert.Empty(t, applied)
	require.Len(t, skipped, 1)
	assert.Equal(t, SkipModeDisabled, skipped[0].Reason)
	assert.Equal(t, string(src), out)
}

func TestApplyFixesExplicitModeRequiresOptIn(t *testing.T) {
	src := []byte("echo $foo\n")
	d := diag.New("SC2086", diag.Warning, "unquoted variable", spanOnLine(1, 6, 9)).
		WithFix(diag.Fix{Replacement: `"$foo"`, Safety: diag.Safe})

	policy := Policy{MaxSafety: diag.Unsafe, RuleModes: map[string]FixMode{"SC2086": FixModeExplicit}}
	_, applied, skipped := ApplyFixes(src, []diag.Diagnostic{d}, policy)
	assert.Empty(t, applied)
	require.Len(t, skipped, 1)

	policy.ExplicitRules = map[string]bool{"SC2086": true}
	out, applied, skipped := ApplyFixes(src, []diag.Diagnostic{d}, policy)
	require.Len(t, applied, 1)
	assert.Empty(t, skipped)
	assert.Equal(t, "echo \"$foo\"\n", out)
}

func TestApplyFixesSkipsOverlappingSpans(t *testing.T) {
	src := []byte("echo $foo$bar\n")
	d1 := diag.New("SC2086", diag.Warning, "first", diag.Span{StartLine: 1, StartCol: 6, EndLine: 1, EndCol: 9}).
		WithFix(diag.Fix{Replacement: `"$foo"`, Safety: diag.Safe})
	d2 := diag.New("SC2086", diag.Warning, "second", diag.Span{StartLine: 1, StartCol: 7, EndLine: 1, EndCol: 13}).
		WithFix(diag.Fix{Replacement: `"$bar"`, Safety: diag.Safe})

	out, applied, skipped := ApplyFixes(src, []diag.Diagnostic{d1, d2}, Policy{MaxSafety: diag.Unsafe})

	require.Len(t, applied, 1)
	assert.Equal(t, d1.Span, applied[0].Span)
	require.Len(t, skipped, 1)
	assert.Equal(t, SkipConflict, skipped[0].Reason)
	assert.Equal(t, "echo \"$foo\"$bar\n", out)
}

func TestApplyFixesMultipleNonOverlappingAppliedInReverseOrder(t *testing.T) {
	src := []byte("echo $a\necho $b\n")
	d1 := diag.New("SC2086", diag.Warning, "a", spanOnLine(1, 6, 7)).
		WithFix(diag.Fix{Replacement: `"$a"`, Safety: diag.Safe})
	d2 := diag.New("SC2086", diag.Warning, "b", spanOnLine(2, 6, 7)).
		WithFix(diag.Fix{Replacement: `"$b"`, Safety: diag.Safe})

	out, applied, skipped := ApplyFixes(src, []diag.Diagnostic{d2, d1}, Policy{MaxSafety: diag.Unsafe})

	require.Len(t, applied, 2)
	assert.Empty(t, skipped)
	assert.Equal(t, "echo \"$a\"\necho \"$b\"\n", out)
}

func TestApplyFixesIgnoresDiagnosticsWithoutFix(t *testing.T) {
	src := []byte("echo $foo\n")
	d := diag.New("SC2086", diag.Warning, "unquoted variable", spanOnLine(1, 6, 9))

	out, applied, skipped := ApplyFixes(src, []diag.Diagnostic{d}, Policy{MaxSafety: diag.Unsafe})

	assert.Empty(t, applied)
	assert.Empty(t, skipped)
	assert.Equal(t, string(src), out)
}

func TestApplyFixesUnsafeOnlyModeRejectsSafeFix(t *testing.T) {
	src := []byte("echo $foo\n")
	d := diag.New("SC2086", diag.Warning, "unquoted variable", spanOnLine(1, 6, 9)).
		WithFix(diag.Fix{Replacement: `"$foo"`, Safety: diag.Safe})

	policy := Policy{MaxSafety: diag.Unsafe, RuleModes: map[string]FixMode{"SC2086": FixModeUnsafeOnly}}
	_, applied, skipped := ApplyFixes(src, []diag.Diagnostic{d}, policy)

	assert.Empty(t, applied)
	require.Len(t, skipped, 1)
	assert.Equal(t, SkipModeDisabled, skipped[0].Reason)
}
