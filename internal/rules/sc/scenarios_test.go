package sc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/bashrs/internal/rules"
	"github.com/wharflab/bashrs/internal/rules/sc"
)

func codesFor(t *testing.T, r rules.Rule, source string) []string {
	t.Helper()
	diags := r.Check(rules.NewLintInput([]byte(source), nil, "script"))
	codes := make([]string, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	return codes
}

func TestSC2102_EREContextExempt(t *testing.T) {
	r := sc.NewSC2102Rule()
	diags := codesFor(t, r, "grep -oE 'error\\[E[0-9]+\\]' log\n")
	assert.Empty(t, diags, "grep -E is an ERE context, [0-9]+ should not be flagged")
}

func TestSC2102_FlagsPlusQuantifierOutsideERE(t *testing.T) {
	r := sc.NewSC2102Rule()
	diags := codesFor(t, r, "grep '[0-9]+' log\n")
	require.NotEmpty(t, diags)
	assert.Equal(t, "SC2102", diags[0])
}

func TestSC2317_ConditionalExitDoesNotMarkDeadCode(t *testing.T) {
	r := sc.NewSC2317Rule()
	diags := codesFor(t, r, "cd /tmp || exit 1\necho reachable\n")
	assert.Empty(t, diags)
}

func TestSC2317_UnconditionalExitMarksFollowingLineDead(t *testing.T) {
	r := sc.NewSC2317Rule()
	diags := codesFor(t, r, "exit 1\necho unreachable\n")
	require.NotEmpty(t, diags)
	assert.Equal(t, "SC2317", diags[0])
}

func TestSC2317_ResetsAtBlockCloser(t *testing.T) {
	r := sc.NewSC2317Rule()
	diags := codesFor(t, r, "if true; then\n  exit 1\nfi\necho reachable\n")
	assert.Empty(t, diags)
}

func TestSC2171_SuppressedInsideHeredoc(t *testing.T) {
	r := sc.NewSC2171Rule()
	diags := codesFor(t, r, "cat <<'EOF'\n  ]\nEOF\n")
	assert.Empty(t, diags)
}

func TestSC2171_FlagsStrayBracketOutsideHeredoc(t *testing.T) {
	r := sc.NewSC2171Rule()
	diags := codesFor(t, r, "echo hi\n]\n")
	require.NotEmpty(t, diags)
	assert.Equal(t, "SC2171", diags[0])
}

func TestSC2170_FlagsNumericOperatorOnStringInSingleBracket(t *testing.T) {
	r := sc.NewSC2170Rule()
	diags := codesFor(t, r, `[ "$name" -eq "production" ]` + "\n")
	require.NotEmpty(t, diags)
	assert.Equal(t, "SC2170", diags[0])
}

func TestSC2170_ExemptInsideDoubleBracket(t *testing.T) {
	r := sc.NewSC2170Rule()
	diags := codesFor(t, r, `[[ "$name" -eq "production" ]]` + "\n")
	assert.Empty(t, diags)
}

func TestSC2086_FlagsUnquotedVariable(t *testing.T) {
	r := sc.NewSC2086Rule()
	diags := r.Check(rules.NewLintInput([]byte("echo $var\n"), nil, "script"))
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "SC2086", d.Code)
	assert.Equal(t, 1, d.Span.StartLine)
	assert.Equal(t, 6, d.Span.StartCol)
	assert.Equal(t, 9, d.Span.EndCol)
	require.NotNil(t, d.Fix)
	assert.Equal(t, `"$var"`, d.Fix.Replacement)
}

func TestSC2086_AlreadyQuotedNotFlagged(t *testing.T) {
	r := sc.NewSC2086Rule()
	diags := codesFor(t, r, "echo \"$var\"\n")
	assert.Empty(t, diags)
}

func TestSC2086_AssignmentRHSNotFlagged(t *testing.T) {
	r := sc.NewSC2086Rule()
	diags := codesFor(t, r, "x=$y\n")
	assert.Empty(t, diags)
}

func TestSC2086_ArithmeticContextNotFlagged(t *testing.T) {
	r := sc.NewSC2086Rule()
	diags := codesFor(t, r, "echo $((x + y))\n")
	assert.Empty(t, diags)
}

func TestSC2046_FlagsUnquotedCommandSubstitution(t *testing.T) {
	r := sc.NewSC2046Rule()
	diags := codesFor(t, r, "echo $(cat file)\n")
	require.NotEmpty(t, diags)
	assert.Equal(t, "SC2046", diags[0])
}

func TestSC2046_QuotedNotFlagged(t *testing.T) {
	r := sc.NewSC2046Rule()
	diags := codesFor(t, r, "echo \"$(cat file)\"\n")
	assert.Empty(t, diags)
}

func TestSC2048_FlagsBareStar(t *testing.T) {
	r := sc.NewSC2048Rule()
	diags := codesFor(t, r, "for a in $*; do echo \"$a\"; done\n")
	require.NotEmpty(t, diags)
	assert.Equal(t, "SC2048", diags[0])
}

func TestSC2048_QuotedAtNotFlagged(t *testing.T) {
	r := sc.NewSC2048Rule()
	diags := codesFor(t, r, "for a in \"$@\"; do echo \"$a\"; done\n")
	assert.Empty(t, diags)
}

func TestSC2154_FlagsUnassignedReference(t *testing.T) {
	r := sc.NewSC2154Rule()
	diags := codesFor(t, r, "echo $undefined_var\n")
	require.NotEmpty(t, diags)
	assert.Equal(t, "SC2154", diags[0])
}

func TestSC2154_AssignedVariableNotFlagged(t *testing.T) {
	r := sc.NewSC2154Rule()
	diags := codesFor(t, r, "name=World\necho $name\n")
	assert.Empty(t, diags)
}

func TestSC2154_UppercaseConventionSuppressed(t *testing.T) {
	r := sc.NewSC2154Rule()
	diags := codesFor(t, r, "echo $MY_CUSTOM_ENV_VAR\n")
	assert.Empty(t, diags)
}

func TestSC2154_KnownExternalVarSuppressed(t *testing.T) {
	r := sc.NewSC2154Rule()
	diags := codesFor(t, r, "echo $PATH\n")
	assert.Empty(t, diags)
}

func TestSC2154_TestFunctionContextSuppressesAnyVariable(t *testing.T) {
	r := sc.NewSC2154Rule()
	diags := codesFor(t, r, "test_example() {\n  echo $fixture_var\n}\n")
	assert.Empty(t, diags)
}

func TestSC2154_ForLoopVariableNotFlagged(t *testing.T) {
	r := sc.NewSC2154Rule()
	diags := codesFor(t, r, "for item in a b c; do\n  echo $item\ndone\n")
	assert.Empty(t, diags)
}

func TestSC2154_SingleQuotedNotFlagged(t *testing.T) {
	r := sc.NewSC2154Rule()
	diags := codesFor(t, r, "echo '$undefined_var'\n")
	assert.Empty(t, diags)
}
