package purify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/bashrs/internal/purify"
)

func TestPurify_RewritesMkdirWithoutP(t *testing.T) {
	out, report, err := purify.Purify([]byte("mkdir /tmp/build\n"), purify.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "mkdir -p /tmp/build\n", string(out))
	assert.Equal(t, 1, report.IdempotencyFixes)
}

func TestPurify_LeavesAlreadyIdempotentMkdirAlone(t *testing.T) {
	out, report, err := purify.Purify([]byte("mkdir -p /tmp/build\n"), purify.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "mkdir -p /tmp/build\n", string(out))
	assert.Equal(t, 0, report.IdempotencyFixes)
}

func TestPurify_IsIdempotentUnderRepeatedApplication(t *testing.T) {
	src := []byte("mkdir /a\nln -s /a /b\nrm /c\n")
	once, _, err := purify.Purify(src, purify.DefaultOptions())
	require.NoError(t, err)
	twice, report2, err := purify.Purify(once, purify.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.Equal(t, 0, report2.IdempotencyFixes)
}

func TestPurify_RewritesLnSWithoutForce(t *testing.T) {
	out, report, err := purify.Purify([]byte("ln -s target link\n"), purify.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(out), "ln -sf target link")
	assert.Equal(t, 1, report.IdempotencyFixes)
}

func TestPurify_RewritesRmWithoutForce(t *testing.T) {
	out, report, err := purify.Purify([]byte("rm /tmp/file\n"), purify.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(out), "rm -f /tmp/file")
	assert.Equal(t, 1, report.IdempotencyFixes)
}

func TestPurify_FlagsRandomAsWarningNotRewrite(t *testing.T) {
	src := []byte("echo $RANDOM\n")
	out, report, err := purify.Purify(src, purify.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, src, out, "determinism issues are warned about, never silently rewritten")
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "RANDOM")
}

func TestPurify_FlagsDuplicateWriteTargets(t *testing.T) {
	src := []byte("echo a > out.txt\necho b > out.txt\n")
	_, report, err := purify.Purify(src, purify.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, report.SideEffectsIsolated)
}

func TestPurify_ProducesUnifiedDiffWhenSomethingChanges(t *testing.T) {
	_, report, err := purify.Purify([]byte("mkdir /a\n"), purify.DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, report.Diff)
	assert.True(t, strings.HasPrefix(string(report.Diff), "--- a/"))

	frags, err := purify.Hunks(report.Diff)
	require.NoError(t, err)
	require.Len(t, frags, 1)
}

func TestPurify_NoDiffWhenNothingChanges(t *testing.T) {
	_, report, err := purify.Purify([]byte("echo hi\n"), purify.DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, report.Diff)
}

func TestPurify_DisablingIdempotencyLeavesSourceUntouched(t *testing.T) {
	src := []byte("mkdir /a\n")
	out, report, err := purify.Purify(src, purify.Options{})
	require.NoError(t, err)
	assert.Equal(t, src, out)
	assert.Equal(t, 0, report.IdempotencyFixes)
}
