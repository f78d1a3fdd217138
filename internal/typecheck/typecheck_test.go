package typecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/bashrs/internal/bashparser"
	"github.com/wharflab/bashrs/internal/typecheck"
)

func TestCheck_FlagsStringInArithmeticContext(t *testing.T) {
	file, err := bashparser.Parse([]byte(`name="not-a-number"
echo $((name + 1))
`))
	require.NoError(t, err)

	c := typecheck.NewChecker(typecheck.Options{})
	diags, _ := c.Check(file.Statements)
	require.Len(t, diags, 1)
	assert.Equal(t, "TYPE001", diags[0].Code)
}

func TestCheck_AllowsIntegerInArithmeticContext(t *testing.T) {
	file, err := bashparser.Parse([]byte(`count=3
echo $((count + 1))
`))
	require.NoError(t, err)

	c := typecheck.NewChecker(typecheck.Options{})
	diags, _ := c.Check(file.Statements)
	assert.Empty(t, diags)
}

func TestCheck_UnknownVariableOnlyFlaggedInStrictMode(t *testing.T) {
	src := []byte("echo $((EXTERNAL_VAR + 1))\n")

	file, err := bashparser.Parse(src)
	require.NoError(t, err)
	lenient := typecheck.NewChecker(typecheck.Options{})
	diags, _ := lenient.Check(file.Statements)
	assert.Empty(t, diags)

	file2, err := bashparser.Parse(src)
	require.NoError(t, err)
	strict := typecheck.NewChecker(typecheck.Options{Strict: true})
	diags2, _ := strict.Check(file2.Statements)
	assert.NotEmpty(t, diags2)
}

func TestCheck_EmitGuardsProducesSnippet(t *testing.T) {
	file, err := bashparser.Parse([]byte(`name="x"
echo $((name + 1))
`))
	require.NoError(t, err)

	c := typecheck.NewChecker(typecheck.Options{EmitGuards: true})
	diags, guards := c.Check(file.Statements)
	require.Len(t, diags, 1)
	require.Len(t, guards, 1)
	assert.Equal(t, "name", guards[0].VarName)
	assert.Contains(t, guards[0].Snippet, "case \"$name\" in")
}
