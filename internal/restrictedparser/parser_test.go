package restrictedparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/bashrs/internal/restrictedast"
)

func TestParse_SimpleFunction(t *testing.T) {
	src := `fn main() {
		let x: i32 = 1;
		echo(x);
	}`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Functions, 1)

	fn := prog.Functions[0]
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, restrictedast.TypeVoid, fn.ReturnType)
	require.Len(t, fn.Body, 2)

	let, ok := fn.Body[0].(*restrictedast.Let)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	assert.Equal(t, restrictedast.TypeI32, let.Type)
}

func TestParse_ReturnTypeAndParams(t *testing.T) {
	src := `fn add(a: i32, b: i32) -> i32 {
		return a + b;
	}`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)
	fn := prog.FindFunction("add")
	require.NotNil(t, fn)
	assert.Equal(t, restrictedast.TypeI32, fn.ReturnType)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)

	ret, ok := fn.Body[0].(*restrictedast.Return)
	require.True(t, ok)
	bin, ok := ret.Value.(*restrictedast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, restrictedast.OpAdd, bin.Op)
}

func TestParse_ExclusiveRange(t *testing.T) {
	src := `fn main() {
		for i in 0..3 {
			echo(i);
		}
	}`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)
	fn := prog.Functions[0]
	forStmt, ok := fn.Body[0].(*restrictedast.For)
	require.True(t, ok)
	assert.False(t, forStmt.Range.Inclusive)
}

func TestParse_InclusiveRange(t *testing.T) {
	src := `fn main() {
		for i in 0..=3 {
			echo(i);
		}
	}`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)
	fn := prog.Functions[0]
	forStmt, ok := fn.Body[0].(*restrictedast.For)
	require.True(t, ok)
	assert.True(t, forStmt.Range.Inclusive)
}

func TestParse_IfElse(t *testing.T) {
	src := `fn main() {
		if x == 1 {
			echo("one");
		} else {
			echo("other");
		}
	}`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)
	fn := prog.Functions[0]
	ifStmt, ok := fn.Body[0].(*restrictedast.If)
	require.True(t, ok)
	assert.Len(t, ifStmt.Then, 1)
	assert.Len(t, ifStmt.Else, 1)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse([]byte(`fn main() { let x = ; }`))
	require.Error(t, err)
}

func TestParse_OperatorPrecedence(t *testing.T) {
	src := `fn main() {
		let x: i32 = 1 + 2 * 3;
	}`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)
	let := prog.Functions[0].Body[0].(*restrictedast.Let)
	top, ok := let.Value.(*restrictedast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, restrictedast.OpAdd, top.Op)
	_, rightIsMul := top.Right.(*restrictedast.BinaryOp)
	assert.True(t, rightIsMul)
}
