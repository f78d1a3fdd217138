package emit

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/bashrs/internal/ir"
	"github.com/wharflab/bashrs/internal/restrictedparser"
)

func mustEmit(t *testing.T, src string, cfg Config) ([]byte, *Proof) {
	t.Helper()
	prog, err := restrictedparser.Parse([]byte(src))
	require.NoError(t, err)
	lowered, err := ir.Lower(prog)
	require.NoError(t, err)
	out, proof, err := Emit(lowered, cfg)
	require.NoError(t, err)
	return out, proof
}

func TestEmit_SimpleFunction(t *testing.T) {
	out, _ := mustEmit(t, `fn main() { let x: i32 = 1; echo(x); }`, Config{})
	snaps.MatchSnapshot(t, string(out))
}

func TestEmit_ExclusiveRangeLoop(t *testing.T) {
	out, _ := mustEmit(t, `fn main() { for i in 0..3 { echo(i); } }`, Config{})
	snaps.MatchSnapshot(t, string(out))
}

func TestEmit_Deterministic(t *testing.T) {
	src := `fn main() {
		let a: i32 = 1;
		let b: i32 = 2;
		if a == b {
			echo(a);
		} else {
			echo(b);
		}
	}`
	out1, _ := mustEmit(t, src, Config{})
	out2, _ := mustEmit(t, src, Config{})
	require.Equal(t, out1, out2, "identical IR and config must produce byte-identical output")
}

func TestEmit_DownloadCommandPrependsHelper(t *testing.T) {
	out, _ := mustEmit(t, `fn main() { curl("https://example.com/install.sh"); }`, Config{})
	require.Contains(t, string(out), "rash_download_verified() {")
}

func TestEmit_ParanoidModeAttachesProof(t *testing.T) {
	_, proof := mustEmit(t, `fn main() { let x: i32 = 1; echo(x); }`, Config{Verify: VerifyParanoid})
	require.NotNil(t, proof)
	require.NotEmpty(t, proof.InputHash)
	require.Equal(t, "paranoid", proof.VerificationLevel)
	require.NotEmpty(t, proof.PropertyClaims)
}

func TestEmit_NoProofWithoutRequest(t *testing.T) {
	_, proof := mustEmit(t, `fn main() { let x: i32 = 1; echo(x); }`, Config{})
	require.Nil(t, proof)
}

func TestEmit_VariableExpansionsAlwaysQuoted(t *testing.T) {
	out, _ := mustEmit(t, `fn main() { let x: str = "hi"; echo(x); }`, Config{})
	require.NotContains(t, string(out), "$x ")
	require.Contains(t, string(out), `"$x"`)
}
