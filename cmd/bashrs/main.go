// Command bashrs lints shell scripts, Makefiles, and Dockerfiles for
// POSIX compliance, determinism, and idempotency; purifies bash sources
// in place; and transpiles a restricted typed language down to POSIX
// shell.
package main

import (
	"fmt"
	"os"

	"github.com/wharflab/bashrs/cmd/bashrs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
