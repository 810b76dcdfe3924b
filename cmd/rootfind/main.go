// Command rootfind solves f(x) = 0 from the command line.
//
//	rootfind bisect   --f "x**2 - 2" --a 0 --b 2 --eps 1e-6
//	rootfind secant   --f "x**2 - 2" --x0 1 --x1 2 --eps 1e-10
//	rootfind regfalsi --f "x**2 - 2" --a 0 --b 2
//	rootfind newton   --f "atan(x)" --df "1/(1+x**2)" --x0 10 --guarded
//	rootfind newton   --f "[x[0]**2 + x[1]**2 - 1, x[0] - x[1]]" \
//	                  --jac "[[2*x[0], 2*x[1]], [1, -1]]" --x0 "[1, 1]"
//
// Every flag can also be set through a LVSOLVE_* environment variable
// (LVSOLVE_EPS, LVSOLVE_MAXIT, ...) or a config file passed with --config.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/lvsolve/internal/log"
	"go.uber.org/zap"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command tree on args and returns the process exit code.
// Errors are printed to stderr directly: flag parsing and config loading fail
// before the logger is configured.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		log.Logger().Debug("failed to execute", zap.Error(err))

		return 1
	}

	return 0
}
