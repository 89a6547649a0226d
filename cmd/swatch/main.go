// Package main provides the swatch CLI, a design-token manager with
// snapshots and diffs.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := a.close(); cerr != nil && err == nil {
		err = systemErr(fmt.Errorf("detach backend: %w", cerr))
	}
	if err != nil {
		fmt.Fprintln(stderr, "swatch:", err)
		return exitCode(err)
	}
	return exitSuccess
}
