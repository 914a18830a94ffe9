// Command rfhost dispatches application-level commands to RF nodes
// over a serial-attached controller: write a node's value or request it
// from the shell, or drive it interactively from a REPL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
