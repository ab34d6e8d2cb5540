// Package main is the entry point for the watchdex CLI.
package main

import (
	"fmt"
	"os"

	"github.com/courtside/watchdex/cmd"
	"github.com/courtside/watchdex/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Cleanup runs after command execution rather than via defer so that
	// the exit code below does not skip it.
	iocache.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		fmt.Fprintln(os.Stderr, "Warning: failed to stop profiling:", perr)
	}

	if err != nil {
		os.Exit(1)
	}
}
