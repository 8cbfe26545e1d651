// Package main is the entry point for the prguard CLI.
//
// This file is intentionally minimal - all logic lives in the commands package.
package main

import (
	"os"

	"github.com/prguard/prguard/cmd/prguard/commands"
)

func main() {
	// Cobra prints the error; we only set the exit code.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
