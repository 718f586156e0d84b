// Package main provides the fmsearch CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/viniciusth/fmindex/config"
)

func main() {
	// Load .env file if present
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
