// Package main provides the entry point for the recache CLI.
package main

import (
	"fmt"
	"os"

	"github.com/WaylonWalker/recache/cmd/recache/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
