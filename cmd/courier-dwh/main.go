// Package main is the entry point for courier-dwh.
package main

import (
	"fmt"
	"os"

	"github.com/fastandsafe/courier-dwh/internal/cli"

	// Register the fact build alongside the dimensions
	_ "github.com/fastandsafe/courier-dwh/internal/fact"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
