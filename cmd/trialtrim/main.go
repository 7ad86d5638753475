// Package main is the trialtrim CLI entry point.
package main

import (
	"os"

	"github.com/leapstack-labs/trialtrim/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
