// Package main is the tablekit CLI entry point.
package main

import (
	"os"

	"github.com/leapstack-labs/tablekit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
