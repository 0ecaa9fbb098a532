// Package main provides the CLI for the Injaz project intake service.
package main

import (
	"os"

	"github.com/injaz-app/injaz/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
