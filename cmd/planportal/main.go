// Package main is the entry point for the planportal CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/planportal/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
