// Package main is the entry point for the colgrep command
package main

import (
	"os"

	"github.com/TimelordUK/colgrep/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
