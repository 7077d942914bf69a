// Package main is the entry point for the cleanspeak CLI.
package main

import (
	"os"

	"github.com/dmarsh/cleanspeak/cmd/cleanspeak/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
