// Package main provides the entry point for the mtie CLI tool.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/mtie/cmd/mtie/commands"
	"github.com/Sumatoshi-tech/mtie/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := commands.NewRootCommand()

	err := rootCmd.Execute()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
