// Package cmd implements the CLI commands for xhtml2md using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "xhtml2md",
	Short: "Convert wiki storage-format pages into Markdown",
	Long: `xhtml2md converts pages written in a wiki's XML storage format into
Markdown. Image macros are resolved to attachment or external URLs, other
macros are unwrapped, and the result can be written as Markdown, JSON or PDF.

Usage:
  xhtml2md convert [file|dir|-]... [flags]`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
