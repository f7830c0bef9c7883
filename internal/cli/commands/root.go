// Package commands implements the funcmeta command-line interface.
package commands

import (
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "funcmeta",
		Short: "TypeQL function metadata extractor",
		Long: color.CyanString(`funcmeta - TypeQL Function Metadata Extractor

funcmeta parses TypeQL function definitions and extracts normalized metadata:
signatures, typed parameter lists, output shapes, canonical return
expressions, and the set of functions each definition calls.

Features:
  • Typed AST traversal, no schema required
  • Call graph construction with cycle reporting
  • Parallel batch extraction
  • JSON output, SQLite catalog, and a local HTTP view`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewExtractCommand())
	rootCmd.AddCommand(NewGraphCommand())
	rootCmd.AddCommand(NewIndexCommand())
	rootCmd.AddCommand(NewRunsCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Print("funcmeta version: ")
			valueColor.Println(Version)

			titleColor.Print("Git commit: ")
			valueColor.Println(GitCommit)

			titleColor.Print("Build date: ")
			valueColor.Println(BuildDate)

			titleColor.Print("Go version: ")
			valueColor.Println(runtime.Version())
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
