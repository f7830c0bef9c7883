package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/typeql-tools/funcmeta/internal/cli/config"
	"github.com/typeql-tools/funcmeta/internal/cli/ui"
	"github.com/typeql-tools/funcmeta/metadata"
)

var (
	extractJSON    string
	extractWorkers int
	extractVerbose bool
	extractSummary bool
)

// NewExtractCommand creates the extract command
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [files or directories]",
		Short: "Extract metadata from TypeQL function definitions",
		Long: `Parse TypeQL function definitions and extract a metadata record per
function: name, typed parameters, output shape, canonical return expression,
re-indented code block, and every function it calls.

Definitions are extracted independently and in parallel; a malformed
definition is reported without aborting its siblings.`,
		Example: `  # Extract from a file and print each record
  funcmeta extract tax_functions.tql

  # Extract a directory tree and write JSON
  funcmeta extract ./functions --json function_metadata.json

  # Compact summary table
  funcmeta extract ./functions --summary`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().StringVar(&extractJSON, "json", "", "Write records as JSON to the given path (default from funcmeta.yml)")
	cmd.Flags().IntVar(&extractWorkers, "workers", 0, "Parallel extraction workers (0 = one per CPU)")
	cmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Show detailed extraction output")
	cmd.Flags().BoolVar(&extractSummary, "summary", false, "Print a summary table instead of full records")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := newLogger(extractVerbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	workers := extractWorkers
	if workers == 0 {
		workers = cfg.Extract.Workers
	}

	funcs, failures, err := extractFromPaths(args, workers, logger)
	if err != nil {
		return err
	}

	for _, failure := range failures {
		ui.PrintError(os.Stderr, failure)
	}

	if extractSummary {
		ui.PrintSummary(os.Stdout, funcs)
	} else {
		for i := range funcs {
			ui.PrintFunction(os.Stdout, &funcs[i])
		}
	}

	// The --json flag overrides the configured output path
	output := extractJSON
	if output == "" {
		output = cfg.Extract.Output
	}
	if output != "" {
		if err := metadata.WriteFile(output, funcs); err != nil {
			return err
		}
		successColor := color.New(color.FgGreen, color.Bold)
		successColor.Printf("Wrote %d records to %s\n", len(funcs), output)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d definitions failed", len(failures), len(funcs)+len(failures))
	}
	return nil
}

// extractFromPaths runs the full pipeline: collect files, parse, extract in
// parallel. Failures are collected per definition, never aborting the batch.
func extractFromPaths(paths []string, workers int, logger *zap.Logger) ([]metadata.FunctionMetadata, []error, error) {
	files, err := collectSourceFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no %s files found", sourceExtension)
	}

	defs, failures := parseSourceFiles(files, logger)
	results := metadata.ExtractBatch(defs, workers)

	funcs := []metadata.FunctionMetadata{}
	for _, result := range results {
		if result.Err != nil {
			failures = append(failures, result.Err)
			continue
		}
		funcs = append(funcs, *result.Metadata)
	}

	logger.Info("extraction complete",
		zap.Int("functions", len(funcs)),
		zap.Int("failures", len(failures)))

	return funcs, failures, nil
}
