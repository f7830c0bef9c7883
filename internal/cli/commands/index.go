package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/typeql-tools/funcmeta/internal/catalog"
	"github.com/typeql-tools/funcmeta/internal/cli/config"
	"github.com/typeql-tools/funcmeta/internal/cli/ui"
)

var (
	indexCatalogPath string
	indexVerbose     bool
)

// NewIndexCommand creates the index command
func NewIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [files or directories]",
		Short: "Extract metadata and store it in the local catalog",
		Long: `Run extraction over the given sources and persist the resulting records
as a new run in the SQLite catalog. Each run gets a unique ID that can be
used to reload the records later.`,
		Example: `  # Index a directory into the default catalog (funcmeta.db)
  funcmeta index ./functions

  # Index into an explicit catalog file
  funcmeta index ./functions --catalog /tmp/tax.db`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIndex,
	}

	cmd.Flags().StringVar(&indexCatalogPath, "catalog", "", "Catalog database path (default from funcmeta.yml)")
	cmd.Flags().BoolVarP(&indexVerbose, "verbose", "v", false, "Show detailed extraction output")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	logger := newLogger(indexVerbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path := indexCatalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}

	funcs, failures, err := extractFromPaths(args, cfg.Extract.Workers, logger)
	if err != nil {
		return err
	}
	for _, failure := range failures {
		ui.PrintError(os.Stderr, failure)
	}

	store, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.SaveRun(funcs)
	if err != nil {
		return err
	}

	successColor := color.New(color.FgGreen, color.Bold)
	successColor.Printf("Stored %d records in %s (run %s)\n", len(funcs), path, runID)
	return nil
}
