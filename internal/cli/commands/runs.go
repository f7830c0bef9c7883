package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/typeql-tools/funcmeta/internal/catalog"
	"github.com/typeql-tools/funcmeta/internal/cli/config"
	"github.com/typeql-tools/funcmeta/internal/cli/ui"
)

var runsCatalogPath string

// NewRunsCommand creates the runs command
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List stored extraction runs or reload one",
		Long: `Without arguments, list the extraction runs stored in the catalog, newest
first. With a run ID, reload that run's records and print a summary.`,
		Example: `  # List stored runs
  funcmeta runs

  # Reload one run's records
  funcmeta runs 6f1c2e9a-... --catalog /tmp/tax.db`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRuns,
	}

	cmd.Flags().StringVar(&runsCatalogPath, "catalog", "", "Catalog database path (default from funcmeta.yml)")

	return cmd
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path := runsCatalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}

	store, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()

	if len(args) == 1 {
		funcs, err := store.Run(args[0])
		if err != nil {
			return err
		}
		ui.PrintSummary(w, funcs)
		return nil
	}

	runs, err := store.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs stored.")
		return nil
	}

	table := ui.NewTable(w, []string{"RUN", "CREATED", "FUNCTIONS"}, nil)
	for _, run := range runs {
		table.AddRow(run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), fmt.Sprintf("%d", run.FunctionCount))
	}
	table.Render()

	return nil
}
