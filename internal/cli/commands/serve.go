package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/typeql-tools/funcmeta/internal/cli/config"
	"github.com/typeql-tools/funcmeta/internal/cli/ui"
	"github.com/typeql-tools/funcmeta/internal/server"
	"github.com/typeql-tools/funcmeta/metadata"
)

var (
	serveAddr    string
	serveVerbose bool
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [files or directories]",
		Short: "Serve extracted metadata over HTTP",
		Long: `Extract metadata from the given sources and serve it read-only over HTTP
for local tooling:

  GET /functions         all records
  GET /functions/{name}  one record
  GET /graph             the call graph with cycles`,
		Args: cobra.MinimumNArgs(1),
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from funcmeta.yml)")
	cmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Show request logging")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger(serveVerbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Addr()
	}

	funcs, failures, err := extractFromPaths(args, cfg.Extract.Workers, logger)
	if err != nil {
		return err
	}
	for _, failure := range failures {
		ui.PrintError(os.Stderr, failure)
	}

	registry := metadata.NewRegistry()
	registry.Register(funcs...)

	return server.New(registry, logger).ListenAndServe(addr)
}
