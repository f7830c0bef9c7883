package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/typeql-tools/funcmeta/internal/cli/config"
	"github.com/typeql-tools/funcmeta/internal/cli/ui"
	"github.com/typeql-tools/funcmeta/metadata"
)

var graphVerbose bool

// NewGraphCommand creates the graph command
func NewGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [files or directories]",
		Short: "Print the call graph across extracted functions",
		Long: `Extract metadata from the given sources, build the caller/callee graph,
and print its edges. Recursive and mutually recursive definitions are
reported as cycles.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runGraph,
	}

	cmd.Flags().BoolVarP(&graphVerbose, "verbose", "v", false, "Show detailed extraction output")

	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	logger := newLogger(graphVerbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	funcs, failures, err := extractFromPaths(args, cfg.Extract.Workers, logger)
	if err != nil {
		return err
	}
	for _, failure := range failures {
		ui.PrintError(os.Stderr, failure)
	}

	graph := metadata.BuildCallGraph(funcs)

	headerColor := color.New(color.Bold, color.FgCyan)
	externalColor := color.New(color.FgYellow)

	headerColor.Println("Call graph:")
	if len(graph.Edges) == 0 {
		fmt.Println("  (no calls)")
	}
	for _, edge := range graph.Edges {
		suffix := ""
		if node, ok := graph.Nodes[edge.To]; ok && !node.Defined {
			suffix = externalColor.Sprint("  (external)")
		}
		fmt.Printf("  %s -> %s%s\n", edge.From, edge.To, suffix)
	}

	cycles := metadata.FindCycles(graph)
	if len(cycles) > 0 {
		fmt.Println()
		warnColor := color.New(color.FgYellow, color.Bold)
		warnColor.Printf("Cycles (%d):\n", len(cycles))
		for _, cycle := range cycles {
			fmt.Print("  ")
			for _, name := range cycle {
				fmt.Printf("%s -> ", name)
			}
			fmt.Println(cycle[0])
		}
	}

	return nil
}
