package main

import (
	"os"

	"github.com/typeql-tools/funcmeta/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
