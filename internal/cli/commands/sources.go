package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/typeql-tools/funcmeta/typeql/parser"
)

// sourceExtension is the file extension for TypeQL source files
const sourceExtension = ".tql"

// collectSourceFiles expands the given paths into a sorted list of TypeQL
// source files. Directories are walked recursively.
func collectSourceFiles(paths []string) ([]string, error) {
	files := []string{}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, sourceExtension) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("cannot walk %s: %w", path, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// parseSourceFiles parses every definition found in the given files. A file
// that fails to parse is reported and skipped; sibling files still parse.
func parseSourceFiles(files []string, logger *zap.Logger) ([]*parser.FunctionDefinition, []error) {
	defs := []*parser.FunctionDefinition{}
	parseErrors := []error{}

	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("cannot read %s: %w", file, err))
			continue
		}

		fileDefs, err := parser.ParseDefinitions(string(source), file)
		if err != nil {
			parseErrors = append(parseErrors, err)
		}
		logger.Debug("parsed source file",
			zap.String("file", file),
			zap.Int("definitions", len(fileDefs)))

		defs = append(defs, fileDefs...)
	}

	return defs, parseErrors
}

// newLogger builds the CLI logger; verbose enables debug-level development output
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
