// Package ui renders extracted function metadata for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/typeql-tools/funcmeta/metadata"
)

// PrintFunction writes a detailed, human-readable view of one record
func PrintFunction(w io.Writer, fn *metadata.FunctionMetadata) {
	heading := color.New(color.Bold, color.FgCyan)
	label := color.New(color.Bold)

	fmt.Fprintln(w, strings.Repeat("=", 60))
	heading.Fprintf(w, "Function: %s\n", fn.Name)
	fmt.Fprintln(w)

	label.Fprintln(w, "Parameters:")
	if len(fn.Parameters) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		for _, param := range fn.Parameters {
			fmt.Fprintf(w, "  $%s: %s\n", param.Name, param.TypeName)
		}
	}
	fmt.Fprintln(w)

	label.Fprint(w, "Output: ")
	fmt.Fprintln(w, fn.Output)

	if fn.ReturnExpression != nil {
		label.Fprint(w, "Returns: ")
		fmt.Fprintln(w, *fn.ReturnExpression)
	}

	if len(fn.ReferencedFunctions) > 0 {
		label.Fprint(w, "Calls: ")
		fmt.Fprintln(w, strings.Join(fn.ReferencedFunctions, ", "))
	}
	fmt.Fprintln(w)

	label.Fprintln(w, "Code Block:")
	for _, line := range strings.Split(fn.CodeBlock, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)
}

// PrintSummary writes a one-row-per-function summary table
func PrintSummary(w io.Writer, funcs []metadata.FunctionMetadata) {
	table := NewTable(w, []string{"NAME", "PARAMS", "OUTPUT", "CALLS"}, nil)
	for _, fn := range funcs {
		table.AddRow(
			fn.Name,
			fmt.Sprintf("%d", len(fn.Parameters)),
			fn.Output,
			fmt.Sprintf("%d", len(fn.ReferencedFunctions)),
		)
	}
	table.Render()
}

// PrintError writes an error with the standard error styling
func PrintError(w io.Writer, err error) {
	errorColor := color.New(color.FgRed, color.Bold)
	errorColor.Fprintf(w, "Error: %v\n", err)
}
