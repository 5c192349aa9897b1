// Package cmd implements the sparqlcat command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sparqlcat",
	Short: "sparqlcat - natural-language questions to SPARQL over a DCAT catalog",
	Long: `sparqlcat translates natural-language questions (Spanish or English) into
SPARQL queries for an open-data catalog described with the DCAT vocabulary.

Retrieval context comes from a precomputed knowledge index; when the index
is unavailable the pipeline degrades to keyword-selected reference examples
instead of failing.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
