package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sparqlcat/sparqlcat/internal/sparql"
)

// repairCmd runs the sanitizer standalone: raw model output in, repaired
// query out. Needs no configuration and no model.
var repairCmd = &cobra.Command{
	Use:   "repair [file]",
	Short: "Repair raw model output into valid SPARQL",
	Long: `Repair reads raw model output from a file (or stdin when no file is given)
and prints the sanitized SPARQL query: code fences and prose stripped,
missing prefixes added, unbalanced braces closed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRepair,
}

func init() {
	rootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error

	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading input file: %w", err)
		}
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), sparql.Sanitize(string(raw)))
	return nil
}
