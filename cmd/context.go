package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sparqlcat/sparqlcat/internal/app"
	"github.com/sparqlcat/sparqlcat/internal/config"
)

// contextCmd shows the retrieval context for a question without calling the
// model. Useful for inspecting what the index contributes to a prompt.
var contextCmd = &cobra.Command{
	Use:   "context [question]",
	Short: "Show the retrieval context assembled for a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	a, err := app.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = a.Close() }()

	question := strings.Join(args, " ")

	rc, err := a.Contexts.GetContext(ctx, question)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSection(out, "Vocabularies", rc.Vocabularies)
	printSection(out, "Patterns", rc.Patterns)
	printSection(out, "Examples", rc.Examples)

	fmt.Fprintf(out, "Total documents: %d\n", rc.Metadata.TotalDocs)
	for docType, count := range rc.Metadata.Types {
		fmt.Fprintf(out, "  %s: %d\n", docType, count)
	}
	if rc.Metadata.TotalDocs == 0 {
		fmt.Fprintln(out, "Retrieval is empty: ask would fall back to keyword-selected examples.")
	}

	return nil
}

func printSection(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(items))
	for i, item := range items {
		fmt.Fprintf(w, "  [%d] %s\n", i+1, strings.TrimSpace(item))
	}
	fmt.Fprintln(w)
}
