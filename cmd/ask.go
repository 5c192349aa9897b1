package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sparqlcat/sparqlcat/internal/app"
	"github.com/sparqlcat/sparqlcat/internal/config"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Translate a question into a SPARQL query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	query, err := a.Generator.Ask(ctx, question)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), query)
	return nil
}
