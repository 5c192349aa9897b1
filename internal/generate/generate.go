// Package generate turns natural-language questions into SPARQL query text.
//
// It is the pipeline head: retrieval context in, model call, sanitized query
// out. Everything model-shaped is behind Genkit; everything retrieval-shaped
// is behind the ContextProvider interface so tests never need a live model
// or a real index.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/sparqlcat/sparqlcat/internal/fallback"
	"github.com/sparqlcat/sparqlcat/internal/rag"
	"github.com/sparqlcat/sparqlcat/internal/sparql"
)

// ErrEmptyQuestion is returned when the question is blank after trimming.
var ErrEmptyQuestion = errors.New("generate: empty question")

// ContextProvider assembles the retrieval context for a question.
// Satisfied by *rag.Aggregator.
type ContextProvider interface {
	GetContext(ctx context.Context, query string) (rag.Context, error)
}

// ExampleProvider selects reference examples by keyword when semantic
// retrieval has nothing to offer. Satisfied by *fallback.Retriever.
type ExampleProvider interface {
	Search(query string, k int) []fallback.Example
}

// Generator translates questions into SPARQL using a Genkit model.
// Safe for concurrent use.
type Generator struct {
	genkit      *genkit.Genkit
	modelName   string
	temperature float32
	contexts    ContextProvider
	examples    ExampleProvider
	logger      *slog.Logger
}

// New creates a Generator. modelName is provider-qualified
// (e.g. "googleai/gemini-2.5-flash", "ollama/llama3.3").
func New(g *genkit.Genkit, modelName string, temperature float32, contexts ContextProvider, examples ExampleProvider, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		genkit:      g,
		modelName:   modelName,
		temperature: temperature,
		contexts:    contexts,
		examples:    examples,
		logger:      logger,
	}
}

// generationConfig builds the model tuning block sent with every request.
func (g *Generator) generationConfig() *ai.GenerationCommonConfig {
	return &ai.GenerationCommonConfig{
		Temperature: float64(g.temperature),
	}
}

// Ask translates question into a sanitized SPARQL query.
//
// Retrieval degradation is absorbed here: an empty context switches the
// prompt to keyword-selected examples rather than failing the request. Only
// context cancellation and the model call itself surface as errors.
func (g *Generator) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	rc, err := g.contexts.GetContext(ctx, question)
	if err != nil {
		return "", fmt.Errorf("assembling context: %w", err)
	}

	var fallbackExamples []fallback.Example
	if rc.Metadata.TotalDocs == 0 {
		fallbackExamples = g.examples.Search(question, fallbackExampleCount)
		g.logger.Info("retrieval empty, using keyword examples",
			"examples", len(fallbackExamples))
	}

	prompt := BuildPrompt(question, rc, fallbackExamples)

	g.logger.Debug("generating query",
		"model", g.modelName,
		"context_docs", rc.Metadata.TotalDocs,
		"prompt_length", len(prompt))

	response, err := genkit.Generate(ctx, g.genkit,
		ai.WithModelName(g.modelName),
		ai.WithConfig(g.generationConfig()),
		ai.WithSystem(systemPrompt),
		ai.WithPrompt("%s", prompt),
	)
	if err != nil {
		return "", fmt.Errorf("generating query: %w", err)
	}

	return sparql.Sanitize(response.Text()), nil
}
