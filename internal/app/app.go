// Package app provides application initialization and dependency wiring.
//
// App is the container that assembles the pipeline: Genkit and its provider
// plugin, the embedding layer, the knowledge index, semantic and keyword
// retrieval, and the query generator on top.
package app

import (
	"context"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/sparqlcat/sparqlcat/internal/config"
	"github.com/sparqlcat/sparqlcat/internal/fallback"
	"github.com/sparqlcat/sparqlcat/internal/generate"
	"github.com/sparqlcat/sparqlcat/internal/knowledge"
	"github.com/sparqlcat/sparqlcat/internal/log"
	"github.com/sparqlcat/sparqlcat/internal/rag"
)

// App is the core application container.
type App struct {
	Config *config.Config
	Logger log.Logger

	// Core services
	Genkit   *genkit.Genkit
	Embedder ai.Embedder

	// Retrieval pipeline
	Index     *knowledge.Index
	Retriever *knowledge.Retriever
	Contexts  *rag.Aggregator
	Fallback  *fallback.Retriever

	// Generation
	Generator *generate.Generator

	cancel context.CancelFunc
}

// Close releases application resources. Safe to call more than once.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	return nil
}
