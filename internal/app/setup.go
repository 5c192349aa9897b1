package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"golang.org/x/sync/errgroup"

	"github.com/sparqlcat/sparqlcat/internal/config"
	"github.com/sparqlcat/sparqlcat/internal/fallback"
	"github.com/sparqlcat/sparqlcat/internal/generate"
	"github.com/sparqlcat/sparqlcat/internal/knowledge"
	"github.com/sparqlcat/sparqlcat/internal/log"
	"github.com/sparqlcat/sparqlcat/internal/rag"
)

// Setup creates and initializes the application.
// Returns an App with embedded cleanup; call Close() to release.
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), JSON: cfg.LogJSON})

	a := &App{Config: cfg, Logger: logger}

	g, err := provideGenkit(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	embedder := provideEmbedder(g, cfg)
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not found for provider %q", cfg.EmbedderModel, cfg.Provider)
	}
	a.Embedder = embedder

	a.Index = knowledge.NewIndex(cfg.IndexPath, logger)
	a.Retriever = knowledge.NewRetriever(a.Index,
		knowledge.NewCachedEmbedder(knowledge.NewGenkitEmbedder(embedder)),
		logger)
	a.Contexts = rag.NewAggregator(a.Retriever, logger)

	a.Fallback = warmUp(a.Index, cfg, logger)

	a.Generator = generate.New(g, cfg.FullModelName(), cfg.Temperature, a.Contexts, a.Fallback, logger)

	_, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	return a, nil
}

// warmUp loads the knowledge index and the reference examples concurrently
// so the first question does not pay both costs in sequence. Neither load is
// fatal: a broken index degrades to keyword retrieval, and the examples have
// a built-in fallback of their own.
func warmUp(index *knowledge.Index, cfg *config.Config, logger log.Logger) *fallback.Retriever {
	var examples []fallback.Example

	var group errgroup.Group
	group.Go(func() error {
		if _, err := index.Documents(); err != nil {
			logger.Warn("knowledge index unavailable, retrieval will degrade",
				"path", cfg.IndexPath,
				"error", err)
		}
		return nil
	})
	group.Go(func() error {
		examples = fallback.LoadExamples(cfg.ExamplesPath, logger)
		return nil
	})
	_ = group.Wait()

	logger.Debug("warm-up complete",
		"index_docs", index.Len(),
		"examples", len(examples))

	return fallback.NewRetriever(examples, logger)
}

// provideGenkit initializes Genkit with the configured AI provider plugin.
// Supports gemini (default), ollama, and openai providers.
func provideGenkit(ctx context.Context, cfg *config.Config, logger log.Logger) (*genkit.Genkit, error) {
	var g *genkit.Genkit

	switch cfg.Provider {
	case config.ProviderOllama:
		ollamaPlugin := &ollama.Ollama{ServerAddress: cfg.OllamaHost}
		g = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))
		if g == nil {
			return nil, errors.New("initializing genkit with ollama provider")
		}
		// Ollama requires explicit registration (no auto-discovery).
		ollamaPlugin.DefineModel(g, ollama.ModelDefinition{
			Name: cfg.ModelName,
			Type: "chat",
		}, nil)
		ollamaPlugin.DefineEmbedder(g, cfg.OllamaHost, cfg.EmbedderModel, nil)
		logger.Info("initialized Genkit with ollama provider",
			"model", cfg.ModelName, "host", cfg.OllamaHost)

	case config.ProviderOpenAI:
		g = genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with openai provider")
		}
		logger.Info("initialized Genkit with openai provider", "model", cfg.ModelName)

	default: // "gemini"
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with gemini provider")
		}
		logger.Info("initialized Genkit with gemini provider", "model", cfg.ModelName)
	}

	return g, nil
}

// provideEmbedder looks up the embedder registered by the provider plugin.
// Each provider registers embedders differently:
//   - gemini: GoogleAIEmbedder(g, modelName)
//   - ollama: registered in provideGenkit, keyed by server address
//   - openai: auto-registered in Init(), looked up by model name
func provideEmbedder(g *genkit.Genkit, cfg *config.Config) ai.Embedder {
	switch cfg.Provider {
	case config.ProviderOllama:
		return ollama.Embedder(g, cfg.OllamaHost)
	case config.ProviderOpenAI:
		return genkit.LookupEmbedder(g, api.NewName("openai", cfg.EmbedderModel))
	default: // "gemini"
		return googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	}
}
