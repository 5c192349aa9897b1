package rag

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/sparqlcat/sparqlcat/internal/knowledge"
)

// Per-category result counts. The split favors examples: full
// question/query pairs steer generation harder than vocabulary snippets.
const (
	vocabularyTopK = 2
	patternTopK    = 2
	exampleTopK    = 3
)

// Searcher is the slice of the knowledge retriever the aggregator needs.
// Defined here, by the consumer, so tests can substitute a fake.
type Searcher interface {
	SearchByType(ctx context.Context, query, docType string, topK int) ([]knowledge.Result, error)
}

// Context is the assembled retrieval context for one question.
type Context struct {
	Vocabularies []string
	Patterns     []string
	Examples     []string
	Metadata     ContextMetadata
}

// ContextMetadata reports provenance for the merged result set.
// TotalDocs is the merged result count; Types tallies document type across
// the merged set. TotalDocs == 0 reliably signals an empty knowledge base
// (or fully degraded retrieval) to the prompt-construction layer.
type ContextMetadata struct {
	TotalDocs int
	Types     map[string]int
}

// Aggregator runs the per-category searches for a question.
// Safe for concurrent use.
type Aggregator struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewAggregator creates an Aggregator over the given searcher.
func NewAggregator(searcher Searcher, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Aggregator{
		searcher: searcher,
		logger:   logger,
	}
}

// GetContext retrieves vocabulary, pattern and example documents for query,
// running the three category searches concurrently and waiting for all of
// them. A category that fails (provider down, index missing) contributes an
// empty slice and a warning log; it never aborts its siblings.
//
// If ctx is canceled the partial result is discarded and ctx.Err() returned:
// a half-assembled context must not be surfaced.
func (a *Aggregator) GetContext(ctx context.Context, query string) (Context, error) {
	requestID := uuid.NewString()

	categories := []struct {
		docType string
		topK    int
	}{
		{knowledge.TypeVocabulary, vocabularyTopK},
		{knowledge.TypePattern, patternTopK},
		{knowledge.TypeExample, exampleTopK},
	}

	byCategory := make([][]knowledge.Result, len(categories))

	var wg sync.WaitGroup
	for i, cat := range categories {
		wg.Add(1)
		go func(slot int, docType string, topK int) {
			defer wg.Done()

			results, err := a.searcher.SearchByType(ctx, query, docType, topK)
			if err != nil {
				// Degrade: empty contribution, siblings keep going.
				a.logger.Warn("category retrieval failed",
					"request_id", requestID,
					"type", docType,
					"error", err)
				return
			}
			byCategory[slot] = results
		}(i, cat.docType, cat.topK)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Context{}, err
	}

	out := Context{
		Vocabularies: contents(byCategory[0]),
		Patterns:     contents(byCategory[1]),
		Examples:     contents(byCategory[2]),
		Metadata: ContextMetadata{
			Types: make(map[string]int),
		},
	}

	for _, results := range byCategory {
		for _, r := range results {
			out.Metadata.TotalDocs++
			out.Metadata.Types[r.Document.Metadata.Type]++
		}
	}

	a.logger.Debug("context assembled",
		"request_id", requestID,
		"total_docs", out.Metadata.TotalDocs,
		"vocabularies", len(out.Vocabularies),
		"patterns", len(out.Patterns),
		"examples", len(out.Examples))

	return out, nil
}

// contents projects search results onto their document contents.
func contents(results []knowledge.Result) []string {
	if len(results) == 0 {
		return nil
	}

	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Document.Content
	}
	return out
}
