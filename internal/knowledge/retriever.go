package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Retriever performs top-k semantic search over the knowledge base index.
//
// Retriever is safe for concurrent use: the index is read-only after load and
// the embedder guards its own cache.
type Retriever struct {
	index    *Index
	embedder Embedder
	logger   *slog.Logger
}

// NewRetriever creates a Retriever over the given index and embedder.
// Wrap the embedder with NewCachedEmbedder to avoid recomputing query
// embeddings across the concurrent category searches.
func NewRetriever(index *Index, embedder Embedder, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}

	return &Retriever{
		index:    index,
		embedder: embedder,
		logger:   logger,
	}
}

// Search returns the top-k documents by cosine similarity to query, best
// first. Filters are an exact-match conjunction over the metadata fields set
// by the options; unset fields are not checked. Documents without an
// embedding never qualify.
//
// An empty index yields an empty result, not an error. Ties preserve
// original document order so results are deterministic.
//
// Example:
//
//	results, err := retriever.Search(ctx, "datasets about air quality",
//	    knowledge.WithTopK(3),
//	    knowledge.WithType(knowledge.TypeExample))
func (r *Retriever) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)
	if cfg.topK < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, cfg.topK)
	}

	docs, err := r.index.Documents()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	// Filter before embedding so an all-filtered search never spends
	// provider quota.
	candidates := make([]*Document, 0, len(docs))
	for i := range docs {
		if len(docs[i].Embedding) == 0 {
			continue
		}
		if !cfg.matches(&docs[i]) {
			continue
		}
		candidates = append(candidates, &docs[i])
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results := make([]Result, 0, len(candidates))
	for _, doc := range candidates {
		score, err := Cosine(queryVec, doc.Embedding)
		if err != nil {
			// Data-integrity error: a mismatched dimension means the
			// index was built with a different embedding model.
			return nil, fmt.Errorf("scoring document %q: %w", doc.ID, err)
		}
		results = append(results, Result{Document: *doc, Score: score})
	}

	// Stable sort keeps original document order on equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > cfg.topK {
		results = results[:cfg.topK]
	}

	r.logger.Debug("semantic search complete",
		"candidates", len(candidates),
		"returned", len(results))

	return results, nil
}

// SearchByType is a convenience wrapper for the single-type searches issued
// by the context aggregator.
func (r *Retriever) SearchByType(ctx context.Context, query, docType string, topK int) ([]Result, error) {
	return r.Search(ctx, query, WithTopK(topK), WithType(docType))
}
