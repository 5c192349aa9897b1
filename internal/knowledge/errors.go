package knowledge

import "errors"

// Sentinel errors for the retrieval layer.
// Check with errors.Is():
//
//	results, err := retriever.Search(ctx, query)
//	if errors.Is(err, knowledge.ErrProviderUnavailable) {
//	    // degrade to keyword fallback
//	}
var (
	// ErrProviderUnavailable indicates the embedding backend cannot be
	// reached or is not configured. Callers must tolerate it by degrading
	// to the keyword fallback rather than surfacing a hard failure.
	ErrProviderUnavailable = errors.New("embedding provider unavailable")

	// ErrProviderAuth indicates the embedding backend rejected or is
	// missing credentials.
	ErrProviderAuth = errors.New("embedding provider authentication failed")

	// ErrDimensionMismatch indicates a document embedding has a different
	// length than the query embedding. Documents and queries must be
	// embedded with the same model; a mismatch means the index is stale or
	// corrupt and re-indexing is required.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrInvalidTopK indicates a caller asked for fewer than one result.
	ErrInvalidTopK = errors.New("top-k must be at least 1")
)
