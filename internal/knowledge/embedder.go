package knowledge

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/firebase/genkit/go/ai"
)

// Embedder turns text into a fixed-length vector. Exactly one backend is
// active per process; selection happens at construction time in the app
// wiring, never by runtime type inspection.
//
// Implementations must return ErrProviderUnavailable (wrapped) when the
// backend cannot be reached and ErrProviderAuth when credentials are missing
// or rejected, so callers can degrade to the keyword fallback.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GenkitEmbedder adapts a Genkit ai.Embedder to the Embedder interface.
type GenkitEmbedder struct {
	embedder ai.Embedder
}

// NewGenkitEmbedder wraps a Genkit ai.Embedder. The concrete backend
// (Gemini, Ollama, OpenAI-compatible) is chosen by the plugin registered
// during app setup.
func NewGenkitEmbedder(embedder ai.Embedder) *GenkitEmbedder {
	return &GenkitEmbedder{embedder: embedder}
}

// Embed generates an embedding for text.
func (g *GenkitEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	req := &ai.EmbedRequest{
		Input: []*ai.Document{
			ai.DocumentFromText(text, nil),
		},
	}

	resp, err := g.embedder.Embed(ctx, req)
	if err != nil {
		return nil, classifyProviderError(err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding returned", ErrProviderUnavailable)
	}

	return resp.Embeddings[0].Embedding, nil
}

// classifyProviderError maps a backend error onto the package taxonomy.
// Genkit plugins do not expose typed errors, so classification is by status
// text; anything not recognizably an auth failure counts as unavailability.
func classifyProviderError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "unauthenticated"),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "401"),
		strings.Contains(msg, "403"):
		return fmt.Errorf("%w: %v", ErrProviderAuth, err)
	default:
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
}

// CachedEmbedder decorates an Embedder with a process-wide cache keyed by the
// exact query string (no normalization). The cache grows unboundedly for the
// process lifetime; values for the same key are identical, so a duplicate
// computation under a concurrent miss is benign — last write wins.
//
// Safe for concurrent use.
type CachedEmbedder struct {
	inner Embedder

	mu    sync.RWMutex
	cache map[string][]float32
}

// NewCachedEmbedder wraps inner with an embedding cache.
func NewCachedEmbedder(inner Embedder) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		cache: make(map[string][]float32),
	}
}

// Embed returns the cached vector for text, computing and storing it on miss.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.mu.RLock()
	vec, ok := c.cache[text]
	c.mu.RUnlock()
	if ok {
		return vec, nil
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[text] = vec
	c.mu.Unlock()

	return vec, nil
}

// Len returns the number of cached entries.
func (c *CachedEmbedder) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
