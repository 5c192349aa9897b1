// Package testutil provides shared fixtures for pipeline tests: a
// deterministic embedder and an on-disk index writer.
package testutil

import (
	"context"
	"fmt"
)

// StaticEmbedder returns fixed vectors keyed by exact input text.
// Texts without an entry get Default; with no Default set they fail, which
// makes unexpected embedder calls visible in tests.
type StaticEmbedder struct {
	Vectors map[string][]float32
	Default []float32
}

// Embed implements the knowledge embedder contract.
func (e *StaticEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := e.Vectors[text]; ok {
		return v, nil
	}
	if e.Default != nil {
		return e.Default, nil
	}
	return nil, fmt.Errorf("testutil: no vector registered for %q", text)
}
