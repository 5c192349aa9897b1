package knowledge

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeEmbedder implements Embedder for testing.
type fakeEmbedder struct {
	mu        sync.Mutex
	callCount int
	embedErr  error
	vector    []float32
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.callCount++
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	if f.vector != nil {
		return f.vector, nil
	}
	// Deterministic vector derived from the text so distinct inputs get
	// distinct embeddings.
	vec := make([]float32, 4)
	for i, ch := range text {
		vec[i%4] += float32(ch) / 1000
	}
	return vec, nil
}

func (f *fakeEmbedder) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCount
}

func TestCachedEmbedder_CachesExactString(t *testing.T) {
	inner := &fakeEmbedder{}
	cached := NewCachedEmbedder(inner)
	ctx := context.Background()

	first, err := cached.Embed(ctx, "datasets about health")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	second, err := cached.Embed(ctx, "datasets about health")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if inner.calls() != 1 {
		t.Errorf("inner embedder called %d times, want 1", inner.calls())
	}
	if len(first) != len(second) {
		t.Errorf("cached vector length %d differs from original %d", len(second), len(first))
	}
	if cached.Len() != 1 {
		t.Errorf("cache size = %d, want 1", cached.Len())
	}
}

func TestCachedEmbedder_ExactMatchOnly(t *testing.T) {
	inner := &fakeEmbedder{}
	cached := NewCachedEmbedder(inner)
	ctx := context.Background()

	// Keys are the literal strings, no normalization.
	if _, err := cached.Embed(ctx, "Health"); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if _, err := cached.Embed(ctx, "health"); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if inner.calls() != 2 {
		t.Errorf("inner embedder called %d times, want 2 (no normalization)", inner.calls())
	}
}

func TestCachedEmbedder_ErrorsNotCached(t *testing.T) {
	inner := &fakeEmbedder{embedErr: ErrProviderUnavailable}
	cached := NewCachedEmbedder(inner)
	ctx := context.Background()

	if _, err := cached.Embed(ctx, "q"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
	if cached.Len() != 0 {
		t.Errorf("failed embedding was cached, cache size = %d", cached.Len())
	}

	// Backend recovers; the next call must reach it.
	inner.embedErr = nil
	if _, err := cached.Embed(ctx, "q"); err != nil {
		t.Fatalf("Embed after recovery failed: %v", err)
	}
	if cached.Len() != 1 {
		t.Errorf("cache size = %d after recovery, want 1", cached.Len())
	}
}

func TestCachedEmbedder_ConcurrentAccess(t *testing.T) {
	inner := &fakeEmbedder{}
	cached := NewCachedEmbedder(inner)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, q := range []string{"alpha", "beta", "gamma"} {
				if _, err := cached.Embed(ctx, q); err != nil {
					t.Errorf("concurrent Embed failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	if cached.Len() != 3 {
		t.Errorf("cache size = %d, want 3", cached.Len())
	}
}

func TestClassifyProviderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"missing api key", errors.New("GEMINI_API_KEY not set, api key required"), ErrProviderAuth},
		{"http 401", errors.New("request failed: 401 Unauthorized"), ErrProviderAuth},
		{"permission denied", errors.New("rpc error: permission denied"), ErrProviderAuth},
		{"connection refused", errors.New("dial tcp 127.0.0.1:11434: connection refused"), ErrProviderUnavailable},
		{"timeout", errors.New("context deadline exceeded"), ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyProviderError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyProviderError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
