package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sparqlcat/sparqlcat/internal/config"
	"github.com/sparqlcat/sparqlcat/internal/knowledge"
	"github.com/sparqlcat/sparqlcat/internal/log"
	"github.com/sparqlcat/sparqlcat/internal/rag"
	"github.com/sparqlcat/sparqlcat/internal/testutil"
)

func fixtureDocs() []knowledge.Document {
	return []knowledge.Document{
		{
			ID:        "vocab-dataset",
			Content:   "dcat:Dataset is the class for catalog datasets.",
			Metadata:  knowledge.Metadata{Type: knowledge.TypeVocabulary},
			Embedding: []float32{1, 0},
		},
		{
			ID:        "pattern-theme",
			Content:   "Filter datasets by theme with dcat:theme.",
			Metadata:  knowledge.Metadata{Type: knowledge.TypePattern},
			Embedding: []float32{0.9, 0.1},
		},
		{
			ID:        "example-list",
			Content:   "SELECT ?d WHERE { ?d a dcat:Dataset }\nLIMIT 10",
			Metadata:  knowledge.Metadata{Type: knowledge.TypeExample},
			Embedding: []float32{0.8, 0.2},
		},
	}
}

func TestWarmUp_LoadsIndexAndExamples(t *testing.T) {
	docs := fixtureDocs()
	path := testutil.WriteIndex(t, docs, knowledge.IndexMetadata{
		IndexedAt:      time.Now(),
		TotalDocuments: len(docs),
		EmbeddingModel: "gemini-embedding-001",
	})

	cfg := &config.Config{
		IndexPath:    path,
		ExamplesPath: filepath.Join(t.TempDir(), "missing.md"),
	}

	index := knowledge.NewIndex(path, log.NewNop())
	fb := warmUp(index, cfg, log.NewNop())

	if index.Len() != len(docs) {
		t.Errorf("index loaded %d documents, want %d", index.Len(), len(docs))
	}
	// Missing examples file falls back to the built-in reference set.
	if fb.Len() == 0 {
		t.Error("fallback retriever has no examples after warm-up")
	}
}

func TestWarmUp_MissingIndexDegrades(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		IndexPath:    filepath.Join(dir, "absent.json"),
		ExamplesPath: filepath.Join(dir, "missing.md"),
	}

	index := knowledge.NewIndex(cfg.IndexPath, log.NewNop())
	fb := warmUp(index, cfg, log.NewNop())

	if index.Len() != 0 {
		t.Errorf("absent index reported %d documents", index.Len())
	}
	if got := fb.Search("datasets sobre salud", 3); len(got) == 0 {
		t.Error("keyword fallback unusable after degraded warm-up")
	}
}

// Index file through retriever and aggregator, no model involved.
func TestPipeline_ContextFromIndex(t *testing.T) {
	docs := fixtureDocs()
	path := testutil.WriteIndex(t, docs, knowledge.IndexMetadata{
		TotalDocuments: len(docs),
	})

	index := knowledge.NewIndex(path, log.NewNop())
	embedder := knowledge.NewCachedEmbedder(&testutil.StaticEmbedder{Default: []float32{1, 0}})
	retriever := knowledge.NewRetriever(index, embedder, log.NewNop())
	aggregator := rag.NewAggregator(retriever, log.NewNop())

	rc, err := aggregator.GetContext(context.Background(), "¿Qué datasets hay sobre salud?")
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}

	if rc.Metadata.TotalDocs != len(docs) {
		t.Errorf("TotalDocs = %d, want %d", rc.Metadata.TotalDocs, len(docs))
	}
	if len(rc.Vocabularies) != 1 || len(rc.Patterns) != 1 || len(rc.Examples) != 1 {
		t.Errorf("category split = %d/%d/%d, want 1/1/1",
			len(rc.Vocabularies), len(rc.Patterns), len(rc.Examples))
	}
	if rc.Vocabularies[0] != docs[0].Content {
		t.Errorf("vocabulary content = %q", rc.Vocabularies[0])
	}
}
