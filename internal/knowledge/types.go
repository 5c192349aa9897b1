package knowledge

import "time"

// Document type constants.
// These define the categories of reference material in the knowledge base.
const (
	// TypeVocabulary represents vocabulary documents (classes, properties,
	// namespace descriptions of the catalog ontology).
	TypeVocabulary = "vocabulary"

	// TypePattern represents reusable SPARQL query patterns.
	TypePattern = "pattern"

	// TypeExample represents full question/query example pairs.
	TypeExample = "example"

	// TypeDocumentation represents free-form catalog documentation.
	TypeDocumentation = "documentation"
)

// Metadata describes a knowledge base document.
type Metadata struct {
	Type       string `json:"type"`                 // vocabulary, pattern, example, documentation
	Category   string `json:"category,omitempty"`   // free-form topic grouping
	Difficulty string `json:"difficulty,omitempty"` // basic, intermediate, advanced
	Source     string `json:"source"`               // originating knowledge base section
	FilePath   string `json:"filePath"`             // source file the content was extracted from
}

// Document is a single knowledge base entry. Immutable once loaded.
// Embedding is optional: documents without one are excluded from semantic
// search but can still surface through the keyword fallback.
type Document struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Metadata  Metadata  `json:"metadata"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// IndexMetadata describes the persisted index as a whole.
type IndexMetadata struct {
	IndexedAt      time.Time `json:"indexedAt"`
	TotalDocuments int       `json:"totalDocuments"`
	EmbeddingModel string    `json:"embeddingModel"`
}

// Result is a single search result. Document is copied by value, but its
// slice fields (Embedding) still alias the loaded index and must not be
// mutated.
type Result struct {
	Document Document
	Score    float64 // cosine similarity in [-1, 1]
}

// SearchOption configures search behavior using the functional options
// pattern (as in context.WithTimeout, grpc.Dial).
type SearchOption func(*searchConfig)

// searchConfig holds internal search configuration.
type searchConfig struct {
	topK       int
	docType    string
	category   string
	difficulty string
}

// DefaultTopK is the number of results returned when WithTopK is not given.
const DefaultTopK = 5

// WithTopK sets the maximum number of results to return.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		c.topK = k
	}
}

// WithType restricts results to documents of the given type
// (TypeVocabulary, TypePattern, TypeExample, TypeDocumentation).
func WithType(t string) SearchOption {
	return func(c *searchConfig) {
		c.docType = t
	}
}

// WithCategory restricts results to documents with the given category.
func WithCategory(category string) SearchOption {
	return func(c *searchConfig) {
		c.category = category
	}
}

// WithDifficulty restricts results to documents with the given difficulty.
func WithDifficulty(difficulty string) SearchOption {
	return func(c *searchConfig) {
		c.difficulty = difficulty
	}
}

// buildSearchConfig applies search options and returns the final configuration.
func buildSearchConfig(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{
		topK: DefaultTopK,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// matches reports whether doc satisfies every filter field set on the config.
// Unset filter fields are not checked (exact-match conjunction).
func (c *searchConfig) matches(doc *Document) bool {
	if c.docType != "" && doc.Metadata.Type != c.docType {
		return false
	}
	if c.category != "" && doc.Metadata.Category != c.category {
		return false
	}
	if c.difficulty != "" && doc.Metadata.Difficulty != c.difficulty {
		return false
	}
	return true
}
