package knowledge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// indexFile is the on-disk shape of the persisted index, produced by the
// offline indexing job.
type indexFile struct {
	Documents []Document    `json:"documents"`
	Metadata  IndexMetadata `json:"metadata"`
}

// Index is the lazily-loaded, immutable knowledge base index.
//
// The backing file is read at most once per process, on first access, and the
// loaded documents are never mutated afterwards. Absence of the file is a
// recoverable condition: the index behaves as empty and a warning recommends
// re-indexing. Any other read or parse failure is surfaced to the caller.
//
// Safe for concurrent use.
type Index struct {
	path   string
	logger *slog.Logger

	once    sync.Once
	docs    []Document
	meta    IndexMetadata
	loadErr error
}

// NewIndex creates an Index backed by the JSON file at path.
// The file is not touched until the first call to Documents or Metadata.
func NewIndex(path string, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}

	return &Index{
		path:   path,
		logger: logger,
	}
}

// Documents returns the loaded document collection, loading it on first call.
// An absent index file yields an empty slice, not an error.
func (idx *Index) Documents() ([]Document, error) {
	idx.once.Do(idx.load)
	return idx.docs, idx.loadErr
}

// Metadata returns the index-level metadata, loading the index on first call.
// The load error, if any, is reported by Documents.
func (idx *Index) Metadata() IndexMetadata {
	idx.once.Do(idx.load)
	return idx.meta
}

// Len returns the number of loaded documents. Zero before a successful load
// or when the backing file is absent.
func (idx *Index) Len() int {
	docs, _ := idx.Documents()
	return len(docs)
}

func (idx *Index) load() {
	data, err := os.ReadFile(idx.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Recoverable: run the indexing job to create the file.
			idx.logger.Warn("knowledge base index not found, semantic search disabled",
				"path", idx.path,
				"hint", "re-run the indexing job to enable semantic retrieval")
			return
		}
		idx.loadErr = fmt.Errorf("reading index %s: %w", idx.path, err)
		return
	}

	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		idx.loadErr = fmt.Errorf("parsing index %s: %w", idx.path, err)
		return
	}

	if file.Metadata.TotalDocuments != len(file.Documents) {
		// Invariant drift: trust the documents array, flag the metadata.
		idx.logger.Warn("index metadata disagrees with document count",
			"total_documents", file.Metadata.TotalDocuments,
			"actual", len(file.Documents))
		file.Metadata.TotalDocuments = len(file.Documents)
	}

	idx.docs = file.Documents
	idx.meta = file.Metadata

	idx.logger.Debug("knowledge base index loaded",
		"path", idx.path,
		"documents", len(idx.docs),
		"embedding_model", idx.meta.EmbeddingModel)
}
