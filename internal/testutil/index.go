package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sparqlcat/sparqlcat/internal/knowledge"
)

// WriteIndex writes a knowledge index file into a test temp directory and
// returns its path. Shape matches what the offline indexing job produces.
func WriteIndex(t *testing.T, docs []knowledge.Document, meta knowledge.IndexMetadata) string {
	t.Helper()

	file := struct {
		Documents []knowledge.Document    `json:"documents"`
		Metadata  knowledge.IndexMetadata `json:"metadata"`
	}{Documents: docs, Metadata: meta}

	data, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("marshaling index fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "knowledge_index.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing index fixture: %v", err)
	}

	return path
}
