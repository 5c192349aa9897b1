package generate

import (
	"fmt"
	"strings"

	"github.com/sparqlcat/sparqlcat/internal/fallback"
	"github.com/sparqlcat/sparqlcat/internal/rag"
)

// systemPrompt frames every request. It pins the output contract (query text
// only) so the sanitizer downstream has as little prose as possible to strip.
const systemPrompt = `You are a SPARQL expert for an open-data catalog described with the DCAT vocabulary.
Translate the user's natural-language question into a single SPARQL query.

Rules:
- Return ONLY the SPARQL query, no explanations, no markdown fences.
- Always declare the PREFIX block for every prefix you use.
- Always end the query with a LIMIT clause.
- Question language is usually Spanish; match dataset titles and keywords accordingly.`

// fallbackExampleCount is how many keyword-selected examples are injected
// when semantic retrieval produced nothing.
const fallbackExampleCount = 3

// BuildPrompt assembles the user prompt for one question from the retrieved
// context. When retrieval came back empty (no index, or fully degraded), the
// keyword-selected examples are injected instead so the model always sees at
// least a few worked question/query pairs.
func BuildPrompt(question string, rc rag.Context, examples []fallback.Example) string {
	var b strings.Builder

	if rc.Metadata.TotalDocs > 0 {
		writeSection(&b, "Vocabulary", rc.Vocabularies)
		writeSection(&b, "Query patterns", rc.Patterns)
		writeSection(&b, "Examples", rc.Examples)
	} else {
		writeExamples(&b, examples)
	}

	fmt.Fprintf(&b, "Question: %s\n\nSPARQL query:", question)

	return b.String()
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "%s\n\n", strings.TrimSpace(item))
	}
}

func writeExamples(b *strings.Builder, examples []fallback.Example) {
	if len(examples) == 0 {
		return
	}

	b.WriteString("Examples:\n")
	for _, ex := range examples {
		fmt.Fprintf(b, "Question: %s\nSPARQL query:\n%s\n\n", ex.Query, strings.TrimSpace(ex.SPARQL))
	}
}
