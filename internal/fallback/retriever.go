package fallback

import (
	"log/slog"
	"strings"
)

// rule maps literal substrings of the (lowercased) question to positions in
// the example sequence. Rules are scanned in order and their selections
// unioned, so a question touching several topics pulls examples from each.
//
// The indices are positional into the example list, which is maintained
// separately; out-of-range indices are skipped at lookup time rather than
// treated as fatal, because the two artifacts can drift.
type rule struct {
	keywords []string
	indices  []int
}

// defaultRules is the fixed rule table for the catalog domain. Keywords are
// lowercase; Spanish first, English aliases alongside.
var defaultRules = []rule{
	{keywords: []string{"salud", "sanidad", "hospital", "health"}, indices: []int{0, 1}},
	{keywords: []string{"educación", "educacion", "escuela", "education"}, indices: []int{2}},
	{keywords: []string{"aire", "air quality"}, indices: []int{3}},
	{keywords: []string{"medio ambiente", "ambiental", "environment"}, indices: []int{4, 3}},
	{keywords: []string{"transporte", "tráfico", "trafico", "transport"}, indices: []int{5}},
	{keywords: []string{"presupuesto", "gasto", "budget"}, indices: []int{6}},
	{keywords: []string{"empleo", "paro", "employment"}, indices: []int{7}},
	{keywords: []string{"csv", "json", "formato", "format"}, indices: []int{8}},
	{keywords: []string{"organismo", "publicador", "publisher", "publica"}, indices: []int{9}},
	{keywords: []string{"cuántos", "cuantos", "count", "how many"}, indices: []int{1, 9}},
}

// defaultIndices are the general-purpose examples selected when no rule
// matches: the first three of the sequence.
var defaultIndices = []int{0, 1, 2}

// Retriever selects reference examples by keyword matching.
// It is a pure function of (query, k) and the static rule table: the same
// query always yields the same sequence. Safe for concurrent use.
type Retriever struct {
	examples []Example
	rules    []rule
	logger   *slog.Logger
}

// NewRetriever creates a keyword retriever over the given example sequence.
func NewRetriever(examples []Example, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}

	return &Retriever{
		examples: examples,
		rules:    defaultRules,
		logger:   logger,
	}
}

// Search returns up to k examples whose rules match query, in rule-table
// order with duplicates removed. When nothing matches, the general-purpose
// defaults are returned. k <= 0 yields an empty sequence.
//
// Search never fails: the worst case, an empty example sequence, returns an
// empty result.
func (r *Retriever) Search(query string, k int) []Example {
	if k <= 0 || len(r.examples) == 0 {
		return nil
	}

	lowered := strings.ToLower(query)

	var selected []int
	seen := make(map[int]bool)
	for _, rl := range r.rules {
		if !matchesAny(lowered, rl.keywords) {
			continue
		}
		for _, idx := range rl.indices {
			if seen[idx] {
				continue
			}
			seen[idx] = true
			selected = append(selected, idx)
		}
	}

	if len(selected) == 0 {
		selected = defaultIndices
	}

	if len(selected) > k {
		selected = selected[:k]
	}

	out := make([]Example, 0, len(selected))
	for _, idx := range selected {
		if idx < 0 || idx >= len(r.examples) {
			// Rule table and example list drifted apart.
			r.logger.Warn("fallback rule points past example sequence",
				"index", idx,
				"examples", len(r.examples))
			continue
		}
		out = append(out, r.examples[idx])
	}

	return out
}

// Len returns the number of examples available to the retriever.
func (r *Retriever) Len() int {
	return len(r.examples)
}

func matchesAny(query string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}
