// Package rag assembles retrieval context for SPARQL generation.
//
// The Aggregator fans a single user question out into three concurrent
// category searches (vocabulary, pattern, example) against the knowledge
// base, merges the results, and reports provenance counts. A failed category
// degrades to an empty contribution rather than failing the request; the only
// errors GetContext returns are caller cancellation and programming-level
// misuse.
//
// Downstream, Metadata.TotalDocs == 0 is the signal to switch prompt
// construction to the keyword-fallback example path.
package rag
