// Package knowledge implements the semantic retrieval layer over the
// precomputed vector index of the dataset catalog knowledge base.
//
// The knowledge base is produced offline by an indexing job and persisted as
// a JSON file containing documents with precomputed embeddings. This package
// loads that file lazily, exactly once per process, and treats it as
// read-only for the process lifetime.
//
// Components:
//
//   - Index: lazily-loaded, immutable document collection
//   - Embedder: capability interface for turning text into a vector,
//     with a Genkit-backed implementation and a caching decorator
//   - Retriever: top-k cosine-similarity search with metadata filtering
//
// Error policy: a missing index file is recoverable (empty index, warning
// logged). Provider failures propagate to the caller; the rag aggregator is
// responsible for degrading them into empty contributions. A dimension
// mismatch between a query embedding and a document embedding is a
// data-integrity error and is never silently ignored.
package knowledge
