// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EmbeddingService: Turns chunk and query text into vectors
//   - VectorIndex: Exact nearest-neighbour search over chunk vectors
//   - IndexStore: Persists chunks, vectors and the serialized index together
//   - Normaliser / NormaliserRegistry: Extract text from local files
//   - PageFetcher: Fetches pages for the crawler
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: One per generative cascade tier. A nil tier is skipped.
//   - AnswerExtractor: Extractive QA tier. Skipped when nil.
//   - DocumentStore: Corpus cache. Without it every build re-ingests.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
