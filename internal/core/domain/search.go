package domain

// SearchResult is a chunk returned by the embedding index.
// Results are ordered ascending by Distance (lower is more similar).
type SearchResult struct {
	// Text is the matched chunk's content.
	Text string

	// Distance is the squared L2 distance between query and chunk vectors.
	Distance float64

	// Source is the chunk's source identifier (filename or URL).
	Source string

	// Title is the parent document's title.
	Title string
}

// Tier identifies which state of the generation cascade produced an answer.
type Tier string

// Cascade states, in the order they are visited.
const (
	// TierRejected is the guard state for queries failing the input-quality screen.
	TierRejected Tier = "rejected"

	// TierNoContext is the guard state for empty or too-short context.
	TierNoContext Tier = "no_context"

	// TierSeq2Seq is the primary sequence-to-sequence model.
	TierSeq2Seq Tier = "seq2seq"

	// TierCausal is the secondary continuation model.
	TierCausal Tier = "causal"

	// TierExtractive is the extractive question-answering model.
	TierExtractive Tier = "extractive"

	// TierKeyword is the sentence-match and canned-response fallback.
	TierKeyword Tier = "keyword"
)

// String returns the string representation.
func (t Tier) String() string {
	return string(t)
}

// AnswerSource is a retrieved passage shown alongside an answer.
type AnswerSource struct {
	// Text is the chunk content.
	Text string

	// Score is the raw distance. Interfaces render relevance as 1 - Score.
	Score float64

	// Source is the filename or URL the chunk came from.
	Source string
}

// Answer is the result of asking a question.
type Answer struct {
	// Text is the final natural-language answer.
	Text string

	// Tier is the cascade state that produced Text.
	Tier Tier

	// Sources are the ranked passages the answer was composed from.
	Sources []AnswerSource
}

// ExtractedAnswer is a span returned by an extractive QA model.
type ExtractedAnswer struct {
	// Text is the extracted span.
	Text string

	// Score is the model's confidence in [0, 1].
	Score float64
}

// IndexStats summarises the loaded index.
type IndexStats struct {
	// Chunks is the number of indexed chunks.
	Chunks int

	// Dimensions is the embedding vector size.
	Dimensions int

	// Model is the embedding model the index was built with.
	Model string

	// Ready is true when the index can answer queries.
	Ready bool
}
