package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// IndexSnapshot is the persisted form of an embedding index.
// Chunks, Embeddings and the serialized ANN structure are row-aligned.
type IndexSnapshot struct {
	// Chunks is the indexed chunk list.
	Chunks []domain.Chunk

	// Embeddings is the embedding matrix, one row per chunk.
	Embeddings [][]float32

	// ANN is the serialized VectorIndex. Nil means no index.
	ANN []byte

	// Dimensions is the embedding vector size.
	Dimensions int

	// Model is the embedding model used to build the index.
	Model string

	// CreatedAt is when the snapshot was written.
	CreatedAt time.Time
}

// IndexStore persists index snapshots as a single atomic unit.
type IndexStore interface {
	// Save writes the snapshot to path, replacing any previous file atomically.
	Save(ctx context.Context, path string, snap *IndexSnapshot) error

	// Load reads a snapshot from path. A missing, malformed or
	// incompatible file returns ok=false and no error: the caller must rebuild.
	Load(ctx context.Context, path string) (snap *IndexSnapshot, ok bool)
}
