package driven

import (
	"context"
	"encoding"
)

// VectorIndex provides nearest-neighbour search over chunk embeddings.
// Vectors are addressed by insertion position: the i-th vector added is
// the i-th chunk in the index store.
type VectorIndex interface {
	// Reset discards all vectors and fixes the dimensionality.
	Reset(dimensions int)

	// Add appends vectors in order. Every vector must match Dimensions.
	Add(ctx context.Context, vectors [][]float32) error

	// Search returns up to k hits ordered ascending by distance.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Size returns the number of indexed vectors.
	Size() int

	// Dimensions returns the vector size, or 0 before Reset.
	Dimensions() int

	// MarshalBinary serializes the index structure.
	encoding.BinaryMarshaler

	// UnmarshalBinary replaces the index with a serialized structure.
	encoding.BinaryUnmarshaler
}

// VectorHit is a single nearest-neighbour result.
type VectorHit struct {
	// Position is the insertion index of the matched vector.
	Position int

	// Distance is the squared L2 distance to the query.
	Distance float64
}
