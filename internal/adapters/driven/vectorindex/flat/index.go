// Package flat provides an exact nearest-neighbour index using squared
// Euclidean distance over every stored vector.
//
// The index is pure Go and keeps vectors in one contiguous slice. It is the
// right structure for corpora of a few thousand chunks, where exhaustive
// search is fast and results are exact.
package flat

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Serialization header.
var magic = [4]byte{'S', 'A', 'F', 'L'}

const formatVersion uint16 = 1

// ErrCorrupt indicates serialized data that cannot be decoded.
var ErrCorrupt = errors.New("flat: corrupt index data")

// Index is an exact squared-L2 index. Vector i is the i-th vector added.
type Index struct {
	mu   sync.RWMutex
	dims int
	data []float32
}

// New creates an empty index for vectors of the given size.
func New(dims int) *Index {
	return &Index{dims: dims}
}

// Reset discards all vectors and fixes the dimensionality.
func (idx *Index) Reset(dims int) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.dims = dims
	idx.data = nil
}

// Add appends vectors in order. The batch is rejected whole if any vector
// has the wrong size.
func (idx *Index) Add(_ context.Context, vectors [][]float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.dims <= 0 {
		return errors.New("flat: dimensions not set")
	}
	for i, v := range vectors {
		if len(v) != idx.dims {
			return fmt.Errorf("vector %d: %w: got %d, want %d", i, domain.ErrDimensionMismatch, len(v), idx.dims)
		}
	}
	for _, v := range vectors {
		idx.data = append(idx.data, v...)
	}
	return nil
}

// Search returns the k nearest vectors, ascending by distance. Ties keep
// insertion order.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(query) != idx.dims {
		return nil, fmt.Errorf("query: %w: got %d, want %d", domain.ErrDimensionMismatch, len(query), idx.dims)
	}
	n := idx.size()
	if k <= 0 || n == 0 {
		return []driven.VectorHit{}, nil
	}

	hits := make([]driven.VectorHit, n)
	for i := 0; i < n; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		hits[i] = driven.VectorHit{
			Position: i,
			Distance: squaredL2(idx.data[i*idx.dims:(i+1)*idx.dims], query),
		}
	}

	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Distance < hits[b].Distance })
	if k < n {
		hits = hits[:k]
	}
	return hits, nil
}

// Size returns the number of indexed vectors.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.size()
}

func (idx *Index) size() int {
	if idx.dims <= 0 {
		return 0
	}
	return len(idx.data) / idx.dims
}

// Dimensions returns the vector size.
func (idx *Index) Dimensions() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dims
}

// MarshalBinary encodes the index as magic, version, dimensions, count and
// the little-endian float32 matrix.
func (idx *Index) MarshalBinary() ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var buf bytes.Buffer
	buf.Grow(14 + 4*len(idx.data))
	buf.Write(magic[:])
	header := struct {
		Version uint16
		Dims    uint32
		Count   uint32
	}{formatVersion, uint32(idx.dims), uint32(idx.size())}
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, idx.data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces the index with decoded data. On error the
// index is left unchanged.
func (idx *Index) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	var m [4]byte
	if _, err := r.Read(m[:]); err != nil || m != magic {
		return fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	var header struct {
		Version uint16
		Dims    uint32
		Count   uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("%w: short header", ErrCorrupt)
	}
	if header.Version != formatVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorrupt, header.Version)
	}
	want := int64(header.Dims) * int64(header.Count)
	if int64(r.Len()) != want*4 {
		return fmt.Errorf("%w: expected %d values, have %d bytes", ErrCorrupt, want, r.Len())
	}

	values := make([]float32, want)
	if err := binary.Read(r, binary.LittleEndian, values); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.dims = int(header.Dims)
	idx.data = values
	return nil
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
