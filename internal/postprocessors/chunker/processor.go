// Package chunker provides a separator-aware text chunking processor.
//
// Text is split on a separator (newline by default) and the pieces are
// merged greedily into windows of at most the chunk size, carrying the
// trailing pieces of one window into the next as overlap. Pieces longer
// than the chunk size are cut into word-aligned windows first, so no chunk
// ever exceeds the limit. Lengths are measured in characters, not bytes.
package chunker

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// DefaultSeparator is the preferred break between pieces.
const DefaultSeparator = domain.DefaultChunkSeparator

// Processor splits document text into overlapping windows.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
	separator string
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithSeparator sets the preferred break string. Empty is ignored.
func WithSeparator(sep string) Option {
	return func(p *Processor) {
		if sep != "" {
			p.separator = sep
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
		separator: DefaultSeparator,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document text into chunks.
// Input chunks are ignored; this processor creates new chunks from document text.
// The output is a pure function of the text and the processor settings.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc == nil || doc.Text == "" {
		return nil, nil
	}

	windows := p.Split(doc.Text)
	chunks := make([]domain.Chunk, 0, len(windows))
	for i, w := range windows {
		chunks = append(chunks, domain.ChunkOf(*doc, i, w))
	}
	return chunks, nil
}

// Split returns the windows for text.
func (p *Processor) Split(text string) []string {
	var pieces []string
	for _, s := range strings.Split(text, p.separator) {
		if s == "" {
			continue
		}
		if utf8.RuneCountInString(s) > p.chunkSize {
			pieces = append(pieces, p.window(s)...)
			continue
		}
		pieces = append(pieces, s)
	}
	return p.merge(pieces)
}

// merge packs pieces greedily into chunks, keeping up to overlap
// characters of trailing pieces at the start of the next chunk.
func (p *Processor) merge(pieces []string) []string {
	sepLen := utf8.RuneCountInString(p.separator)

	var (
		out     []string
		current []string
		total   int
	)

	// joinCost is the separator length added when a piece joins current.
	joinCost := func() int {
		if len(current) > 0 {
			return sepLen
		}
		return 0
	}

	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)

		if total+n+joinCost() > p.chunkSize && len(current) > 0 {
			if chunk := p.join(current); chunk != "" {
				out = append(out, chunk)
			}
			for total > p.overlap || (total > 0 && total+n+joinCost() > p.chunkSize) {
				drop := utf8.RuneCountInString(current[0])
				if len(current) > 1 {
					drop += sepLen
				}
				total -= drop
				current = current[1:]
			}
		}

		current = append(current, piece)
		total += n
		if len(current) > 1 {
			total += sepLen
		}
	}

	if chunk := p.join(current); chunk != "" {
		out = append(out, chunk)
	}
	return out
}

func (p *Processor) join(pieces []string) string {
	return strings.TrimSpace(strings.Join(pieces, p.separator))
}

// window cuts an oversized piece into windows of at most chunkSize
// characters that overlap by about overlap characters. Windows end before
// the last whitespace that fits and the next one starts at a word, so words
// are only cut when a single word is longer than the window.
func (p *Processor) window(s string) []string {
	runes := []rune(s)

	var out []string
	start := 0
	for start < len(runes) {
		end := start + p.chunkSize
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			break
		}
		if cut := lastSpace(runes, start, end); cut > start {
			end = cut
		}
		out = append(out, string(runes[start:end]))

		next := end - p.overlap
		if next <= start {
			next = end
		}
		next = wordStart(runes, next, end)
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		start = next
	}
	return out
}

// lastSpace returns the index of the last whitespace in runes[start+1:end+1],
// or -1.
func lastSpace(runes []rune, start, end int) int {
	for i := end; i > start; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

// wordStart moves i forward to the first word start at or before limit.
// Without a word break in range, i is returned unchanged.
func wordStart(runes []rune, i, limit int) int {
	for j := i; j <= limit; j++ {
		if unicode.IsSpace(runes[j-1]) {
			return j
		}
	}
	return i
}
