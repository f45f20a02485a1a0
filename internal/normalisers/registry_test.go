package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

type fakeNormaliser struct {
	name     string
	types    []string
	priority int
}

func (f *fakeNormaliser) SupportedMIMETypes() []string { return f.types }
func (f *fakeNormaliser) Priority() int                { return f.priority }

func (f *fakeNormaliser) Normalise(_ context.Context, raw *driven.RawFile) (*domain.Document, error) {
	doc := domain.NewLocalFileDocument("id", raw.Path, raw.Name, f.name, "", string(raw.Content))
	return &doc, nil
}

func TestRegistry_PicksHighestPriority(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeNormaliser{name: "fallback", types: []string{"text/plain"}, priority: 5})
	r.Register(&fakeNormaliser{name: "specific", types: []string{"text/plain"}, priority: 50})
	r.Register(&fakeNormaliser{name: "late-tie", types: []string{"text/plain"}, priority: 50})

	doc, err := r.Normalise(context.Background(), &driven.RawFile{Name: "a.txt", MIMEType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, "specific", doc.LocalFile.Format)
}

func TestRegistry_Unsupported(t *testing.T) {
	r := NewRegistry()

	_, err := r.Normalise(context.Background(), &driven.RawFile{Name: "a.bin", MIMEType: "application/octet-stream"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = r.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefaultRegistry_SupportedMIMETypes(t *testing.T) {
	types := NewDefaultRegistry().SupportedMIMETypes()

	for _, want := range []string{
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"text/html",
		"text/plain",
		"text/markdown",
	} {
		assert.Contains(t, types, want)
	}
	assert.IsIncreasing(t, types)
}

func TestDefaultRegistry_PlainText(t *testing.T) {
	raw := &driven.RawFile{
		Path:     "/data/notes.txt",
		Name:     "notes.txt",
		MIMEType: "text/plain",
		Content:  []byte("Support is available from 9 to 6 on weekdays."),
	}

	doc, err := NewDefaultRegistry().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "Support is available from 9 to 6 on weekdays.", doc.Text)
	assert.Equal(t, "notes.txt", doc.Source())
}
