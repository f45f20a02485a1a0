package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

func TestSupportedMIMETypes(t *testing.T) {
	n := New()
	assert.Equal(t, []string{"text/html", "application/xhtml+xml"}, n.SupportedMIMETypes())
	assert.Equal(t, 50, n.Priority())
}

func TestNormalise_NilFile(t *testing.T) {
	doc, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}

func TestNormalise_SavedPage(t *testing.T) {
	raw := &driven.RawFile{
		Path:     "/data/pdfs/support.html",
		Name:     "support.html",
		MIMEType: "text/html",
		Content:  []byte(supportPage),
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, domain.KindLocalFile, doc.Kind)
	assert.Equal(t, "Support | Example", doc.Title)
	assert.Contains(t, doc.Text, "submit your KYC documents online")
	assert.NotContains(t, doc.Text, "tracking")
	require.NotNil(t, doc.LocalFile)
	assert.Equal(t, "html", doc.LocalFile.Format)
	assert.Nil(t, doc.Webpage)
}

func TestNormalise_TitleFromFilename(t *testing.T) {
	raw := &driven.RawFile{
		Name:     "fees.htm",
		MIMEType: "text/html",
		Content:  []byte("<p>Trading fees are listed in the fee schedule.</p>"),
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "fees", doc.Title)
	assert.Equal(t, "Trading fees are listed in the fee schedule.", doc.Text)
}
