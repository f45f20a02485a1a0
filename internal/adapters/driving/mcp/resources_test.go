package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func corpus() []domain.Document {
	return []domain.Document{
		domain.NewLocalFileDocument("doc-1", "data/pdfs/claims.pdf", "claims.pdf", "pdf", "Claims", "File a claim within 30 days."),
		domain.NewWebpageDocument("doc-2", "https://example.com/support", "Support", "Contact support any time."),
	}
}

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid document URI", uri: "sercha-assist://documents/doc-456", expected: "doc-456"},
		{name: "invalid prefix", uri: "file://documents/doc-456", expected: ""},
		{name: "collection URI", uri: "sercha-assist://documents", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractDocumentID(tc.uri))
		})
	}
}

func TestServer_handleIndexResource(t *testing.T) {
	assistant := &mockAssistant{stats: domain.IndexStats{Chunks: 42, Dimensions: 384, Model: "all-minilm", Ready: true}}
	server, err := NewServer(&Ports{Assistant: assistant})
	require.NoError(t, err)

	result, err := server.handleIndexResource(context.Background(), makeReadResourceRequest("sercha-assist://index"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.JSONEq(t, `{"ready": true, "chunks": 42, "dimensions": 384, "model": "all-minilm"}`, result.Contents[0].Text)
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()
	req := makeReadResourceRequest("sercha-assist://documents")

	t.Run("no ingest service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Assistant: &mockAssistant{}})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("empty cache returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Assistant: &mockAssistant{}, Ingest: &mockIngest{err: domain.ErrNotFound}})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists cached documents", func(t *testing.T) {
		server, err := NewServer(&Ports{Assistant: &mockAssistant{}, Ingest: &mockIngest{docs: corpus()}})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, req)
		require.NoError(t, err)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"source": "claims.pdf"`)
		assert.Contains(t, text, `"source": "https://example.com/support"`)
		assert.Contains(t, text, `"kind": "webpage"`)
	})

	t.Run("store failure is an error", func(t *testing.T) {
		server, err := NewServer(&Ports{Assistant: &mockAssistant{}, Ingest: &mockIngest{err: errors.New("disk I/O error")}})
		require.NoError(t, err)

		_, err = server.handleDocumentsResource(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing documents")
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{Assistant: &mockAssistant{}, Ingest: &mockIngest{docs: corpus()}})
	require.NoError(t, err)

	t.Run("returns document text", func(t *testing.T) {
		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("sercha-assist://documents/doc-2"))
		require.NoError(t, err)
		assert.Equal(t, "Contact support any time.", result.Contents[0].Text)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("sercha-assist://documents/missing"))
		assert.Error(t, err)
	})

	t.Run("invalid URI", func(t *testing.T) {
		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("sercha-assist://other"))
		assert.Error(t, err)
	})
}
