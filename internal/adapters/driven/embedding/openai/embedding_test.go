package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErr  bool
		wantDims int
	}{
		{name: "missing key", cfg: Config{}, wantErr: true},
		{name: "v3 model truncates to 384", cfg: Config{APIKey: "k"}, wantDims: 384},
		{name: "explicit dimensions", cfg: Config{APIKey: "k", Dimensions: 256}, wantDims: 256},
		{name: "ada keeps native size", cfg: Config{APIKey: "k", Model: "text-embedding-ada-002"}, wantDims: 1536},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewEmbeddingService(tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDims, s.Dimensions())
		})
	}
}

func TestEmbeddingService_EmbedBatch_ReordersByIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 3, req.Dimensions)

		_, _ = w.Write([]byte(`{"data":[
			{"index":1,"embedding":[0,1,0]},
			{"index":0,"embedding":[1,0,0]}
		]}`))
	}))
	defer server.Close()

	s, err := NewEmbeddingService(Config{APIKey: "key", BaseURL: server.URL, Dimensions: 3})
	require.NoError(t, err)

	out, err := s.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0, 0}, {0, 1, 0}}, out)
}

func TestEmbeddingService_EmbedBatch_MissingRow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[1,0,0]}]}`))
	}))
	defer server.Close()

	s, err := NewEmbeddingService(Config{APIKey: "key", BaseURL: server.URL, Dimensions: 3})
	require.NoError(t, err)

	_, err = s.EmbedBatch(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}

func TestEmbeddingService_Ping_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	s, err := NewEmbeddingService(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)
	assert.ErrorContains(t, s.Ping(context.Background()), "401")
}
