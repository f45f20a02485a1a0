package hfinference

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Infer(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		pipeline string
		wantPath string
		wantAuth string
	}{
		{name: "anonymous model endpoint", wantPath: "/models/org/model"},
		{name: "token and pipeline", token: "hf_x", pipeline: "feature-extraction",
			wantPath: "/models/org/model/pipeline/feature-extraction", wantAuth: "Bearer hf_x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tc.wantPath, r.URL.Path)
				assert.Equal(t, tc.wantAuth, r.Header.Get("Authorization"))
				_, _ = w.Write([]byte(`{"ok":true}`))
			}))
			defer server.Close()

			c := New(Config{Token: tc.token, BaseURL: server.URL})
			var out struct{ OK bool }
			require.NoError(t, c.Infer(context.Background(), "org/model", tc.pipeline, map[string]string{"inputs": "x"}, &out))
			assert.True(t, out.OK)
		})
	}
}
