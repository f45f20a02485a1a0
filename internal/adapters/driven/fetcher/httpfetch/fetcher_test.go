package httpfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

func TestFetcher_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/page", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/big", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", MaxBodyBytes+100)))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := New(Config{UserAgent: "test-agent"})
	defer f.Close()

	tests := []struct {
		name     string
		path     string
		wantURL  string
		wantType string
		wantLen  int
	}{
		{name: "html", path: "/page", wantURL: server.URL + "/page", wantType: "text/html", wantLen: 31},
		{name: "follows redirect", path: "/old", wantURL: server.URL + "/page", wantType: "text/html", wantLen: 31},
		{name: "truncates body", path: "/big", wantURL: server.URL + "/big", wantType: "text/plain", wantLen: MaxBodyBytes},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := f.Fetch(context.Background(), server.URL+tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.wantURL, page.URL)
			assert.Equal(t, http.StatusOK, page.StatusCode)
			assert.Equal(t, tc.wantType, page.ContentType)
			assert.Len(t, page.Body, tc.wantLen)
		})
	}
}

func TestFetcher_Fetch_Failures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(200 * time.Millisecond)
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	tests := []struct {
		name    string
		fetcher *Fetcher
		url     string
	}{
		{name: "not found", fetcher: New(Config{}), url: server.URL + "/missing"},
		{name: "timeout", fetcher: New(Config{Timeout: 50 * time.Millisecond}), url: server.URL + "/slow"},
		{name: "bad url", fetcher: New(Config{}), url: "://nope"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.fetcher.Fetch(context.Background(), tc.url)
			assert.ErrorIs(t, err, domain.ErrFetchFailed)
		})
	}
}
