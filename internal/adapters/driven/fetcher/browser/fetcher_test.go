package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

func TestNew_Defaults(t *testing.T) {
	f := New(Config{})

	assert.Equal(t, domain.DefaultCrawlTimeout, f.cfg.Timeout)
	assert.Equal(t, domain.DefaultUserAgent, f.cfg.UserAgent)
	assert.NoError(t, f.Close(), "closing an unused fetcher is a no-op")
}

func TestFetcher_Fetch_BadControlURL(t *testing.T) {
	f := New(Config{ControlURL: "ws://127.0.0.1:1/devtools/browser/none", Timeout: time.Second})
	defer f.Close()

	_, err := f.Fetch(context.Background(), "http://example.com")
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

// TestFetcher_Fetch_RendersScript needs a local Chromium; set
// SERCHA_ASSIST_BROWSER_TESTS=1 to run it.
func TestFetcher_Fetch_RendersScript(t *testing.T) {
	if os.Getenv("SERCHA_ASSIST_BROWSER_TESTS") == "" {
		t.Skip("browser tests disabled")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="x"></div>
<script>document.getElementById("x").textContent = "rendered by script";</script></body></html>`))
	}))
	defer server.Close()

	f := New(Config{Timeout: 20 * time.Second})
	defer f.Close()

	page, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, string(page.Body), "rendered by script")
}
