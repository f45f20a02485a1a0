// Package browser fetches pages through a headless Chromium so that
// JavaScript-rendered content is present in the returned HTML.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-assist/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.PageFetcher = (*Fetcher)(nil)

// Config holds browser fetcher configuration.
type Config struct {
	// Timeout bounds navigation and load for each page (default: 10s).
	Timeout time.Duration

	// UserAgent overrides the browser's user agent.
	UserAgent string

	// Bin is the browser executable. Empty lets rod find or download one.
	Bin string

	// ControlURL connects to an already running browser instead of launching.
	ControlURL string
}

// Fetcher renders pages in a shared browser. The browser is launched on
// the first Fetch and reused until Close.
type Fetcher struct {
	cfg Config

	mu      sync.Mutex
	launch  *launcher.Launcher
	browser *rod.Browser
}

// New creates a browser fetcher. No process is started until Fetch.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultCrawlTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = domain.DefaultUserAgent
	}
	return &Fetcher{cfg: cfg}
}

func (f *Fetcher) connect() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}

	controlURL := f.cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(true)
		if f.cfg.Bin != "" {
			l = l.Bin(f.cfg.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		f.launch = l
		controlURL = u
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		if f.launch != nil {
			f.launch.Cleanup()
			f.launch = nil
		}
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	logger.Debug("Browser connected at %s", controlURL)

	f.browser = b
	return b, nil
}

// Fetch opens url in a new tab, waits for load and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*driven.FetchedPage, error) {
	b, err := f.connect()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailed, url, err)
	}

	page, err := b.Context(ctx).Timeout(f.cfg.Timeout).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: open tab: %v", domain.ErrFetchFailed, url, err)
	}
	defer page.Close()

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.cfg.UserAgent}); err != nil {
		return nil, fmt.Errorf("%w: %s: set user agent: %v", domain.ErrFetchFailed, url, err)
	}
	if err := page.Navigate(url); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailed, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %s: wait load: %v", domain.ErrFetchFailed, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read html: %v", domain.ErrFetchFailed, url, err)
	}

	finalURL := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return &driven.FetchedPage{
		URL:         finalURL,
		StatusCode:  200,
		ContentType: "text/html",
		Body:        []byte(html),
	}, nil
}

// Close shuts the browser down and removes a launched profile.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launch != nil {
		f.launch.Cleanup()
		f.launch = nil
	}
	return err
}
