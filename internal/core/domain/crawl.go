package domain

// CrawlState holds the visited set and frontier for one crawl invocation.
// It is created per crawl and never shared between invocations.
type CrawlState struct {
	// Visited contains every URL popped from the frontier.
	Visited map[string]struct{}

	// Frontier is the FIFO queue of URLs still to fetch.
	Frontier []string

	queued map[string]struct{}
}

// NewCrawlState creates a state seeded with one URL.
func NewCrawlState(seed string) *CrawlState {
	s := &CrawlState{
		Visited: make(map[string]struct{}),
		queued:  make(map[string]struct{}),
	}
	s.Enqueue(seed)
	return s
}

// Enqueue adds url to the frontier unless it was already visited or queued.
// It reports whether the URL was added.
func (s *CrawlState) Enqueue(url string) bool {
	if s.Seen(url) {
		return false
	}
	s.Frontier = append(s.Frontier, url)
	s.queued[url] = struct{}{}
	return true
}

// Pop removes and returns the next URL. ok is false when the frontier is empty.
func (s *CrawlState) Pop() (url string, ok bool) {
	if len(s.Frontier) == 0 {
		return "", false
	}
	url = s.Frontier[0]
	s.Frontier = s.Frontier[1:]
	delete(s.queued, url)
	return url, true
}

// MarkVisited records url as visited.
func (s *CrawlState) MarkVisited(url string) {
	s.Visited[url] = struct{}{}
}

// IsVisited returns true if url has been visited.
func (s *CrawlState) IsVisited(url string) bool {
	_, ok := s.Visited[url]
	return ok
}

// Seen returns true if url is visited or waiting in the frontier.
func (s *CrawlState) Seen(url string) bool {
	if s.IsVisited(url) {
		return true
	}
	_, ok := s.queued[url]
	return ok
}

// Pending returns the number of URLs in the frontier.
func (s *CrawlState) Pending() int {
	return len(s.Frontier)
}
