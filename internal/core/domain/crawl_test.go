package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCrawlState(t *testing.T) {
	s := NewCrawlState("https://example.com/")

	assert.Equal(t, 1, s.Pending())
	assert.Empty(t, s.Visited)
	assert.True(t, s.Seen("https://example.com/"))
}

// TestCrawlState_EnqueueDedup tests that a URL is enqueued at most once
func TestCrawlState_EnqueueDedup(t *testing.T) {
	s := NewCrawlState("https://example.com/")

	assert.False(t, s.Enqueue("https://example.com/"), "already queued")
	assert.True(t, s.Enqueue("https://example.com/a"))

	url, ok := s.Pop()
	require.True(t, ok)
	s.MarkVisited(url)

	assert.False(t, s.Enqueue("https://example.com/"), "already visited")
	assert.False(t, s.Enqueue("https://example.com/a"), "still queued")
	assert.Equal(t, 1, s.Pending())
}

func TestCrawlState_PopOrder(t *testing.T) {
	s := NewCrawlState("a")
	s.Enqueue("b")
	s.Enqueue("c")

	var got []string
	for {
		url, ok := s.Pop()
		if !ok {
			break
		}
		got = append(got, url)
	}

	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, s.Pending())
}

func TestCrawlState_IsVisited(t *testing.T) {
	s := NewCrawlState("a")
	assert.False(t, s.IsVisited("a"))
	s.MarkVisited("a")
	assert.True(t, s.IsVisited("a"))
}
