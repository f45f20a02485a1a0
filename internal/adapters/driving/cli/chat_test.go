package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

func TestChatCmd_LineMode(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	rootCmd.SetIn(strings.NewReader("what are the fees?\n\n  \nQUIT\nnever asked\n"))

	out, _, err := execute(t, "chat")

	require.NoError(t, err)
	assert.Equal(t, []string{"what are the fees?"}, ts.assistant.asked)
	assert.Contains(t, out, "> Delivery trades have zero brokerage.")
	assert.Contains(t, out, "[1] fees.pdf (relevance 0.75)")
}

func TestChatCmd_EndsAtEOF(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	rootCmd.SetIn(strings.NewReader("first\nsecond"))

	_, _, err := execute(t, "chat", "--plain")

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, ts.assistant.asked)
}

func TestChatCmd_ErrorsDoNotEndTheSession(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.assistant.askErr = domain.ErrEmbeddingUnavailable
	rootCmd.SetIn(strings.NewReader("one\ntwo\nexit\n"))

	out, _, err := execute(t, "chat")

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, ts.assistant.asked)
	assert.Equal(t, 2, strings.Count(out, "Error: embedding service unavailable"))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(strings.NewReader("")))
}
