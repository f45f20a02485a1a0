package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "ask")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_PrintsAnswerAndSources(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute(t, "ask", "what are the fees?")

	require.NoError(t, err)
	assert.Equal(t, []string{"what are the fees?"}, ts.assistant.asked)
	assert.Contains(t, out, "Delivery trades have zero brokerage.")
	assert.Contains(t, out, "Sources:")
	assert.Contains(t, out, "[1] fees.pdf (relevance 0.75)")
	assert.Empty(t, ts.assistant.built, "a saved index is not rebuilt")
}

func TestAskCmd_NoSources(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.assistant.answer = &domain.Answer{Text: "I don't know.", Tier: domain.TierNoContext}

	out, _, err := execute(t, "ask", "weather tomorrow")

	require.NoError(t, err)
	assert.Equal(t, "I don't know.\n", out)
}

func TestAskCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute(t, "ask", "--json", "fees")
	require.NoError(t, err)

	var got answerJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "seq2seq", got.Tier)
	require.Len(t, got.Sources, 1)
	assert.Equal(t, "fees.pdf", got.Sources[0].Source)
	assert.InDelta(t, 0.75, got.Sources[0].Relevance, 1e-9)
}

func TestAskCmd_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.assistant.askErr = domain.ErrIndexNotBuilt

	_, _, err := execute(t, "ask", "fees")

	assert.ErrorIs(t, err, domain.ErrIndexNotBuilt)
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{name: "short", text: "open an account", n: 20, want: "open an account"},
		{name: "whitespace collapsed", text: "open\n\n  an\taccount", n: 20, want: "open an account"},
		{name: "truncated", text: "open an account", n: 4, want: "open..."},
		{name: "multibyte", text: "₹₹₹₹₹", n: 2, want: "₹₹..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, snippet(tc.text, tc.n))
		})
	}
}

func TestPrintAnswer(t *testing.T) {
	var b strings.Builder
	printAnswer(&b, &domain.Answer{
		Text: "Use the app.",
		Sources: []domain.AnswerSource{
			{Text: "Funds can be added in the app.", Score: 0.5, Source: "https://example.com/funds"},
			{Text: "UPI is supported.", Score: 1.5, Source: "upi.pdf"},
		},
	})

	want := "Use the app.\n\nSources:\n" +
		"  [1] https://example.com/funds (relevance 0.50)\n" +
		"      Funds can be added in the app.\n" +
		"  [2] upi.pdf (relevance -0.50)\n" +
		"      UPI is supported.\n"
	assert.Equal(t, want, b.String())
}
