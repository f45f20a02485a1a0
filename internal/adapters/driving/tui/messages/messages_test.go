package messages

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

func TestMessagesAreTeaMessages(t *testing.T) {
	msgs := []tea.Msg{
		QuestionSubmitted{Question: "how do I open an account?"},
		AnswerReceived{Question: "q", Answer: &domain.Answer{Text: "a", Tier: domain.TierKeyword}},
		ErrorOccurred{Err: errors.New("boom")},
		Quit{},
	}

	for _, m := range msgs {
		assert.NotNil(t, m)
	}
}

func TestAnswerReceived_Error(t *testing.T) {
	msg := AnswerReceived{Question: "fees", Err: domain.ErrIndexNotBuilt}

	assert.Nil(t, msg.Answer)
	assert.ErrorIs(t, msg.Err, domain.ErrIndexNotBuilt)
}
