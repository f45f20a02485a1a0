package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPorts_Validate(t *testing.T) {
	var nilPorts *Ports

	assert.ErrorIs(t, nilPorts.Validate(), ErrMissingAssistant)
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingAssistant)
	assert.NoError(t, (&Ports{Assistant: &fakeAssistant{}}).Validate())
}

func TestErrMissingAssistant_Message(t *testing.T) {
	assert.Contains(t, ErrMissingAssistant.Error(), "assistant service")
}
