package chat

import "errors"

// ErrNoAssistant is returned when the view has no assistant to ask.
var ErrNoAssistant = errors.New("assistant not available")
