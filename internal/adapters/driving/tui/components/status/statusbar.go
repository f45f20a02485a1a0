// Package status provides the chat status bar.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady    State = "ready"
	StateThinking State = "thinking"
	StateError    State = "error"
)

// Bar displays the index summary, the last answer tier and key hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	stats   domain.IndexStats
	tier    domain.Tier
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (b *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	// Width includes the style's padding, so the content gets what is left.
	inner := b.width - b.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateThinking:
		return b.styles.Muted.Render("Thinking...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	case StateReady:
	}

	parts := []string{b.indexSummary()}
	if b.tier != "" {
		parts = append(parts, "last answer: "+b.tier.String())
	}
	return b.styles.Muted.Render(strings.Join(parts, " · "))
}

func (b *Bar) indexSummary() string {
	if !b.stats.Ready {
		return "no index"
	}
	return fmt.Sprintf("%d chunks", b.stats.Chunks)
}

func (b *Bar) renderRight() string {
	bindings := b.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		hints = append(hints, hint(kb))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

func hint(kb key.Binding) string {
	h := kb.Help()
	return h.Key + ": " + h.Desc
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the error message shown in StateError.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetIndexStats records the loaded index summary.
func (b *Bar) SetIndexStats(stats domain.IndexStats) {
	b.stats = stats
}

// SetTier records which cascade tier produced the last answer.
func (b *Bar) SetTier(tier domain.Tier) {
	b.tier = tier
}

// Tier returns the last recorded tier.
func (b *Bar) Tier() domain.Tier {
	return b.tier
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}

// Clear resets the state, message and tier. Index stats are kept.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
	b.tier = ""
}
