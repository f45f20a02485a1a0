// Package chat provides the conversation view: a scrolling transcript of
// questions and answers above a question prompt.
package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driving"
)

// chromeHeight is the space taken by the header, prompt and status bar.
const chromeHeight = 7

// Turn is one question and its answer.
type Turn struct {
	Question string
	Answer   *domain.Answer
	Err      error
	Pending  bool
}

// View is the chat view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	sources   *list.SourceList
	statusbar *status.Bar
	viewport  viewport.Model

	assistant driving.AssistantService
	ctx       context.Context

	turns       []Turn
	showSources bool
	busy        bool

	width  int
	height int
	ready  bool
}

// NewView creates a chat view over assistant.
func NewView(s *styles.Styles, km *keymap.KeyMap, assistant driving.AssistantService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQuestionInput(s),
		sources:   list.NewSourceList(s),
		statusbar: status.NewBar(s, km),
		viewport:  viewport.New(80, 24-chromeHeight),
		assistant: assistant,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	if assistant != nil {
		v.statusbar.SetIndexStats(assistant.Stats())
	}
	v.refresh()
	return v
}

// WithContext sets the context questions are asked under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.AnswerReceived:
		v.handleAnswer(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }

	case keymap.Matches(k, v.keymap.Send):
		if v.busy {
			return v, nil
		}
		question, ok := v.input.Submit()
		if !ok {
			return v, nil
		}
		v.turns = append(v.turns, Turn{Question: question, Pending: true})
		v.busy = true
		v.statusbar.SetState(status.StateThinking)
		v.refresh()
		return v, v.ask(question)

	case keymap.Matches(k, v.keymap.Sources):
		v.showSources = !v.showSources
		v.refresh()
		return v, nil

	case keymap.Matches(k, v.keymap.Clear):
		if !v.busy {
			v.turns = nil
			v.statusbar.Clear()
			v.refresh()
		}
		return v, nil

	case keymap.Matches(k, v.keymap.ScrollUp), keymap.Matches(k, v.keymap.ScrollDown):
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// ask runs the question off the UI goroutine.
func (v *View) ask(question string) tea.Cmd {
	assistant, ctx := v.assistant, v.ctx
	return func() tea.Msg {
		if assistant == nil {
			return messages.AnswerReceived{Question: question, Err: ErrNoAssistant}
		}
		answer, err := assistant.Ask(ctx, question)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

func (v *View) handleAnswer(msg messages.AnswerReceived) {
	for i := len(v.turns) - 1; i >= 0; i-- {
		if v.turns[i].Pending && v.turns[i].Question == msg.Question {
			v.turns[i] = Turn{Question: msg.Question, Answer: msg.Answer, Err: msg.Err}
			break
		}
	}
	v.busy = false

	switch {
	case msg.Err != nil:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
	case msg.Answer != nil:
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetTier(msg.Answer.Tier)
	}
	if v.assistant != nil {
		v.statusbar.SetIndexStats(v.assistant.Stats())
	}
	v.refresh()
}

// refresh re-renders the transcript and keeps the newest turn in view.
func (v *View) refresh() {
	v.viewport.SetContent(v.transcript())
	v.viewport.GotoBottom()
}

func (v *View) transcript() string {
	if len(v.turns) == 0 {
		return v.styles.Muted.Render("Ask a question about insurance policies, trading, account opening or customer support.")
	}

	wrap := lipgloss.NewStyle().Width(v.width)
	blocks := make([]string, 0, len(v.turns))
	for _, t := range v.turns {
		lines := []string{v.styles.Question.Render("You: " + t.Question)}
		switch {
		case t.Pending:
			lines = append(lines, v.styles.Muted.Render("Assistant is thinking..."))
		case t.Err != nil:
			lines = append(lines, v.styles.Error.Render("Error: "+t.Err.Error()))
		case t.Answer != nil:
			lines = append(lines, wrap.Render(v.styles.ForTier(t.Answer.Tier).Render("Assistant: "+t.Answer.Text)))
			if v.showSources {
				if src := v.sources.Render(t.Answer.Sources); src != "" {
					lines = append(lines, src)
				}
			}
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Support Assistant"),
		"",
		v.viewport.View(),
		v.input.View(),
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.sources.SetWidth(width)
	v.statusbar.SetWidth(width)

	v.viewport.Width = width
	v.viewport.Height = height - chromeHeight
	if v.viewport.Height < 3 {
		v.viewport.Height = 3
	}
	v.refresh()
}

// Turns returns the conversation so far.
func (v *View) Turns() []Turn {
	return v.turns
}

// Busy reports whether a question is waiting for its answer.
func (v *View) Busy() bool {
	return v.busy
}

// ShowSources reports whether answer sources are displayed.
func (v *View) ShowSources() bool {
	return v.showSources
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
