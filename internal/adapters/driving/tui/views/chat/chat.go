// Package chat provides the question answering view for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
)

// View is the chat screen: one question, its answer and the ranked contexts.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	chat     driving.ChatCoordinator
	ctx      context.Context
	question textinput.Model
	status   *status.Bar
	width    int
	height   int
	ready    bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, chat driving.ChatCoordinator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	ti := textinput.New()
	ti.Placeholder = "Ask a question..."
	ti.CharLimit = 512
	ti.Width = 60

	bar := status.NewBar(s, km)
	bar.SetHints(km.ChatHelp())

	return &View{
		styles:   s,
		keymap:   km,
		chat:     chat,
		ctx:      context.Background(),
		question: ti,
		status:   bar,
		width:    80,
		height:   24,
	}
}

// SetContext sets the context passed to coordinator calls.
func (v *View) SetContext(ctx context.Context) {
	if ctx != nil {
		v.ctx = ctx
	}
}

// Init focuses the question input and starts the busy spinner.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.question.Focus(), v.status.Init())
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.status, cmd = v.status.Update(msg)
		return v, cmd

	case messages.AnswerReady:
		if msg.Err == nil {
			v.question.Reset()
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Back):
			v.question.Blur()
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case key.Matches(msg, v.keymap.Select):
			if v.chat.Busy().IsBusy(domain.OpAsk) {
				return v, nil
			}
			return v, v.ask(v.question.Value())
		}
		var cmd tea.Cmd
		v.question, cmd = v.question.Update(msg)
		return v, cmd
	}

	return v, nil
}

// ask returns a command sending the question to the coordinator.
func (v *View) ask(question string) tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		turn, err := v.chat.Ask(ctx, question)
		return messages.AnswerReady{Turn: turn, Err: err}
	}
}

// View renders the chat screen.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Chat"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputField.Render(v.question.View()))
	b.WriteString("\n\n")

	turn := v.chat.Turn()
	if turn.Question != "" {
		b.WriteString(v.styles.Subtitle.Render("Q: "))
		b.WriteString(v.styles.Normal.Render(turn.Question))
		b.WriteString("\n\n")
	}
	if turn.Answer != "" {
		wrap := lipgloss.NewStyle().Width(max(20, v.width-4))
		b.WriteString(wrap.Render(turn.Answer))
		b.WriteString("\n\n")
	}
	b.WriteString(v.renderContexts(turn))

	if v.chat.Busy().IsBusy(domain.OpAsk) {
		v.status.SetBusy([]domain.Operation{domain.OpAsk})
	} else {
		v.status.SetBusy(nil)
	}
	b.WriteString("\n")
	b.WriteString(v.status.View())

	return b.String()
}

func (v *View) renderContexts(turn domain.ChatTurn) string {
	if turn.Question == "" {
		return v.styles.Muted.Render("Answers cite the stored documents closest to the question.") + "\n"
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Contexts (%d)", len(turn.Contexts))))
	if avg, ok := v.chat.AverageScore(); ok {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  average score %.3f", avg)))
	}
	b.WriteString("\n")

	textWidth := max(20, v.width-28)
	for i, hit := range turn.Contexts {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("[%d] score=%.3f id=%d ", i+1, hit.Score, hit.ID)))
		b.WriteString(v.styles.Normal.Render(truncate(hit.Text, textWidth)))
		b.WriteString("\n")
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.question.Width = max(20, width-8)
	v.status.SetWidth(width)
}

// Question returns the pending question text.
func (v *View) Question() string {
	return v.question.Value()
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
