// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
)

// Bar displays in-flight operations and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	spinner spinner.Model
	busy    []domain.Operation
	message string
	hints   []key.Binding
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

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: sp,
		hints:   km.ShortHelp(),
		width:   80,
	}
}

// Init starts the spinner.
func (s *Bar) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the spinner.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(tick)
		return s, cmd
	}
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the busy operations or the idle message.
func (s *Bar) renderLeft() string {
	if len(s.busy) > 0 {
		names := make([]string, 0, len(s.busy))
		for _, op := range s.busy {
			names = append(names, op.String())
		}
		return s.spinner.View() + " " + s.styles.Normal.Render(strings.Join(names, ", ")+"...")
	}
	if s.message != "" {
		return s.styles.Normal.Render(s.message)
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.hints))
	for _, b := range s.hints {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetBusy sets the operations currently in flight.
func (s *Bar) SetBusy(ops []domain.Operation) {
	s.busy = ops
}

// Busy returns the operations currently shown as in flight.
func (s *Bar) Busy() []domain.Operation {
	return s.busy
}

// SetMessage sets the idle message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the idle message.
func (s *Bar) Message() string {
	return s.message
}

// SetHints replaces the keybinding hints.
func (s *Bar) SetHints(hints []key.Binding) {
	s.hints = hints
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its idle state.
func (s *Bar) Clear() {
	s.busy = nil
	s.message = ""
	s.hints = s.keymap.ShortHelp()
}

// BusyOperations returns the given operations that busy reports as in flight.
func BusyOperations(busy driving.BusyState, ops ...domain.Operation) []domain.Operation {
	var active []domain.Operation
	for _, op := range ops {
		if busy.IsBusy(op) {
			active = append(active, op)
		}
	}
	return active
}
