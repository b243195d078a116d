// Package toast renders the live notification and schedules its expiry redraw.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
)

// Box renders the toast held by a ToastSource.
type Box struct {
	styles *styles.Styles
	source driving.ToastSource

	// scheduled is the id of the last toast an expiry redraw was scheduled for.
	scheduled string
}

// NewBox creates a toast box reading from source.
func NewBox(s *styles.Styles, source driving.ToastSource) *Box {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Box{styles: s, source: source}
}

// View renders the live toast, or an empty string when there is none.
func (b *Box) View() string {
	if b.source == nil {
		return ""
	}
	t, ok := b.source.Current()
	if !ok {
		return ""
	}
	if t.IsError() {
		return b.styles.ToastError.Render("✗ " + t.Message)
	}
	return b.styles.ToastOK.Render("✓ " + t.Message)
}

// Sync returns a command that fires when a newly posted toast expires,
// so the screen is redrawn without it. It returns nil when the live toast
// already has a scheduled redraw.
func (b *Box) Sync() tea.Cmd {
	if b.source == nil {
		return nil
	}
	t, ok := b.source.Current()
	if !ok || t.ID == b.scheduled {
		return nil
	}
	b.scheduled = t.ID
	return Expire(t)
}

// Expire returns a command that reports t's expiry.
func Expire(t domain.Toast) tea.Cmd {
	d := time.Until(t.ExpiresAt)
	if d < 0 {
		d = 0
	}
	// A small margin so the queue's own timer has cleared the slot.
	return tea.Tick(d+10*time.Millisecond, func(time.Time) tea.Msg {
		return messages.ToastExpired{ID: t.ID}
	})
}
