// Package menu is the start screen: it picks a workflow and shows what
// each one is doing.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
)

// Entry is one selectable row.
type Entry struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool

	// busy is nil for rows without a workflow behind them.
	busy    driving.BusyState
	summary func() string
}

// Busy reports whether the workflow behind the entry has a call in flight.
func (e Entry) Busy() bool {
	return e.busy != nil && e.busy.IsBusy()
}

// View is the start screen.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	docs    driving.DocumentCoordinator
	entries []Entry
	cursor  int
	width   int
	height  int
	ready   bool
}

// NewView creates the start screen over both workflows.
func NewView(s *styles.Styles, docs driving.DocumentCoordinator, chat driving.ChatCoordinator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		docs:   docs,
		entries: []Entry{
			{
				Label:   "Admin",
				Hint:    "store, page and delete documents",
				View:    messages.ViewAdmin,
				busy:    docs.Busy(),
				summary: func() string { return adminSummary(docs) },
			},
			{
				Label:   "Chat",
				Hint:    "ask questions against the collection",
				View:    messages.ViewChat,
				busy:    chat.Busy(),
				summary: func() string { return chatSummary(chat) },
			},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

func adminSummary(docs driving.DocumentCoordinator) string {
	cursor := docs.Cursor()
	n := len(docs.Page())
	if n == 0 {
		return fmt.Sprintf("page empty, limit %d", cursor.Limit)
	}
	return fmt.Sprintf("%d on page at offset %d", n, cursor.Offset)
}

func chatSummary(chat driving.ChatCoordinator) string {
	turn := chat.Turn()
	if turn.Question == "" {
		return "no question yet"
	}
	return fmt.Sprintf("last: %q", truncate(turn.Question, 32))
}

// Init has nothing to load; the summaries read coordinator state on render.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and opens the chosen screen.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			v.cursor = max(v.cursor-1, 0)
		case key.Matches(msg, v.keymap.Down):
			v.cursor = min(v.cursor+1, len(v.entries)-1)
		case key.Matches(msg, v.keymap.Select):
			entry := v.entries[v.cursor]
			if entry.Quit {
				return v, tea.Quit
			}
			return v, func() tea.Msg { return messages.ViewChanged{View: entry.View} }
		case key.Matches(msg, v.keymap.Quit):
			return v, tea.Quit
		}
	}
	return v, nil
}

// View renders the collection line and one row per entry.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("ragdesk"))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(v.collectionLine()))
	b.WriteString("\n\n")

	for i, entry := range v.entries {
		b.WriteString(v.renderEntry(entry, i == v.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] move  [enter] open  [?] help  [q] quit"))
	return b.String()
}

func (v *View) collectionLine() string {
	stats := v.docs.Stats()
	if stats == nil {
		return "collection not loaded"
	}
	return fmt.Sprintf("collection %s · %d documents", stats.Collection, stats.NumEntities)
}

func (v *View) renderEntry(entry Entry, selected bool) string {
	label := v.styles.Normal.Render(entry.Label)
	prefix := "  "
	if selected {
		label = v.styles.Selected.Render(" " + entry.Label + " ")
		prefix = "> "
	}

	line := prefix + label
	switch {
	case entry.Busy():
		line += " " + v.styles.Badge.Render("busy")
	case entry.summary != nil:
		line += "  " + v.styles.Muted.Render(entry.summary())
	}
	if selected && entry.Hint != "" {
		line += "\n    " + v.styles.Subtitle.Render(entry.Hint)
	}
	return line
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the index of the highlighted entry.
func (v *View) Selected() int {
	return v.cursor
}

// Entries returns the rows in display order.
func (v *View) Entries() []Entry {
	return append([]Entry(nil), v.entries...)
}

func truncate(s string, n int) string {
	runes := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n-1]) + "…"
}
