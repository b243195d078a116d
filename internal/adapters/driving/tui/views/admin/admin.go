// Package admin provides the document management view for the TUI.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
	"github.com/custodia-labs/ragdesk/internal/core/services"
)

// Focus identifies the widget receiving key presses.
type Focus int

const (
	FocusList Focus = iota
	FocusUpsert
	FocusFilter
	FocusLimit
)

// Controls reports which actions can run right now.
type Controls struct {
	Prev      bool
	Next      bool
	Apply     bool
	Refresh   bool
	Upsert    bool
	Delete    bool
	DeleteAll bool
}

// View is the document management screen.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	docs   driving.DocumentCoordinator
	ctx    context.Context

	upsert textarea.Model
	filter textinput.Model
	limit  textinput.Model
	phrase textinput.Model
	status *status.Bar

	focus     Focus
	dialog    dialog
	pendingID int64
	selected  int
	width     int
	height    int
	ready     bool
}

// NewView creates a new admin view.
func NewView(s *styles.Styles, docs driving.DocumentCoordinator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "One document per line..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(4)
	ta.SetWidth(60)
	ta.Blur()

	filter := textinput.New()
	filter.Prompt = ""
	filter.Placeholder = "filter this page"
	filter.CharLimit = 128
	filter.Width = 24

	limit := textinput.New()
	limit.Prompt = ""
	limit.CharLimit = 3
	limit.Width = 4
	limit.SetValue(strconv.Itoa(docs.Cursor().Limit))

	phrase := textinput.New()
	phrase.Placeholder = domain.DeleteAllPhrase
	phrase.CharLimit = 32
	phrase.Width = 16

	bar := status.NewBar(s, km)
	bar.SetHints(km.AdminHelp())

	return &View{
		styles: s,
		keymap: km,
		docs:   docs,
		ctx:    context.Background(),
		upsert: ta,
		filter: filter,
		limit:  limit,
		phrase: phrase,
		status: bar,
		width:  80,
		height: 24,
	}
}

// SetContext sets the context passed to coordinator calls.
func (v *View) SetContext(ctx context.Context) {
	if ctx != nil {
		v.ctx = ctx
	}
}

// Init loads stats and the first page, and starts the busy spinner.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.Load(), v.status.Init())
}

// Load returns a command that fetches stats and then the first page.
func (v *View) Load() tea.Cmd {
	v.selected = 0
	return v.run(domain.OpList, func(ctx context.Context) error {
		statsErr := v.docs.RefreshStats(ctx)
		listErr := v.docs.List(ctx, 0, v.docs.Cursor().Limit)
		return errors.Join(statsErr, listErr)
	})
}

// run wraps a coordinator call in a command reporting its outcome.
func (v *View) run(op domain.Operation, fn func(ctx context.Context) error) tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		return messages.OperationDone{Op: op, Err: fn(ctx)}
	}
}

// Controls reports which actions are enabled given the busy state and cursor.
func (v *View) Controls() Controls {
	busy := v.docs.Busy()
	paging := !busy.IsBusy(domain.OpList, domain.OpDelete)
	idle := !busy.IsBusy()
	return Controls{
		Prev:      paging && !v.docs.Cursor().AtStart(),
		Next:      paging,
		Apply:     paging,
		Refresh:   idle,
		Upsert:    !busy.IsBusy(domain.OpUpsert, domain.OpDelete),
		Delete:    !busy.IsBusy(domain.OpDelete),
		DeleteAll: idle,
	}
}

// Update handles messages for the admin view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.status, cmd = v.status.Update(msg)
		return v, cmd

	case messages.OperationDone:
		if msg.Op == domain.OpUpsert && msg.Err == nil {
			v.upsert.SetValue(v.docs.Draft())
		}
		if msg.Op == domain.OpList {
			v.limit.SetValue(strconv.Itoa(v.docs.Cursor().Limit))
		}
		v.clampSelection()
		return v, nil

	case tea.KeyMsg:
		if v.dialog != dialogNone {
			return v.handleDialogKey(msg)
		}
		switch v.focus {
		case FocusUpsert:
			return v.handleUpsertKey(msg)
		case FocusFilter:
			return v.handleFilterKey(msg)
		case FocusLimit:
			return v.handleLimitKey(msg)
		case FocusList:
			return v.handleListKey(msg)
		}
	}

	return v, nil
}

// handleListKey handles key presses while the document list has focus.
func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	controls := v.Controls()
	docs := v.docs.Filtered()

	switch {
	case key.Matches(msg, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case key.Matches(msg, v.keymap.Down):
		if v.selected < len(docs)-1 {
			v.selected++
		}
	case key.Matches(msg, v.keymap.NextField):
		return v, v.setFocus(FocusUpsert)
	case key.Matches(msg, v.keymap.NextPage):
		if controls.Next {
			v.selected = 0
			return v, v.run(domain.OpList, v.docs.Next)
		}
	case key.Matches(msg, v.keymap.PrevPage):
		if controls.Prev {
			v.selected = 0
			return v, v.run(domain.OpList, v.docs.Prev)
		}
	case key.Matches(msg, v.keymap.Refresh):
		if controls.Refresh {
			return v, v.run(domain.OpList, v.docs.Refresh)
		}
	case key.Matches(msg, v.keymap.Delete):
		if controls.Delete && v.selected < len(docs) {
			v.pendingID = docs[v.selected].ID
			v.dialog = dialogDeleteOne
		}
	case key.Matches(msg, v.keymap.DeleteAll):
		if controls.DeleteAll {
			v.dialog = dialogDeleteAllIntent
		}
	case key.Matches(msg, v.keymap.CopyID):
		if v.selected < len(docs) {
			v.docs.Copy(docs[v.selected].IDString())
		}
	case key.Matches(msg, v.keymap.CopyText):
		if v.selected < len(docs) {
			v.docs.Copy(docs[v.selected].Text)
		}
	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// handleUpsertKey handles key presses while the upsert box has focus.
func (v *View) handleUpsertKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back):
		return v, v.setFocus(FocusList)
	case key.Matches(msg, v.keymap.NextField):
		return v, v.setFocus(FocusFilter)
	case key.Matches(msg, v.keymap.Submit):
		if !v.Controls().Upsert {
			return v, nil
		}
		raw := v.upsert.Value()
		return v, v.run(domain.OpUpsert, func(ctx context.Context) error {
			_, err := v.docs.Upsert(ctx, raw)
			return err
		})
	}

	var cmd tea.Cmd
	v.upsert, cmd = v.upsert.Update(msg)
	v.docs.SetDraft(v.upsert.Value())
	return v, cmd
}

// handleFilterKey handles key presses while the filter input has focus.
func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back), key.Matches(msg, v.keymap.Select):
		return v, v.setFocus(FocusList)
	case key.Matches(msg, v.keymap.NextField):
		return v, v.setFocus(FocusLimit)
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.docs.SetFilter(v.filter.Value())
	v.selected = 0
	return v, cmd
}

// handleLimitKey handles key presses while the limit input has focus.
func (v *View) handleLimitKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back):
		v.limit.SetValue(strconv.Itoa(v.docs.Cursor().Limit))
		return v, v.setFocus(FocusList)
	case key.Matches(msg, v.keymap.NextField):
		return v, v.setFocus(FocusList)
	case key.Matches(msg, v.keymap.Select):
		if !v.Controls().Apply {
			return v, nil
		}
		// Unparseable input becomes 0, which the coordinator rejects with a toast.
		limit, _ := strconv.Atoi(strings.TrimSpace(v.limit.Value()))
		v.selected = 0
		v.setFocus(FocusList)
		return v, v.run(domain.OpList, func(ctx context.Context) error {
			return v.docs.ApplyPaging(ctx, limit)
		})
	}

	var cmd tea.Cmd
	v.limit, cmd = v.limit.Update(msg)
	return v, cmd
}

// handleDialogKey handles key presses while a confirmation dialog is open.
func (v *View) handleDialogKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.dialog {
	case dialogDeleteOne:
		switch {
		case key.Matches(msg, v.keymap.Yes):
			v.dialog = dialogNone
			id := v.pendingID
			return v, v.run(domain.OpDelete, func(ctx context.Context) error {
				return v.docs.DeleteOne(ctx, id, answered{accept: true})
			})
		case key.Matches(msg, v.keymap.No):
			v.dialog = dialogNone
		}

	case dialogDeleteAllIntent:
		switch {
		case key.Matches(msg, v.keymap.Yes):
			v.dialog = dialogDeleteAllPhrase
			v.phrase.Reset()
			return v, v.phrase.Focus()
		case key.Matches(msg, v.keymap.No):
			v.dialog = dialogNone
		}

	case dialogDeleteAllPhrase:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			typed := v.phrase.Value()
			if msg.Type == tea.KeyEsc {
				typed = ""
			}
			v.dialog = dialogNone
			v.phrase.Blur()
			return v, v.run(domain.OpDelete, func(ctx context.Context) error {
				return v.docs.DeleteAll(ctx, answered{accept: true, phrase: typed})
			})
		}
		var cmd tea.Cmd
		v.phrase, cmd = v.phrase.Update(msg)
		return v, cmd

	case dialogNone:
	}

	return v, nil
}

// setFocus moves focus to the given widget.
func (v *View) setFocus(f Focus) tea.Cmd {
	v.focus = f
	v.upsert.Blur()
	v.filter.Blur()
	v.limit.Blur()

	switch f {
	case FocusUpsert:
		return v.upsert.Focus()
	case FocusFilter:
		return v.filter.Focus()
	case FocusLimit:
		return v.limit.Focus()
	case FocusList:
	}
	return nil
}

// clampSelection keeps the selection inside the filtered page.
func (v *View) clampSelection() {
	n := len(v.docs.Filtered())
	if v.selected >= n {
		v.selected = max(0, n-1)
	}
}

// View renders the admin screen.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Documents"))
	b.WriteString("  ")
	b.WriteString(v.renderStats())
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Upsert"))
	b.WriteString(v.styles.Muted.Render("  one document per line, ctrl+s to send"))
	b.WriteString("\n")
	b.WriteString(v.fieldStyle(FocusUpsert).Render(v.upsert.View()))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d line(s) to upsert", services.CountLines(v.upsert.Value()))))
	b.WriteString("\n\n")

	//nolint:misspell // lipgloss.Center is the correct constant from the library
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		v.styles.Normal.Render("Filter "), v.fieldStyle(FocusFilter).Render(v.filter.View()),
		v.styles.Normal.Render("  Limit "), v.fieldStyle(FocusLimit).Render(v.limit.View()),
	))
	b.WriteString("\n\n")

	b.WriteString(v.renderList())
	b.WriteString("\n")
	b.WriteString(v.renderControls())
	b.WriteString("\n")

	if d := v.renderDialog(); d != "" {
		b.WriteString("\n")
		b.WriteString(d)
		b.WriteString("\n")
	}

	v.status.SetBusy(status.BusyOperations(v.docs.Busy(), domain.DocumentOperations()...))
	v.status.SetMessage(v.pageSummary())
	b.WriteString("\n")
	b.WriteString(v.status.View())

	return b.String()
}

func (v *View) renderStats() string {
	stats := v.docs.Stats()
	if stats == nil {
		return v.styles.Muted.Render("stats not loaded")
	}
	return v.styles.Muted.Render(fmt.Sprintf("collection %s · %d documents", stats.Collection, stats.NumEntities))
}

func (v *View) pageSummary() string {
	cursor := v.docs.Cursor()
	return fmt.Sprintf("offset=%d limit=%d · showing %d of %d",
		cursor.Offset, cursor.Limit, len(v.docs.Filtered()), len(v.docs.Page()))
}

func (v *View) renderList() string {
	docs := v.docs.Filtered()
	if len(docs) == 0 {
		if len(v.docs.Page()) > 0 {
			return v.styles.Muted.Render("No documents on this page match the filter.") + "\n"
		}
		return v.styles.Muted.Render("No documents on this page.") + "\n"
	}

	textWidth := max(20, v.width-14)
	var b strings.Builder
	for i, doc := range docs {
		line := fmt.Sprintf("%-8s %s", doc.IDString(), truncate(doc.Text, textWidth))
		if i == v.selected && v.focus == FocusList {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderControls() string {
	c := v.Controls()
	parts := []string{
		v.styles.RenderControl("[p] prev", c.Prev),
		v.styles.RenderControl("[n] next", c.Next),
		v.styles.RenderControl("[r] refresh", c.Refresh),
		v.styles.RenderControl("[enter] apply limit", c.Apply),
		v.styles.RenderControl("[ctrl+s] upsert", c.Upsert),
		v.styles.RenderControl("[d] delete", c.Delete),
		v.styles.RenderControl("[D] delete all", c.DeleteAll),
		v.styles.Control.Render("[y/c] copy id/text"),
	}
	return strings.Join(parts, "  ")
}

func (v *View) renderDialog() string {
	switch v.dialog {
	case dialogDeleteOne:
		return v.styles.Dialog.Render(fmt.Sprintf("Delete document id=%d? [y/N]", v.pendingID))
	case dialogDeleteAllIntent:
		return v.styles.Dialog.Render("Deleting every document cannot be undone. Continue? [y/N]")
	case dialogDeleteAllPhrase:
		return v.styles.Dialog.Render(fmt.Sprintf("Type %q to confirm, enter to submit\n%s",
			domain.DeleteAllPhrase, v.phrase.View()))
	case dialogNone:
	}
	return ""
}

func (v *View) fieldStyle(f Focus) lipgloss.Style {
	if v.focus == f {
		return v.styles.FocusedField
	}
	return v.styles.InputField
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.upsert.SetWidth(max(20, width-6))
	v.status.SetWidth(width)
}

// Focus returns the widget holding focus.
func (v *View) Focus() Focus {
	return v.focus
}

// Selected returns the selected row of the filtered page.
func (v *View) Selected() int {
	return v.selected
}

// DialogOpen reports whether a confirmation dialog is showing.
func (v *View) DialogOpen() bool {
	return v.dialog != dialogNone
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
