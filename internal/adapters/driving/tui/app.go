package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/components/toast"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/views/admin"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/views/menu"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView  *menu.View
	adminView *admin.View
	chatView  *chat.View

	// toast renders the notification shared by both workflows.
	toast *toast.Box

	// currentView tracks which view is active.
	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s, ports.Documents, ports.Chat),
		adminView:   admin.NewView(s, ports.Documents),
		chatView:    chat.NewView(s, ports.Chat),
		toast:       toast.NewBox(s, ports.Documents.Toasts()),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx == nil {
		return a
	}
	a.ctx = ctx
	a.adminView.SetContext(ctx)
	a.chatView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ragdesk"),
	)
}

// Update implements tea.Model.
// Every coordinator call may post a toast, so each update also schedules
// a redraw for when the live toast expires.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, tea.Batch(cmd, a.toast.Sync())
}

//nolint:gocyclo // central message handler
func (a *App) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			if msg.String() == "?" {
				a.currentView = messages.ViewHelp
				return nil
			}
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewAdmin:
			a.adminView, cmd = a.adminView.Update(msg)
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "?" {
				a.currentView = messages.ViewMenu
			}
		}
		return cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewAdmin:
			return a.adminView.Init()
		case messages.ViewChat:
			return a.chatView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return nil

	case messages.OperationDone:
		a.adminView, cmd = a.adminView.Update(msg)
		return cmd

	case messages.AnswerReady:
		a.chatView, cmd = a.chatView.Update(msg)
		return cmd

	case messages.ToastExpired:
		// Nothing to update; the redraw drops the expired toast.
		return nil

	case spinner.TickMsg:
		switch a.currentView {
		case messages.ViewAdmin:
			a.adminView, cmd = a.adminView.Update(msg)
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
		}
		return cmd

	case messages.Quit:
		return tea.Quit
	}

	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewAdmin:
		body = a.adminView.View()
	case messages.ViewChat:
		body = a.chatView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	case messages.ViewMenu:
		body = a.menuView.View()
	default:
		body = a.menuView.View()
	}

	if t := a.toast.View(); t != "" {
		body += "\n" + t
	}
	return body
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  ?           This help
  q           Quit

Admin:
  tab         Cycle upsert / filter / limit / list
  ctrl+s      Upsert one document per line
  n / p       Next / previous page
  enter       Apply limit (in the limit field)
  r           Refresh stats and page
  d           Delete selected document
  D           Delete every document (type DELETE)
  y / c       Copy id / text

Chat:
  enter       Ask the question
  esc         Back to Menu

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.adminView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
}
