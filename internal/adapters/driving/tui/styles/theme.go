// Package styles holds the lipgloss palette and the styles shared by the
// ragdesk screens.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette names the colours the screens are drawn with.
type Palette struct {
	Accent  lipgloss.Color // titles, focused borders, selection
	Info    lipgloss.Color // enabled controls, hints
	Text    lipgloss.Color
	Faint   lipgloss.Color // secondary text and disabled controls
	Frame   lipgloss.Color // unfocused borders
	Bar     lipgloss.Color // status bar background
	OK      lipgloss.Color
	Failure lipgloss.Color
	Caution lipgloss.Color // destructive dialogs and busy badges
}

// DefaultPalette returns the palette used unless another is given.
func DefaultPalette() Palette {
	return Palette{
		Accent:  lipgloss.Color("#7C3AED"),
		Info:    lipgloss.Color("#06B6D4"),
		Text:    lipgloss.Color("#CDD6F4"),
		Faint:   lipgloss.Color("#6C7086"),
		Frame:   lipgloss.Color("#45475A"),
		Bar:     lipgloss.Color("#181825"),
		OK:      lipgloss.Color("#A6E3A1"),
		Failure: lipgloss.Color("#F38BA8"),
		Caution: lipgloss.Color("#F9E2AF"),
	}
}

// Styles are the rendered building blocks of every screen.
type Styles struct {
	palette Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style

	// InputField frames an input without focus; FocusedField frames the one with it.
	InputField   lipgloss.Style
	FocusedField lipgloss.Style
	StatusBar    lipgloss.Style

	Control  lipgloss.Style
	Disabled lipgloss.Style
	Badge    lipgloss.Style

	ToastOK    lipgloss.Style
	ToastError lipgloss.Style
	Dialog     lipgloss.Style
}

// New builds the styles for a palette.
func New(p Palette) *Styles {
	field := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)
	toast := field.Bold(true)

	return &Styles{
		palette: p,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().Italic(true).Foreground(p.Info),
		Normal:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Faint),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Accent),
		Help:     lipgloss.NewStyle().Foreground(p.Faint),

		InputField:   field.BorderForeground(p.Frame),
		FocusedField: field.BorderForeground(p.Accent),
		StatusBar:    lipgloss.NewStyle().Foreground(p.Faint).Background(p.Bar).Padding(0, 1),

		Control:  lipgloss.NewStyle().Foreground(p.Info),
		Disabled: lipgloss.NewStyle().Foreground(p.Frame).Strikethrough(true),
		Badge:    lipgloss.NewStyle().Bold(true).Foreground(p.Bar).Background(p.Caution).Padding(0, 1),

		ToastOK:    toast.BorderForeground(p.OK).Foreground(p.OK),
		ToastError: toast.BorderForeground(p.Failure).Foreground(p.Failure),
		Dialog: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(p.Caution).
			Padding(0, 2),
	}
}

// DefaultStyles returns the styles for DefaultPalette.
func DefaultStyles() *Styles {
	return New(DefaultPalette())
}

// Palette returns the colours the styles were built from.
func (s *Styles) Palette() Palette {
	return s.palette
}

// RenderControl renders an action hint, struck through when disabled.
func (s *Styles) RenderControl(label string, enabled bool) string {
	if enabled {
		return s.Control.Render(label)
	}
	return s.Disabled.Render(label)
}
