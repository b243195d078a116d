package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPalette_StatusColoursDiffer(t *testing.T) {
	p := DefaultPalette()

	assert.NotEqual(t, p.OK, p.Failure)
	assert.NotEqual(t, p.Caution, p.Failure)
	assert.NotEqual(t, p.Accent, p.Info)
}

func TestNew_KeepsPalette(t *testing.T) {
	p := DefaultPalette()
	p.Accent = lipgloss.Color("#FFFFFF")

	s := New(p)

	require.NotNil(t, s)
	assert.Equal(t, p, s.Palette())
	assert.Equal(t, lipgloss.Color("#FFFFFF"), s.FocusedField.GetBorderTopForeground())
}

func TestDefaultStyles_FieldsFollowFocus(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, s.Palette().Frame, s.InputField.GetBorderTopForeground())
	assert.Equal(t, s.Palette().Accent, s.FocusedField.GetBorderTopForeground())
}

func TestDefaultStyles_ToastsFollowKind(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, s.Palette().OK, s.ToastOK.GetForeground())
	assert.Equal(t, s.Palette().Failure, s.ToastError.GetForeground())
	assert.True(t, s.ToastOK.GetBold())
}

func TestStyles_RenderControl(t *testing.T) {
	s := DefaultStyles()

	enabled := s.RenderControl("[n] next", true)
	disabled := s.RenderControl("[n] next", false)

	assert.Contains(t, enabled, "next")
	assert.Contains(t, disabled, "next")
	assert.True(t, s.Disabled.GetStrikethrough())
	assert.False(t, s.Control.GetStrikethrough())
}

func TestStyles_BadgeRendersLabel(t *testing.T) {
	assert.Contains(t, DefaultStyles().Badge.Render("busy"), "busy")
}
