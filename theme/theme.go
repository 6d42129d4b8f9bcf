package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme turns a palette into terminal styles. Widgets ask for a role
// rather than a color, so swapping the palette restyles everything at
// once.
type Theme struct {
	Palette *Palette
	Symbols Symbols
}

// Symbols are the glyphs the preview draws with.
type Symbols struct {
	Solid rune // ■ filled color swatch
	Empty rune // □ nothing to show

	StepDot      rune // · step position in the strip
	StepPlayhead rune // ▶ step the player is on
	StepDone     rune // ● finished single-shot
}

// Roles are positions along the palette ramp, dark end for backgrounds
// and the loudest color the ramp has for success.
const (
	RoleBG      = 0.0
	RoleMuted   = 0.2
	RoleFG      = 0.4
	RoleAccent  = 0.5
	RoleCursor  = 0.6
	RoleActive  = 0.7
	RoleWarning = 0.8
	RoleSuccess = 1.0
)

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Solid:        '■',
			Empty:        '□',
			StepDot:      '·',
			StepPlayhead: '▶',
			StepDone:     '●',
		},
	}
}

func (t *Theme) BG() lipgloss.Color      { return t.at(RoleBG) }
func (t *Theme) FG() lipgloss.Color      { return t.at(RoleFG) }
func (t *Theme) Muted() lipgloss.Color   { return t.at(RoleMuted) }
func (t *Theme) Accent() lipgloss.Color  { return t.at(RoleAccent) }
func (t *Theme) Cursor() lipgloss.Color  { return t.at(RoleCursor) }
func (t *Theme) Active() lipgloss.Color  { return t.at(RoleActive) }
func (t *Theme) Warning() lipgloss.Color { return t.at(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.at(RoleSuccess) }

// Color resolves any ramp position to a lipgloss color.
func (t *Theme) Color(norm float64) lipgloss.Color { return t.at(norm) }

// RGB resolves a ramp position to raw channel values for LED output.
func (t *Theme) RGB(norm float64) RGB { return t.Palette.Lookup(norm) }

func (t *Theme) at(norm float64) lipgloss.Color {
	c := t.Palette.Lookup(norm)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
