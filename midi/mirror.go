package midi

import (
	"sync"

	"rgbseq/rgb"
)

// MirrorSize is the pad grid edge. Color maps larger than this are
// cropped to their top-left window.
const MirrorSize = 8

// GridMirror paints preview frames onto a pad controller. It diffs each
// frame against the last painted state so steady cells send nothing, and
// keeps a transport LED on the control row in sync with play state.
type GridMirror struct {
	mu        sync.Mutex
	ctrl      Controller
	last      [MirrorSize][MirrorSize][3]uint8
	primed    bool
	playLit   bool
	playKnown bool
}

// NewGridMirror wraps a controller. The pads stay dark until the first
// Show.
func NewGridMirror(ctrl Controller) *GridMirror {
	return &GridMirror{ctrl: ctrl}
}

// Show paints one frame. Device row 0 is the bottom of the pad surface,
// so grid row 0 lands on the top pad row; cells past the grid edge read
// black.
func (m *GridMirror) Show(grid rgb.Map, playing bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var updates []LEDUpdate
	for row := 0; row < MirrorSize; row++ {
		for col := 0; col < MirrorSize; col++ {
			c := cellAt(grid, col, MirrorSize-1-row)
			led := [3]uint8{c.R, c.G, c.B}
			if m.primed && led == m.last[row][col] {
				continue
			}
			m.last[row][col] = led
			updates = append(updates, LEDUpdate{Row: row, Col: col, Color: led, Channel: ChannelStatic})
		}
	}
	m.primed = true

	if len(updates) > 0 {
		if err := m.ctrl.SetLEDBatch(updates); err != nil {
			return err
		}
	}
	return m.showTransport(playing)
}

// showTransport lights the first control row button: pulsing green while
// playing, solid red when paused.
func (m *GridMirror) showTransport(playing bool) error {
	if m.playKnown && m.playLit == playing {
		return nil
	}
	m.playKnown = true
	m.playLit = playing

	color := [3]uint8{0, 255, 0}
	channel := ChannelPulse
	if !playing {
		color = [3]uint8{255, 0, 0}
		channel = ChannelStatic
	}
	return m.ctrl.SetLEDBatch([]LEDUpdate{
		{Row: MirrorSize, Col: 0, Color: color, Channel: channel},
	})
}

// Clear darkens the pads and forgets the painted state, so the next Show
// repaints everything.
func (m *GridMirror) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.primed = false
	m.playKnown = false
	return m.ctrl.ClearLEDs()
}

// cellAt reads a map cell; off-grid cells read black.
func cellAt(grid rgb.Map, x, y int) rgb.Color {
	w, h := grid.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return rgb.Black
	}
	return grid[y][x]
}
