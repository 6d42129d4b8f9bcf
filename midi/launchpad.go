package midi

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"rgbseq/debug"
)

// Launchpad X setup messages, per the Novation programmer's reference.
// gomidi adds the F0/F7 framing.
var (
	lpProgrammerMode = []byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x00, 0x7F}
	lpFullBrightness = []byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x08, 0x7F}
	lpLEDFeedback    = []byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x0A, 0x01, 0x01}
)

// LaunchpadController drives a Novation Launchpad X: LEDs out through
// palette-mapped NoteOn messages, presses in through the note grid and
// the top-row CCs.
type LaunchpadController struct {
	id      string
	inPort  drivers.In
	outPort drivers.Out
	send    func(msg gomidi.Message) error
	stop    func()
	pads    chan PadEvent
}

// NewLaunchpadController opens the given ports and switches the device
// to programmer mode. Either port may be nil; an input-only or
// output-only controller just does less.
func NewLaunchpadController(id string, inPort drivers.In, outPort drivers.Out) (*LaunchpadController, error) {
	lp := &LaunchpadController{
		id:      id,
		inPort:  inPort,
		outPort: outPort,
		pads:    make(chan PadEvent, 32),
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open launchpad output: %w", err)
		}
		lp.send = send
		for _, sysex := range [][]byte{lpProgrammerMode, lpFullBrightness, lpLEDFeedback} {
			lp.send(gomidi.SysEx(sysex))
		}
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, lp.handleMessage)
		if err != nil {
			return nil, fmt.Errorf("open launchpad input: %w", err)
		}
		lp.stop = stop
	}

	return lp, nil
}

// handleMessage turns grid notes and top-row CCs into pad events.
// Releases arrive as velocity 0 and are dropped.
func (lp *LaunchpadController) handleMessage(msg gomidi.Message, timestampms int32) {
	var ch, note, vel uint8
	if msg.GetNoteOn(&ch, &note, &vel) && vel > 0 {
		if row, col := noteToRowCol(note); row >= 0 {
			lp.push(PadEvent{Row: row, Col: col, Velocity: vel})
		}
	}

	var cc, val uint8
	if msg.GetControlChange(&ch, &cc, &val) && val > 0 {
		if row, col := ccToRowCol(cc); row >= 0 {
			lp.push(PadEvent{Row: row, Col: col, Velocity: val})
		}
	}
}

// push drops the event when the buffer is full rather than stalling the
// MIDI callback.
func (lp *LaunchpadController) push(ev PadEvent) {
	select {
	case lp.pads <- ev:
	default:
	}
}

func (lp *LaunchpadController) ID() string { return lp.id }

func (lp *LaunchpadController) Type() ControllerType { return ControllerLaunchpad }

func (lp *LaunchpadController) PadEvents() <-chan PadEvent { return lp.pads }

func (lp *LaunchpadController) SetLEDRGB(row, col int, color [3]uint8, channel uint8) error {
	if lp.send == nil {
		return nil
	}
	return lp.send(gomidi.NoteOn(channel, rowColToNote(row, col), mapRGBToLaunchpad(color)))
}

// SetLEDBatch sends one NoteOn per update. SysEx RGB batches rendered
// colors wrong on hardware; plain notes work, and callers diff frames
// first so batches stay small.
func (lp *LaunchpadController) SetLEDBatch(updates []LEDUpdate) error {
	if lp.send == nil || len(updates) == 0 {
		return nil
	}
	for _, u := range updates {
		lp.send(gomidi.NoteOn(u.Channel, rowColToNote(u.Row, u.Col), mapRGBToLaunchpad(u.Color)))
	}
	debug.LogEvery(50, "lp-send", "batch=%d", len(updates))
	return nil
}

// ClearLEDs darkens the grid, the scene column and the control row.
func (lp *LaunchpadController) ClearLEDs() error {
	var updates []LEDUpdate
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			if row == 8 && col == 8 {
				continue // no LED at the top-right corner
			}
			updates = append(updates, LEDUpdate{Row: row, Col: col})
		}
	}
	return lp.SetLEDBatch(updates)
}

// Close darkens the pads, stops the listener and closes the event
// stream.
func (lp *LaunchpadController) Close() error {
	if lp.send != nil {
		lp.ClearLEDs()
	}
	if lp.stop != nil {
		lp.stop()
	}
	close(lp.pads)
	return nil
}

// lpPalette approximates the Launchpad X velocity palette as RGB, enough
// entries to pick a readable match for arbitrary frame colors. Rows are
// {velocity, R, G, B}.
var lpPalette = [][4]uint8{
	{0, 0, 0, 0},         // off
	{5, 255, 0, 0},       // red
	{6, 255, 80, 80},     // bright red
	{7, 180, 60, 60},     // dim red
	{9, 255, 100, 0},     // orange
	{11, 180, 80, 40},    // dim orange
	{13, 255, 200, 0},    // yellow
	{17, 0, 180, 0},      // green
	{19, 0, 100, 0},      // dim green
	{21, 0, 255, 0},      // bright green
	{37, 0, 200, 200},    // cyan
	{43, 40, 60, 120},    // dim blue
	{45, 0, 100, 255},    // blue
	{47, 80, 150, 255},   // bright blue
	{49, 150, 0, 200},    // purple
	{53, 255, 80, 180},   // pink
	{78, 100, 100, 255},  // light blue
	{84, 255, 150, 50},   // bright orange
	{87, 150, 255, 100},  // lime
	{97, 180, 180, 60},   // dim yellow
	{119, 255, 255, 255}, // white
}

// mapRGBToLaunchpad picks the palette velocity nearest the color.
func mapRGBToLaunchpad(color [3]uint8) uint8 {
	target := colorful.Color{R: float64(color[0]) / 255, G: float64(color[1]) / 255, B: float64(color[2]) / 255}
	best := uint8(0)
	bestDist := math.Inf(1)
	for _, p := range lpPalette {
		entry := colorful.Color{R: float64(p[1]) / 255, G: float64(p[2]) / 255, B: float64(p[3]) / 255}
		if d := target.DistanceRgb(entry); d < bestDist {
			bestDist = d
			best = p[0]
		}
	}
	return best
}

// The Launchpad X addresses pads as two-digit notes: row+1 is the tens
// digit, col+1 the ones, so the bottom-left pad is note 11 and the
// top-right grid pad 88. The scene column on the right rides along as
// col 8 (notes 19 through 89). The top control row reports presses as
// CC 91-98, but its LEDs still take notes 91-98.

func rowColToNote(row, col int) uint8 {
	if row == 8 {
		return uint8(91 + col)
	}
	return uint8((row+1)*10 + col + 1)
}

func noteToRowCol(note uint8) (row, col int) {
	if note >= 91 && note <= 98 {
		return 8, int(note - 91)
	}
	row = int(note/10) - 1
	col = int(note%10) - 1
	if row < 0 || row > 7 || col < 0 || col > 8 {
		return -1, -1
	}
	return row, col
}

func ccToRowCol(cc uint8) (row, col int) {
	if cc >= 91 && cc <= 98 {
		return 8, int(cc - 91)
	}
	return -1, -1
}
