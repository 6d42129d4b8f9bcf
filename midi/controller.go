// Package midi drives pad grid controllers: hot-plug detection, LED
// output and pad input for mirroring the preview onto hardware.
package midi

// ControllerType identifies a kind of pad controller.
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerLaunchpad
)

// PadEvent is one pad or button press, in grid coordinates. Row 0 is the
// bottom of the device.
type PadEvent struct {
	Row, Col int
	Velocity uint8
}

// LEDUpdate is one pad color change within a batch.
type LEDUpdate struct {
	Row, Col int
	Color    [3]uint8
	Channel  uint8
}

// LED channel modes. Flash and pulse animate on the device itself; the
// sender only picks the mode.
const (
	ChannelStatic uint8 = 0
	ChannelFlash  uint8 = 1
	ChannelPulse  uint8 = 2
)

// Controller is a pad grid device the mirror can paint.
type Controller interface {
	ID() string
	Type() ControllerType

	// PadEvents streams presses. The channel closes with the device.
	PadEvents() <-chan PadEvent

	// SetLEDRGB lights one pad. Devices with a fixed palette pick their
	// nearest color.
	SetLEDRGB(row, col int, color [3]uint8, channel uint8) error
	SetLEDBatch(updates []LEDUpdate) error
	ClearLEDs() error

	Close() error
}
