// Package fixture models the rig: fixtures with addressable channels and
// groups that arrange fixture heads on a 2D grid.
package fixture

import "encoding/json"

// ID identifies a fixture within a rig.
type ID uint32

// Channel is a channel offset within a fixture's DMX footprint.
type Channel uint16

// InvalidChannel marks an absent capability in a head layout.
const InvalidChannel Channel = 0xFFFF

// HeadLayout gives the channel offsets of one head's capabilities.
// Offsets are relative to the fixture address; InvalidChannel marks
// capabilities the head does not have.
type HeadLayout struct {
	Red     Channel `json:"red"`
	Green   Channel `json:"green"`
	Blue    Channel `json:"blue"`
	Master  Channel `json:"master"`
	Amber   Channel `json:"amber"`
	White   Channel `json:"white"`
	UV      Channel `json:"uv"`
	Shutter Channel `json:"shutter"`
}

// NewHeadLayout returns a layout with every capability absent.
func NewHeadLayout() HeadLayout {
	return HeadLayout{
		Red:     InvalidChannel,
		Green:   InvalidChannel,
		Blue:    InvalidChannel,
		Master:  InvalidChannel,
		Amber:   InvalidChannel,
		White:   InvalidChannel,
		UV:      InvalidChannel,
		Shutter: InvalidChannel,
	}
}

// Capability names a single-channel function a head can carry.
type Capability int

const (
	Master Capability = iota
	Amber
	White
	UV
	Shutter
)

// ColorChannel resolves a single-channel capability offset.
func (l HeadLayout) ColorChannel(c Capability) (Channel, bool) {
	var ch Channel
	switch c {
	case Master:
		ch = l.Master
	case Amber:
		ch = l.Amber
	case White:
		ch = l.White
	case UV:
		ch = l.UV
	case Shutter:
		ch = l.Shutter
	default:
		return InvalidChannel, false
	}
	if ch == InvalidChannel {
		return InvalidChannel, false
	}
	return ch, true
}

// UnmarshalJSON fills capabilities missing from the file with
// InvalidChannel rather than channel offset 0.
func (l *HeadLayout) UnmarshalJSON(b []byte) error {
	type plain HeadLayout
	p := plain(NewHeadLayout())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*l = HeadLayout(p)
	return nil
}

// RGB returns the red/green/blue offsets in that order, or nil unless
// the head carries all three.
func (l HeadLayout) RGB() []Channel {
	if l.Red == InvalidChannel || l.Green == InvalidChannel || l.Blue == InvalidChannel {
		return nil
	}
	return []Channel{l.Red, l.Green, l.Blue}
}

// Fixture is one patched unit. Its DMX footprint starts at Address in
// Universe; heads address channels relative to that.
type Fixture struct {
	ID       ID           `json:"id"`
	Name     string       `json:"name"`
	Universe uint16       `json:"universe"`
	Address  uint16       `json:"address"`
	Heads    []HeadLayout `json:"heads"`
}

// HeadCount returns the number of heads on the fixture.
func (f *Fixture) HeadCount() int {
	if f == nil {
		return 0
	}
	return len(f.Heads)
}

// Layout returns the channel layout of one head.
func (f *Fixture) Layout(head int) (HeadLayout, bool) {
	if f == nil || head < 0 || head >= len(f.Heads) {
		return NewHeadLayout(), false
	}
	return f.Heads[head], true
}

// RGBChannels resolves a head to its red/green/blue offsets. Empty when
// the head is unknown or lacks a full RGB triplet.
func (f *Fixture) RGBChannels(head int) []Channel {
	l, ok := f.Layout(head)
	if !ok {
		return nil
	}
	return l.RGB()
}

// MasterChannel resolves a head's master intensity offset.
func (f *Fixture) MasterChannel(head int) (Channel, bool) {
	l, ok := f.Layout(head)
	if !ok || l.Master == InvalidChannel {
		return InvalidChannel, false
	}
	return l.Master, true
}

// ColorChannel resolves one of a head's single-channel capabilities.
func (f *Fixture) ColorChannel(head int, c Capability) (Channel, bool) {
	l, ok := f.Layout(head)
	if !ok {
		return InvalidChannel, false
	}
	return l.ColorChannel(c)
}

// DMXAddress returns the absolute universe slot for a fixture-relative
// channel offset.
func (f *Fixture) DMXAddress(ch Channel) int {
	return int(f.Address) + int(ch)
}
