// Package matrix drives an animated RGB effect over a fixture grid: a
// step cursor walks the pattern's steps, colors interpolate between the
// configured endpoints, and the result can be previewed live or baked
// into a sequence.
package matrix

import (
	"fmt"
	"strings"
	"time"

	"rgbseq/fixture"
	"rgbseq/rgb"
)

// RunOrder is the traversal policy over step indices.
type RunOrder int

const (
	Loop RunOrder = iota
	SingleShot
	PingPong
)

var runOrderNames = []string{"loop", "singleshot", "pingpong"}

func (o RunOrder) String() string {
	if o < 0 || int(o) >= len(runOrderNames) {
		return "loop"
	}
	return runOrderNames[o]
}

// Next cycles to the following run order.
func (o RunOrder) Next() RunOrder {
	return (o + 1) % RunOrder(len(runOrderNames))
}

// ParseRunOrder maps a flag or config name to a run order.
func ParseRunOrder(s string) (RunOrder, error) {
	switch strings.ToLower(s) {
	case "loop":
		return Loop, nil
	case "singleshot", "single":
		return SingleShot, nil
	case "pingpong":
		return PingPong, nil
	}
	return Loop, fmt.Errorf("unknown run order %q", s)
}

// Direction is the initial traversal direction.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// ParseDirection maps a flag or config name to a direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "forward":
		return Forward, nil
	case "backward", "reverse":
		return Backward, nil
	}
	return Forward, fmt.Errorf("unknown direction %q", s)
}

// BlendMode says how the effect's output combines with other effects on
// the same channels downstream.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMask
	BlendAdditive
	BlendSubtractive
)

var blendModeNames = []string{"normal", "mask", "additive", "subtractive"}

func (b BlendMode) String() string {
	if b < 0 || int(b) >= len(blendModeNames) {
		return "normal"
	}
	return blendModeNames[b]
}

// Next cycles to the following blend mode.
func (b BlendMode) Next() BlendMode {
	return (b + 1) % BlendMode(len(blendModeNames))
}

// ParseBlendMode maps a flag or config name to a blend mode.
func ParseBlendMode(s string) (BlendMode, error) {
	for i, name := range blendModeNames {
		if name == strings.ToLower(s) {
			return BlendMode(i), nil
		}
	}
	return BlendNormal, fmt.Errorf("unknown blend mode %q", s)
}

// ControlMode picks which fixture channels the effect drives. RGB drives
// color triplets; the other modes drive one channel with the gray level.
type ControlMode int

const (
	ControlRGB ControlMode = iota
	ControlAmber
	ControlWhite
	ControlUV
	ControlDimmer
	ControlShutter
)

var controlModeNames = []string{"rgb", "amber", "white", "uv", "dimmer", "shutter"}

func (c ControlMode) String() string {
	if c < 0 || int(c) >= len(controlModeNames) {
		return "rgb"
	}
	return controlModeNames[c]
}

// Next cycles to the following control mode.
func (c ControlMode) Next() ControlMode {
	return (c + 1) % ControlMode(len(controlModeNames))
}

// ParseControlMode maps a flag or config name to a control mode.
func ParseControlMode(s string) (ControlMode, error) {
	for i, name := range controlModeNames {
		if name == strings.ToLower(s) {
			return ControlMode(i), nil
		}
	}
	return ControlRGB, fmt.Errorf("unknown control mode %q", s)
}

// Capability maps the control mode to the single fixture capability it
// drives. RGB drives a triplet instead, so it has none.
func (c ControlMode) Capability() (fixture.Capability, bool) {
	switch c {
	case ControlAmber:
		return fixture.Amber, true
	case ControlWhite:
		return fixture.White, true
	case ControlUV:
		return fixture.UV, true
	case ControlDimmer:
		return fixture.Master, true
	case ControlShutter:
		return fixture.Shutter, true
	}
	return 0, false
}

// Config is the full parameter set of a matrix effect. The engine reads
// it and derives cursor state from it; the stored colors are never
// rewritten, even when a blend or control mode changes what actually
// gets painted.
type Config struct {
	RunOrder      RunOrder
	Direction     Direction
	BlendMode     BlendMode
	ControlMode   ControlMode
	Steps         int // 0 = let the algorithm decide
	StartColor    rgb.Color
	EndColor      *rgb.Color // nil = no interpolation
	Duration      time.Duration
	FadeIn        time.Duration
	FadeOut       time.Duration
	DimmerControl bool
}

// DefaultConfig is a looping forward red fill, 500ms per step, dimmer
// control on.
func DefaultConfig() Config {
	return Config{
		RunOrder:      Loop,
		Direction:     Forward,
		StartColor:    rgb.Color{R: 255},
		Duration:      500 * time.Millisecond,
		DimmerControl: true,
	}
}

// Colors returns the interpolation endpoints after blend-mode policy.
// Mask keys on shape rather than palette, so it paints from full white
// with no interpolation span.
func (c Config) Colors() (rgb.Color, *rgb.Color) {
	if c.BlendMode == BlendMask {
		return rgb.White, nil
	}
	return c.StartColor, c.EndColor
}

// stepBase derives the color handed to the algorithm for one step.
// Non-RGB control modes collapse it to its gray level.
func (c Config) stepBase(col rgb.Color) rgb.Color {
	if c.ControlMode != ControlRGB {
		g := col.Gray()
		return rgb.Color{R: g, G: g, B: g}
	}
	return col
}
