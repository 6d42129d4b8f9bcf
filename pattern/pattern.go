// Package pattern holds the algorithms that paint a matrix step.
// An algorithm turns (grid size, base color, step index) into a color map;
// the playback and bake layers decide which step to ask for and when.
package pattern

import (
	"fmt"
	"sort"

	"rgbseq/rgb"
)

// Type classifies where an algorithm's content comes from.
type Type int

const (
	TypePlain Type = iota
	TypeScript
	TypeText
	TypeImage
	TypeAudio
)

var typeNames = []string{"Plain", "Script", "Text", "Image", "Audio"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// Algorithm produces the color map for each step of a matrix effect.
// Implementations must tolerate repeated Map calls with the same inputs;
// callers serialize access when an algorithm carries mutable settings.
type Algorithm interface {
	Name() string
	Type() Type

	// AcceptColors reports how many user colors the algorithm consumes:
	// 0 (fixed palette), 1 (base color only) or 2 (interpolated pair).
	AcceptColors() int

	// Steps returns how many distinct steps the algorithm produces on a
	// width x height grid.
	Steps(width, height int) int

	// Map renders one step. Cells outside the pattern stay black.
	Map(width, height int, base rgb.Color, step int) rgb.Map
}

var registry = map[string]func() Algorithm{}

func register(name string, fn func() Algorithm) {
	registry[name] = fn
}

// Available lists the registered algorithm names, sorted.
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a fresh instance of the named algorithm.
func Get(name string) (Algorithm, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q", name)
	}
	return fn(), nil
}
