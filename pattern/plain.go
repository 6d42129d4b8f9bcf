package pattern

import "rgbseq/rgb"

func init() {
	register("Plain", func() Algorithm { return &Plain{} })
}

// Plain fills the whole grid with the base color. One step.
type Plain struct{}

func (p *Plain) Name() string { return "Plain" }
func (p *Plain) Type() Type   { return TypePlain }

func (p *Plain) AcceptColors() int { return 1 }

func (p *Plain) Steps(width, height int) int { return 1 }

func (p *Plain) Map(width, height int, base rgb.Color, step int) rgb.Map {
	m := rgb.NewMap(width, height)
	for y := range m {
		for x := range m[y] {
			m[y][x] = base
		}
	}
	return m
}
