package pattern

import "rgbseq/rgb"

func init() {
	register("Stripe", func() Algorithm { return &Stripe{} })
	register("Columns", func() Algorithm { return &Columns{} })
}

// Stripe lights one full row per step, sweeping top to bottom.
type Stripe struct{}

func (s *Stripe) Name() string { return "Stripe" }
func (s *Stripe) Type() Type   { return TypeScript }

func (s *Stripe) AcceptColors() int { return 2 }

func (s *Stripe) Steps(width, height int) int { return height }

func (s *Stripe) Map(width, height int, base rgb.Color, step int) rgb.Map {
	m := rgb.NewMap(width, height)
	if m.Empty() {
		return m
	}
	y := clampStep(step, height)
	for x := 0; x < width; x++ {
		m[y][x] = base
	}
	return m
}

// Columns lights one full column per step, sweeping left to right.
type Columns struct{}

func (c *Columns) Name() string { return "Columns" }
func (c *Columns) Type() Type   { return TypeScript }

func (c *Columns) AcceptColors() int { return 2 }

func (c *Columns) Steps(width, height int) int { return width }

func (c *Columns) Map(width, height int, base rgb.Color, step int) rgb.Map {
	m := rgb.NewMap(width, height)
	if m.Empty() {
		return m
	}
	x := clampStep(step, width)
	for y := 0; y < height; y++ {
		m[y][x] = base
	}
	return m
}

// clampStep bounds a step index to [0, count).
func clampStep(step, count int) int {
	if step < 0 {
		return 0
	}
	if step >= count {
		return count - 1
	}
	return step
}
