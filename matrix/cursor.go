package matrix

import "rgbseq/rgb"

// Cursor tracks where a traversal is: the current step index, the travel
// direction (ping-pong flips it), and the color interpolation state.
// Advance is the only thing that moves it; Reset rearms it whenever the
// run order, direction, colors or step count change.
type Cursor struct {
	order     RunOrder
	direction Direction
	steps     int
	index     int
	running   bool

	start  rgb.Color
	end    rgb.Color
	hasEnd bool
	seed   rgb.Color
	// full start-to-end span per channel, applied proportionally by step
	dr, dg, db int
}

// Reset rearms the cursor for a fresh traversal. Forward starts at step
// 0 seeded with the start color; Backward starts at the last step and,
// when an end color is set, seeds from it so the walk runs the
// interpolation from its far end.
func (c *Cursor) Reset(order RunOrder, dir Direction, steps int, start rgb.Color, end *rgb.Color) {
	c.order = order
	c.direction = dir
	c.steps = steps
	c.setColors(start, end)
	c.running = steps > 0

	c.index = 0
	c.seed = start
	if dir == Backward && steps > 0 {
		c.index = steps - 1
		if c.hasEnd {
			c.seed = c.end
		}
	}
}

// SetColors swaps the interpolation endpoints in place, keeping the
// current index. Live edits retune the colors without restarting the
// traversal.
func (c *Cursor) SetColors(start rgb.Color, end *rgb.Color) {
	c.setColors(start, end)
	c.seed = start
	if c.direction == Backward && c.hasEnd {
		c.seed = c.end
	}
}

func (c *Cursor) setColors(start rgb.Color, end *rgb.Color) {
	c.start = start
	c.hasEnd = end != nil
	if c.hasEnd {
		c.end = *end
	} else {
		c.end = rgb.Color{}
	}
	c.calculateColorDelta()
}

// calculateColorDelta captures the per-channel span from start to end.
// No end color means a zero delta: the color holds constant.
func (c *Cursor) calculateColorDelta() {
	c.dr, c.dg, c.db = 0, 0, 0
	if c.hasEnd {
		c.dr = int(c.end.R) - int(c.start.R)
		c.dg = int(c.end.G) - int(c.start.G)
		c.db = int(c.end.B) - int(c.start.B)
	}
}

// Index returns the current step index.
func (c *Cursor) Index() int { return c.index }

// Direction returns the current travel direction.
func (c *Cursor) Direction() Direction { return c.direction }

// Steps returns the traversal's step count.
func (c *Cursor) Steps() int { return c.steps }

// Running reports whether the cursor can still advance. Only a finished
// single-shot traversal (or an empty one) stops running.
func (c *Cursor) Running() bool { return c.running }

// Advance moves one step per the run order and reports whether the
// cursor is still live. Loop wraps at the boundaries; ping-pong reverses
// into the adjacent interior index so no boundary repeats twice in a
// row; single-shot clamps at the boundary and goes terminal.
func (c *Cursor) Advance() bool {
	if !c.running {
		return false
	}

	switch c.order {
	case PingPong:
		if c.steps == 1 {
			return true
		}
		if c.direction == Forward && c.index+1 >= c.steps {
			c.index = c.steps - 2
			c.direction = Backward
		} else if c.direction == Backward && c.index-1 < 0 {
			c.index = 1
			c.direction = Forward
		} else if c.direction == Forward {
			c.index++
		} else {
			c.index--
		}

	case SingleShot:
		if c.direction == Forward {
			if c.index >= c.steps-1 {
				c.running = false
				return false
			}
			c.index++
		} else {
			if c.index <= 0 {
				c.running = false
				return false
			}
			c.index--
		}

	default: // Loop
		if c.direction == Forward {
			if c.index >= c.steps-1 {
				c.index = 0
			} else {
				c.index++
			}
		} else {
			if c.index <= 0 {
				c.index = c.steps - 1
			} else {
				c.index--
			}
		}
	}
	return true
}

// StepColor computes the color for an arbitrary step index, analytically
// from the endpoints: start plus the proportional share of the span.
// Recomputing from the index instead of accumulating a running color
// keeps repeated calls identical and the endpoints exact.
func (c *Cursor) StepColor(step int) rgb.Color {
	if c.steps <= 1 {
		return c.seed
	}
	n := c.steps - 1
	return rgb.Color{
		R: rgb.Clamp(int(c.start.R) + c.dr*step/n),
		G: rgb.Clamp(int(c.start.G) + c.dg*step/n),
		B: rgb.Clamp(int(c.start.B) + c.db*step/n),
	}
}

// Color returns the color at the current step.
func (c *Cursor) Color() rgb.Color {
	return c.StepColor(c.index)
}
