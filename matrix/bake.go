package matrix

import (
	"rgbseq/fixture"
	"rgbseq/rgb"
	"rgbseq/sequence"
)

// Bake unrolls the effect into a sequence covering exactly one full
// traversal: stepCount steps for loop and single-shot, 2*stepCount-1 for
// ping-pong (the walk folds back through the interior, so boundaries
// appear once). Missing pieces degrade instead of failing: no group, no
// algorithm or no steps bake to an empty sequence, a step whose map
// comes up empty emits nothing, and heads that no longer resolve are
// skipped value by value.
func (m *Matrix) Bake(name string) *sequence.Sequence {
	m.mu.Lock()
	defer m.mu.Unlock()

	seq := &sequence.Sequence{
		Name:         name,
		Group:        m.group,
		DurationMode: sequence.SpeedPerStep,
	}
	// Zero speed means the fade edge is disabled, not a zero-length fade.
	if m.cfg.FadeIn > 0 {
		seq.FadeInMode = sequence.SpeedPerStep
	}
	if m.cfg.FadeOut > 0 {
		seq.FadeOutMode = sequence.SpeedPerStep
	}

	grp, ok := m.rig.Group(m.group)
	if !ok || m.algo == nil {
		return seq
	}
	seq.Scene = m.blackoutScene(grp)

	steps := m.stepsLocked()
	if steps <= 0 {
		return seq
	}
	total := steps
	if m.cfg.RunOrder == PingPong {
		total = steps*2 - 1
	}

	var cur Cursor
	start, end := m.cfg.Colors()
	cur.Reset(m.cfg.RunOrder, m.cfg.Direction, steps, start, end)

	hold := m.cfg.Duration - m.cfg.FadeIn
	if hold < 0 {
		hold = 0
	}

	for i := 0; i < total; i++ {
		idx := cur.Index()
		grid := m.mapWithCursor(&cur, idx)
		if grid.Empty() {
			cur.Advance()
			continue
		}

		step := sequence.Step{
			Index:    idx,
			Hold:     sequence.Millis(hold),
			Duration: sequence.Millis(m.cfg.Duration),
			FadeIn:   sequence.Millis(m.cfg.FadeIn),
			FadeOut:  sequence.Millis(m.cfg.FadeOut),
			Values:   m.stepValues(grp, grid),
		}
		step.SortValues()
		seq.Steps = append(seq.Steps, step)
		cur.Advance()
	}
	return seq
}

// stepValues turns one color map into channel values for every mapped
// head. A stale rig thins the output rather than killing the bake.
func (m *Matrix) stepValues(grp *fixture.Group, grid rgb.Map) []sequence.Value {
	w, h := grid.Size()
	var values []sequence.Value
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			head, ok := grp.HeadAt(fixture.Point{X: x, Y: y})
			if !ok {
				continue
			}
			fx, ok := m.rig.Fixture(head.Fixture)
			if !ok {
				continue
			}
			layout, ok := fx.Layout(head.Index)
			if !ok {
				continue
			}
			values = append(values, headValues(head.Fixture, layout, grid[y][x], m.cfg)...)
		}
	}
	return values
}

// headValues emits the channel values one head takes for a cell color:
// the RGB triplet (or the control mode's single channel at the gray
// level), plus the master intensity gate when dimmer control is on.
func headValues(id fixture.ID, layout fixture.HeadLayout, col rgb.Color, cfg Config) []sequence.Value {
	var out []sequence.Value

	if cfg.ControlMode == ControlRGB {
		if chans := layout.RGB(); chans != nil {
			out = append(out,
				sequence.Value{Fixture: id, Channel: chans[0], Value: col.R},
				sequence.Value{Fixture: id, Channel: chans[1], Value: col.G},
				sequence.Value{Fixture: id, Channel: chans[2], Value: col.B},
			)
		}
	} else if ch, ok := modeChannel(layout, cfg.ControlMode); ok {
		out = append(out, sequence.Value{Fixture: id, Channel: ch, Value: col.Gray()})
		if cfg.ControlMode == ControlDimmer {
			// The gray value already owns the master channel.
			return out
		}
	}

	if cfg.DimmerControl && layout.Master != fixture.InvalidChannel {
		v := uint8(255)
		if col.IsBlack() {
			v = 0
		}
		out = append(out, sequence.Value{Fixture: id, Channel: layout.Master, Value: v})
	}
	return out
}

// modeChannel picks the single channel a non-RGB control mode drives.
func modeChannel(layout fixture.HeadLayout, mode ControlMode) (fixture.Channel, bool) {
	c, ok := mode.Capability()
	if !ok {
		return fixture.InvalidChannel, false
	}
	return layout.ColorChannel(c)
}

// blackoutScene zeroes every channel the group can drive. Playback uses
// it as the baseline the steps fade from.
func (m *Matrix) blackoutScene(grp *fixture.Group) []sequence.Value {
	var values []sequence.Value
	for _, head := range grp.Heads {
		fx, ok := m.rig.Fixture(head.Fixture)
		if !ok {
			continue
		}
		layout, ok := fx.Layout(head.Index)
		if !ok {
			continue
		}
		for _, ch := range layout.RGB() {
			values = append(values, sequence.Value{Fixture: head.Fixture, Channel: ch})
		}
		if layout.Master != fixture.InvalidChannel {
			values = append(values, sequence.Value{Fixture: head.Fixture, Channel: layout.Master})
		}
		if ch, ok := modeChannel(layout, m.cfg.ControlMode); ok && ch != layout.Master {
			values = append(values, sequence.Value{Fixture: head.Fixture, Channel: ch})
		}
	}
	sequence.SortValues(values)
	return values
}
