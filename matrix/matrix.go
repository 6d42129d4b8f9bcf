package matrix

import (
	"sync"

	"rgbseq/fixture"
	"rgbseq/pattern"
	"rgbseq/rgb"
	"rgbseq/sequence"
)

// Matrix binds a pattern algorithm to a fixture group and drives the
// step cursor over it. All methods are safe for concurrent use; the UI
// edits the config while the player advances and renders.
type Matrix struct {
	mu    sync.Mutex // guards cfg, algo and cur; serializes algorithm Map calls
	cfg   Config
	algo  pattern.Algorithm
	rig   *fixture.Rig
	group string
	cur   Cursor
}

// New builds a matrix over a group of the rig. A nil algorithm or an
// unknown group is allowed; the matrix just produces nothing until they
// show up.
func New(cfg Config, algo pattern.Algorithm, rig *fixture.Rig, group string) *Matrix {
	m := &Matrix{cfg: cfg, algo: algo, rig: rig, group: group}
	m.reset()
	return m
}

// Config returns a copy of the current parameters.
func (m *Matrix) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// SetConfig swaps the parameters and rearms the cursor.
func (m *Matrix) SetConfig(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	m.reset()
}

// SetColors changes only the interpolation endpoints, keeping the cursor
// where it is.
func (m *Matrix) SetColors(start rgb.Color, end *rgb.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.StartColor = start
	m.cfg.EndColor = end
	s, e := m.cfg.Colors()
	m.cur.SetColors(s, e)
}

// Algorithm returns the current algorithm's name, or "" without one.
func (m *Matrix) Algorithm() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.algo == nil {
		return ""
	}
	return m.algo.Name()
}

// SetAlgorithm swaps the pattern algorithm and rearms the cursor.
func (m *Matrix) SetAlgorithm(algo pattern.Algorithm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.algo = algo
	m.reset()
}

// Group returns the fixture group name the matrix paints.
func (m *Matrix) Group() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.group
}

// Size returns the group's grid dimensions, or 0x0 when the group is
// missing.
func (m *Matrix) Size() (width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sizeLocked()
}

// StepsCount returns the traversal length: the configured override when
// set, otherwise what the algorithm produces on this grid.
func (m *Matrix) StepsCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stepsLocked()
}

// CurrentIndex returns the cursor's step index.
func (m *Matrix) CurrentIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur.Index()
}

// Running reports whether the cursor can still advance.
func (m *Matrix) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur.Running()
}

// Reset rewinds the cursor to the configured starting point.
func (m *Matrix) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

// Advance moves the cursor one step and reports whether it is still
// live.
func (m *Matrix) Advance() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur.Advance()
}

// MapAt renders the color map for an arbitrary step.
func (m *Matrix) MapAt(step int) rgb.Map {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mapWithCursor(&m.cur, step)
}

// CurrentMap renders the color map at the cursor's step.
func (m *Matrix) CurrentMap() rgb.Map {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mapWithCursor(&m.cur, m.cur.Index())
}

// Values flattens a rendered map into sorted channel values, resolving
// heads the same way the bake does. Live output paths feed these straight
// to a DMX sender.
func (m *Matrix) Values(grid rgb.Map) []sequence.Value {
	m.mu.Lock()
	defer m.mu.Unlock()
	grp, ok := m.rig.Group(m.group)
	if !ok || grid.Empty() {
		return nil
	}
	values := m.stepValues(grp, grid)
	sequence.SortValues(values)
	return values
}

func (m *Matrix) reset() {
	start, end := m.cfg.Colors()
	m.cur.Reset(m.cfg.RunOrder, m.cfg.Direction, m.stepsLocked(), start, end)
}

func (m *Matrix) sizeLocked() (int, int) {
	grp, ok := m.rig.Group(m.group)
	if !ok {
		return 0, 0
	}
	return grp.Size()
}

func (m *Matrix) stepsLocked() int {
	if m.cfg.Steps > 0 {
		return m.cfg.Steps
	}
	if m.algo == nil {
		return 0
	}
	w, h := m.sizeLocked()
	if w == 0 || h == 0 {
		return 0
	}
	return m.algo.Steps(w, h)
}

// mapWithCursor renders one step through the given cursor's color state.
// Callers hold m.mu, which is what serializes algorithm access against
// concurrent configuration edits.
func (m *Matrix) mapWithCursor(cur *Cursor, step int) rgb.Map {
	if m.algo == nil {
		return nil
	}
	w, h := m.sizeLocked()
	if w == 0 || h == 0 {
		return nil
	}
	base := m.cfg.stepBase(cur.StepColor(step))
	return m.algo.Map(w, h, base, step)
}
