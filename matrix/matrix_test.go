package matrix

import (
	"testing"

	"rgbseq/fixture"
	"rgbseq/pattern"
	"rgbseq/rgb"
)

func TestStepsCount(t *testing.T) {
	cfg := DefaultConfig()
	m := testMatrix(t, cfg, "Stripe", 4, 3)
	if got := m.StepsCount(); got != 3 {
		t.Errorf("Stripe on 4x3 = %d steps, want height 3", got)
	}

	cfg.Steps = 7
	m.SetConfig(cfg)
	if got := m.StepsCount(); got != 7 {
		t.Errorf("override ignored: StepsCount = %d, want 7", got)
	}

	m = testMatrix(t, DefaultConfig(), "Plain", 4, 3)
	if got := m.StepsCount(); got != 1 {
		t.Errorf("Plain = %d steps, want 1", got)
	}
}

func TestMatrixWithoutGroup(t *testing.T) {
	algo, err := pattern.Get("Plain")
	if err != nil {
		t.Fatalf("Get(Plain): %v", err)
	}
	m := New(DefaultConfig(), algo, fixture.NewRig(), "missing")

	if w, h := m.Size(); w != 0 || h != 0 {
		t.Errorf("Size = %dx%d, want 0x0", w, h)
	}
	if got := m.CurrentMap(); !got.Empty() {
		t.Error("CurrentMap produced cells without a group")
	}
	if m.Advance() {
		t.Error("Advance succeeded with no steps to traverse")
	}
}

func TestGrayControlModeMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ControlMode = ControlDimmer
	cfg.StartColor = rgb.Color{R: 255} // gray level 87
	m := testMatrix(t, cfg, "Plain", 2, 2)

	grid := m.CurrentMap()
	for y := range grid {
		for x := range grid[y] {
			c := grid[y][x]
			if c.R != c.G || c.G != c.B {
				t.Fatalf("cell (%d,%d) = %v, want gray", x, y, c)
			}
			if c.R != 87 {
				t.Fatalf("cell (%d,%d) gray = %d, want 87", x, y, c.R)
			}
		}
	}
}

func TestSetConfigRearmsCursor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 5
	m := testMatrix(t, cfg, "Plain", 1, 1)
	m.Advance()
	m.Advance()
	if m.CurrentIndex() != 2 {
		t.Fatalf("setup: index = %d", m.CurrentIndex())
	}

	cfg.Direction = Backward
	m.SetConfig(cfg)
	if got := m.CurrentIndex(); got != 4 {
		t.Errorf("index after backward reset = %d, want 4", got)
	}
}

func TestMatrixSetColors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 4
	m := testMatrix(t, cfg, "Plain", 1, 1)
	m.Advance()

	end := rgb.Color{B: 255}
	m.SetColors(rgb.Color{R: 255}, &end)
	if got := m.CurrentIndex(); got != 1 {
		t.Errorf("SetColors restarted the traversal: index %d", got)
	}
	if got := m.Config().EndColor; got == nil || *got != end {
		t.Errorf("config end color = %v, want %v", got, end)
	}
}

func TestValuesMatchBakedStep(t *testing.T) {
	cfg := DefaultConfig()
	m := testMatrix(t, cfg, "Plain", 2, 2)

	seq := m.Bake("probe")
	if len(seq.Steps) == 0 {
		t.Fatal("bake produced no steps")
	}
	live := m.Values(m.MapAt(0))
	if len(live) != len(seq.Steps[0].Values) {
		t.Fatalf("live values = %d, baked = %d", len(live), len(seq.Steps[0].Values))
	}
	for i, v := range live {
		if v != seq.Steps[0].Values[i] {
			t.Errorf("value %d = %+v, baked %+v", i, v, seq.Steps[0].Values[i])
		}
	}
}
