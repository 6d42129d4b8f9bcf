package matrix

import (
	"testing"
	"time"
)

func TestPlayerAccumulatesToThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = 100 * time.Millisecond
	cfg.Steps = 4
	m := testMatrix(t, cfg, "Plain", 1, 1)
	p := NewPlayer(m, 20*time.Millisecond)

	f := p.Step(60 * time.Millisecond)
	if f.Index != 0 {
		t.Errorf("advanced before one duration elapsed: index %d", f.Index)
	}

	f = p.Step(40 * time.Millisecond)
	if f.Index != 1 {
		t.Errorf("index = %d, want 1 after one full duration", f.Index)
	}

	// Crossing several durations at once catches up step by step.
	f = p.Step(250 * time.Millisecond)
	if f.Index != 3 {
		t.Errorf("index = %d, want 3 after 250ms more", f.Index)
	}
}

func TestPlayerShortDurationUsesTickFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = 5 * time.Millisecond
	cfg.Steps = 100
	m := testMatrix(t, cfg, "Plain", 1, 1)
	p := NewPlayer(m, 20*time.Millisecond)

	// The first tick only crosses the tick floor once...
	f := p.Step(20 * time.Millisecond)
	if f.Index != 1 {
		t.Errorf("index = %d after first tick, want 1", f.Index)
	}
	// ...then the backlog drains at the true step rate.
	f = p.Step(20 * time.Millisecond)
	if f.Index != 5 {
		t.Errorf("index = %d after second tick, want 5", f.Index)
	}
}

func TestPlayerZeroDurationHolds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = 0
	cfg.Steps = 4
	m := testMatrix(t, cfg, "Plain", 1, 1)
	p := NewPlayer(m, 20*time.Millisecond)

	if f := p.Step(10 * time.Second); f.Index != 0 {
		t.Errorf("zero duration advanced to %d", f.Index)
	}
}

func TestPlayerPauseHolds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = 50 * time.Millisecond
	cfg.Steps = 4
	m := testMatrix(t, cfg, "Plain", 1, 1)
	p := NewPlayer(m, 20*time.Millisecond)

	if p.Toggle() {
		t.Fatal("Toggle from playing should pause")
	}
	if f := p.Step(time.Second); f.Index != 0 {
		t.Errorf("paused player advanced to %d", f.Index)
	}
}

func TestPlayerSingleShotStops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RunOrder = SingleShot
	cfg.Steps = 3
	cfg.Duration = 50 * time.Millisecond
	m := testMatrix(t, cfg, "Plain", 1, 1)
	p := NewPlayer(m, 20*time.Millisecond)

	f := p.Step(10 * time.Second)
	if f.Running {
		t.Error("frame still running after single-shot finished")
	}
	if f.Index != 2 {
		t.Errorf("index = %d, want clamped at 2", f.Index)
	}
	if p.Playing() {
		t.Error("player still playing after single-shot finished")
	}

	// Resuming rewinds to the start.
	if !p.Toggle() {
		t.Fatal("Toggle did not resume")
	}
	if got := m.CurrentIndex(); got != 0 {
		t.Errorf("resume left index at %d, want 0", got)
	}
}

func TestPlayerFramesLatestWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = 100 * time.Millisecond
	cfg.Steps = 4
	m := testMatrix(t, cfg, "Plain", 2, 2)
	p := NewPlayer(m, 20*time.Millisecond)

	p.Step(0)
	p.Step(100 * time.Millisecond) // replaces the unread frame

	select {
	case f := <-p.Frames():
		if f.Index != 1 {
			t.Errorf("frame index = %d, want the newest frame", f.Index)
		}
		if f.Map.Empty() {
			t.Error("frame carries an empty map")
		}
	default:
		t.Fatal("no frame available")
	}
}

func TestPlayerRestart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = 50 * time.Millisecond
	cfg.Steps = 5
	m := testMatrix(t, cfg, "Plain", 1, 1)
	p := NewPlayer(m, 20*time.Millisecond)

	p.Step(120 * time.Millisecond)
	if m.CurrentIndex() == 0 {
		t.Fatal("setup: player never advanced")
	}
	p.Restart()
	if got := m.CurrentIndex(); got != 0 {
		t.Errorf("index after restart = %d, want 0", got)
	}
}

func TestPlayerDefaultTick(t *testing.T) {
	m := testMatrix(t, DefaultConfig(), "Plain", 1, 1)
	if p := NewPlayer(m, 0); p.tick != DefaultTick {
		t.Errorf("tick = %v, want default %v", p.tick, DefaultTick)
	}
}
