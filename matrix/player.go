package matrix

import (
	"context"
	"sync"
	"time"

	"rgbseq/debug"
	"rgbseq/rgb"
)

// DefaultTick is the preview clock period.
const DefaultTick = 20 * time.Millisecond

// Frame is one preview state published to render surfaces.
type Frame struct {
	Index   int
	Map     rgb.Map
	Running bool
}

// Player advances a matrix on a wall-clock tick and publishes frames.
// Consumers read Frames; a slow consumer misses intermediate frames but
// never blocks the loop.
type Player struct {
	mu      sync.Mutex
	m       *Matrix
	tick    time.Duration
	elapsed time.Duration
	playing bool
	frames  chan Frame
}

// NewPlayer wraps a matrix in a preview clock. tick <= 0 selects
// DefaultTick.
func NewPlayer(m *Matrix, tick time.Duration) *Player {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Player{
		m:       m,
		tick:    tick,
		playing: true,
		frames:  make(chan Frame, 1),
	}
}

// Frames is the stream of preview frames, latest-wins.
func (p *Player) Frames() <-chan Frame {
	return p.frames
}

// Matrix returns the matrix the player drives.
func (p *Player) Matrix() *Matrix {
	return p.m
}

// Playing reports whether the transport is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Toggle flips play/pause and reports the new state. Resuming a finished
// single-shot rewinds it first.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	p.playing = !p.playing
	if p.playing && !p.m.Running() {
		p.m.Reset()
		p.elapsed = 0
	}
	playing := p.playing
	p.mu.Unlock()
	p.Step(0)
	return playing
}

// Restart rewinds the effect and republishes a frame.
func (p *Player) Restart() {
	p.mu.Lock()
	p.m.Reset()
	p.elapsed = 0
	p.mu.Unlock()
	p.Step(0)
}

// Step advances the player clock by dt and publishes the resulting
// frame. Elapsed time accumulates until it crosses the larger of the
// step duration and the tick, then the cursor advances once per crossed
// step duration. A non-positive duration holds the current step. The
// ticker loop calls this once per tick; tests call it directly.
func (p *Player) Step(dt time.Duration) Frame {
	p.mu.Lock()
	duration := p.m.Config().Duration
	if p.playing && duration > 0 {
		p.elapsed += dt
		threshold := duration
		if threshold < p.tick {
			threshold = p.tick
		}
		for p.elapsed >= threshold {
			if !p.m.Advance() {
				p.playing = false
				p.elapsed = 0
				debug.Log("player", "single-shot finished at step %d", p.m.CurrentIndex())
				break
			}
			p.elapsed -= duration
		}
	}
	f := Frame{
		Index:   p.m.CurrentIndex(),
		Map:     p.m.CurrentMap(),
		Running: p.playing,
	}
	p.mu.Unlock()

	p.publish(f)
	return f
}

// Run drives the clock until ctx is cancelled. An initial frame goes out
// immediately so surfaces have something to draw before the first tick.
func (p *Player) Run(ctx context.Context) {
	p.Step(0)
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Step(p.tick)
		}
	}
}

// publish delivers latest-wins: an undelivered older frame is dropped in
// favor of the new one.
func (p *Player) publish(f Frame) {
	for {
		select {
		case p.frames <- f:
			return
		default:
		}
		select {
		case <-p.frames:
		default:
		}
	}
}
