package artnet

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"rgbseq/debug"
	"rgbseq/fixture"
	"rgbseq/sequence"
)

// forceEvery is how many flushes may pass before unchanged universes
// resend anyway, so nodes that dropped a packet converge.
const forceEvery = 30

// Sender keeps one DMX frame per universe and writes the changed ones to
// an Art-Net node.
type Sender struct {
	mu         sync.Mutex
	w          io.Writer
	conn       *net.UDPConn
	rig        *fixture.Rig
	frames     map[uint16]*[UniverseSize]byte
	lastSent   map[uint16]*[UniverseSize]byte
	flushCount int
}

func newSender(w io.Writer, rig *fixture.Rig) *Sender {
	return &Sender{
		w:        w,
		rig:      rig,
		frames:   make(map[uint16]*[UniverseSize]byte),
		lastSent: make(map[uint16]*[UniverseSize]byte),
	}
}

// NewSender dials an Art-Net node. host may omit the port; the Art-Net
// port is assumed.
func NewSender(host string, rig *fixture.Rig) (*Sender, error) {
	if !strings.Contains(host, ":") {
		host = fmt.Sprintf("%s:%d", host, Port)
	}
	addr, err := net.ResolveUDPAddr("udp", host)
	if err != nil {
		return nil, fmt.Errorf("resolve artnet node %s: %w", host, err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial artnet node %s: %w", host, err)
	}
	s := newSender(conn, rig)
	s.conn = conn
	debug.Log("artnet", "sending to %s", addr)
	return s, nil
}

// Apply rebuilds the universe frames from channel values and sends the
// universes whose bytes changed. Values that no longer resolve to a
// patched slot are dropped.
func (s *Sender) Apply(values []sequence.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, frame := range s.frames {
		for i := range frame {
			frame[i] = 0
		}
	}
	for _, v := range values {
		fx, ok := s.rig.Fixture(v.Fixture)
		if !ok {
			continue
		}
		slot := fx.DMXAddress(v.Channel)
		if slot < 0 || slot >= UniverseSize {
			continue
		}
		frame := s.frames[fx.Universe]
		if frame == nil {
			frame = new([UniverseSize]byte)
			s.frames[fx.Universe] = frame
		}
		frame[slot] = v.Value
	}
	return s.flushLocked()
}

// Blackout zeroes every universe seen so far and pushes the result out.
func (s *Sender) Blackout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, frame := range s.frames {
		for i := range frame {
			frame[i] = 0
		}
	}
	return s.flushLocked()
}

// Close darkens the node and releases the socket.
func (s *Sender) Close() error {
	if err := s.Blackout(); err != nil {
		debug.Log("artnet", "blackout on close: %v", err)
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *Sender) flushLocked() error {
	s.flushCount++
	force := s.flushCount >= forceEvery
	if force {
		s.flushCount = 0
	}

	for universe, frame := range s.frames {
		last, seen := s.lastSent[universe]
		if !force && seen && bytes.Equal(last[:], frame[:]) {
			continue
		}
		if _, err := s.w.Write(Build(universe, frame[:])); err != nil {
			return fmt.Errorf("send universe %d: %w", universe, err)
		}
		if !seen {
			last = new([UniverseSize]byte)
			s.lastSent[universe] = last
		}
		copy(last[:], frame[:])
		debug.LogEvery(100, "artnet", "universe %d sent", universe)
	}
	return nil
}
