package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"rgbseq/debug"
)

// DeviceEventType says whether a controller appeared or went away.
type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceEvent reports one hot-plug change. Controller is set on connect
// only.
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

// portScanTimeout bounds one port enumeration. A hung CoreMIDI would
// otherwise park the poll goroutine forever.
const portScanTimeout = 3 * time.Second

// DeviceManager polls the MIDI ports for pad controllers and streams
// connect/disconnect events. The poll goroutine owns scanning; the
// controller map is shared with readers.
type DeviceManager struct {
	mu          sync.RWMutex
	controllers map[string]Controller
	events      chan DeviceEvent
	pollEvery   time.Duration
}

func NewDeviceManager() *DeviceManager {
	return &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollEvery:   time.Second,
	}
}

// Events is the stream of hot-plug changes. It closes when Run returns.
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of the connected controllers keyed by
// port name.
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	out := make(map[string]Controller, len(dm.controllers))
	for id, c := range dm.controllers {
		out[id] = c
	}
	return out
}

// GetLaunchpad returns a connected Launchpad, or nil.
func (dm *DeviceManager) GetLaunchpad() Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	for _, c := range dm.controllers {
		if c.Type() == ControllerLaunchpad {
			return c
		}
	}
	return nil
}

// Run polls until ctx is cancelled, then closes every controller and the
// event stream. It blocks; callers run it in a goroutine.
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollEvery)
	defer ticker.Stop()

	dm.scan()
	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

// scan reconciles the controller map against the ports present right
// now: new pad controllers are opened, vanished ones closed.
func (dm *DeviceManager) scan() {
	ins, outs, ok := listPorts()
	if !ok {
		debug.Log("midi", "port scan timed out, skipping")
		return
	}

	seen := make(map[string]bool)
	for _, in := range ins {
		id := in.String()
		if !isLaunchpad(id) {
			continue
		}
		seen[id] = true
		if dm.known(id) {
			continue
		}
		lp, err := NewLaunchpadController(id, in, matchOut(outs, id))
		if err != nil {
			debug.Log("midi", "open %s: %v", id, err)
			continue
		}
		dm.mu.Lock()
		dm.controllers[id] = lp
		dm.mu.Unlock()
		dm.emit(DeviceEvent{Type: DeviceConnected, Controller: lp, ID: id})
		debug.Log("midi", "connected %s", id)
	}

	dm.mu.Lock()
	var gone []string
	for id := range dm.controllers {
		if !seen[id] {
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		dm.controllers[id].Close()
		delete(dm.controllers, id)
	}
	dm.mu.Unlock()

	for _, id := range gone {
		dm.emit(DeviceEvent{Type: DeviceDisconnected, ID: id})
		debug.Log("midi", "disconnected %s", id)
	}
}

func (dm *DeviceManager) known(id string) bool {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	_, ok := dm.controllers[id]
	return ok
}

// emit never blocks the poll loop. A full buffer drops the event, the
// same latest-wins stance the frame stream takes with slow consumers.
func (dm *DeviceManager) emit(ev DeviceEvent) {
	select {
	case dm.events <- ev:
	default:
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// listPorts enumerates the MIDI ports, abandoning the attempt when the
// driver hangs. The stuck goroutine is left parked; the next scan starts
// a fresh one.
func listPorts() ([]drivers.In, []drivers.Out, bool) {
	type ports struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan ports, 1)
	go func() {
		ch <- ports{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()
	select {
	case p := <-ch:
		return p.ins, p.outs, true
	case <-time.After(portScanTimeout):
		return nil, nil, false
	}
}

// matchOut pairs an input port with the output port of the same name.
func matchOut(outs []drivers.Out, name string) drivers.Out {
	for _, out := range outs {
		if strings.EqualFold(out.String(), name) {
			return out
		}
	}
	return nil
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}
