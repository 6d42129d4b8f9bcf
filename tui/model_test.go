package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rgbseq/fixture"
	"rgbseq/matrix"
	"rgbseq/midi"
	"rgbseq/pattern"
	"rgbseq/theme"
)

func testModel(t *testing.T) Model {
	t.Helper()
	algo, err := pattern.Get("Stripe")
	if err != nil {
		t.Fatalf("Get(Stripe): %v", err)
	}
	rig := fixture.Demo(4, 4)
	mtx := matrix.New(matrix.DefaultConfig(), algo, rig, fixture.DemoGroup)
	player := matrix.NewPlayer(mtx, 0)
	m := NewModel(player, nil, theme.New(theme.Default()))
	m.SaveDir = t.TempDir()
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestKeyCyclesRunOrder(t *testing.T) {
	m := testModel(t)
	m = press(t, m, key("r"))
	if got := m.Player.Matrix().Config().RunOrder; got != matrix.SingleShot {
		t.Errorf("run order = %v, want singleshot", got)
	}
	m = press(t, m, key("r"))
	if got := m.Player.Matrix().Config().RunOrder; got != matrix.PingPong {
		t.Errorf("run order = %v, want pingpong", got)
	}
}

func TestKeyFlipsDirection(t *testing.T) {
	m := testModel(t)
	m = press(t, m, key("d"))
	if got := m.Player.Matrix().Config().Direction; got != matrix.Backward {
		t.Errorf("direction = %v, want backward", got)
	}
	m = press(t, m, key("d"))
	if got := m.Player.Matrix().Config().Direction; got != matrix.Forward {
		t.Errorf("direction = %v, want forward", got)
	}
}

func TestDurationKeys(t *testing.T) {
	m := testModel(t)
	m = press(t, m, key("]"))
	if got := m.Player.Matrix().Config().Duration; got != 550*time.Millisecond {
		t.Errorf("duration = %v, want 550ms", got)
	}

	cfg := m.Player.Matrix().Config()
	cfg.Duration = 50 * time.Millisecond
	m.Player.Matrix().SetConfig(cfg)
	m = press(t, m, key("["))
	if got := m.Player.Matrix().Config().Duration; got != 50*time.Millisecond {
		t.Errorf("duration floored at %v, want 50ms", got)
	}
}

func TestStepsOverrideKeys(t *testing.T) {
	m := testModel(t)
	if got := m.Player.Matrix().StepsCount(); got != 4 {
		t.Fatalf("setup: steps = %d", got)
	}

	m = press(t, m, key("+"))
	if got := m.Player.Matrix().StepsCount(); got != 5 {
		t.Errorf("after +: steps = %d, want 5", got)
	}
	m = press(t, m, key("-"))
	if got := m.Player.Matrix().StepsCount(); got != 4 {
		t.Errorf("after -: steps = %d, want 4", got)
	}
	m = press(t, m, key("0"))
	if cfg := m.Player.Matrix().Config(); cfg.Steps != 0 {
		t.Errorf("after 0: override = %d, want auto", cfg.Steps)
	}
}

func TestAlgorithmCycleClearsOverride(t *testing.T) {
	m := testModel(t)
	m = press(t, m, key("+"))
	m = press(t, m, key("a"))

	if got := m.Player.Matrix().Algorithm(); got == "Stripe" {
		t.Error("algorithm did not change")
	}
	if cfg := m.Player.Matrix().Config(); cfg.Steps != 0 {
		t.Errorf("override survived algorithm switch: %d", cfg.Steps)
	}
}

func TestColorKeys(t *testing.T) {
	m := testModel(t)
	m = press(t, m, key("c"))
	if got := m.Player.Matrix().Config().StartColor; got != colorPresets[1].c {
		t.Errorf("start = %v, want %v", got, colorPresets[1].c)
	}

	m = press(t, m, key("e"))
	end := m.Player.Matrix().Config().EndColor
	if end == nil || *end != colorPresets[0].c {
		t.Errorf("end = %v, want %v", end, colorPresets[0].c)
	}
}

func TestSpaceTogglesTransport(t *testing.T) {
	m := testModel(t)
	if !m.Player.Playing() {
		t.Fatal("player should start playing")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Player.Playing() {
		t.Error("space did not pause")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.Player.Playing() {
		t.Error("space did not resume")
	}
}

func TestBakeKeyWritesSequence(t *testing.T) {
	m := testModel(t)
	m = press(t, m, key("s"))

	if !strings.Contains(m.status, "baked") {
		t.Fatalf("status = %q", m.status)
	}
	files, err := filepath.Glob(filepath.Join(m.SaveDir, "*.json"))
	if err != nil || len(files) != 1 {
		t.Fatalf("saved files = %v (err %v), want one", files, err)
	}
	if fi, err := os.Stat(files[0]); err != nil || fi.Size() == 0 {
		t.Errorf("baked file empty or unreadable: %v", err)
	}
}

func TestFrameMsgUpdatesAndRelistens(t *testing.T) {
	m := testModel(t)
	frame := m.Player.Step(0)

	updated, cmd := m.Update(FrameMsg(frame))
	if cmd == nil {
		t.Fatal("frame handling must re-issue the listener")
	}
	m = updated.(Model)
	if m.frame.Index != frame.Index || m.frame.Map.Empty() {
		t.Errorf("frame not stored: %+v", m.frame)
	}
}

func TestViewShowsState(t *testing.T) {
	m := testModel(t)
	m = press(t, m, FrameMsg(m.Player.Step(0)))

	view := m.View()
	if !strings.Contains(view, "rgbseq") {
		t.Error("view missing header")
	}
	if !strings.Contains(view, "Stripe") {
		t.Error("view missing algorithm name")
	}
	if !strings.Contains(view, "PLAY") {
		t.Error("view missing transport state")
	}
	if !strings.Contains(view, "duration:500ms") {
		t.Error("view missing timing line")
	}
}

func TestHelpToggle(t *testing.T) {
	m := testModel(t)
	m = press(t, m, key("?"))

	view := m.View()
	if !strings.Contains(view, "Transport") || !strings.Contains(view, "run order") {
		t.Fatalf("help view missing key sections: %q", view)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(m.View(), "run order") {
		t.Error("esc did not return to the preview")
	}
}

func TestQuitKey(t *testing.T) {
	m := testModel(t)
	updated, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if got := updated.(Model).View(); got != "" {
		t.Errorf("quitting view = %q, want empty", got)
	}
}

type fakePad struct {
	pads    chan midi.PadEvent
	batches int
}

func (f *fakePad) ID() string                      { return "pad" }
func (f *fakePad) Type() midi.ControllerType       { return midi.ControllerLaunchpad }
func (f *fakePad) PadEvents() <-chan midi.PadEvent { return f.pads }
func (f *fakePad) ClearLEDs() error                { return nil }
func (f *fakePad) Close() error                    { return nil }

var _ midi.Controller = (*fakePad)(nil)

func (f *fakePad) SetLEDRGB(row, col int, color [3]uint8, channel uint8) error {
	f.batches++
	return nil
}

func (f *fakePad) SetLEDBatch(updates []midi.LEDUpdate) error {
	f.batches++
	return nil
}

func TestDeviceEventsDriveMirror(t *testing.T) {
	m := testModel(t)
	ctrl := &fakePad{pads: make(chan midi.PadEvent)}

	m = press(t, m, DeviceEventMsg(midi.DeviceEvent{
		Type:       midi.DeviceConnected,
		Controller: ctrl,
		ID:         ctrl.ID(),
	}))
	if m.controller == nil || m.mirror == nil {
		t.Fatal("connect did not adopt the controller")
	}

	m = press(t, m, FrameMsg(m.Player.Step(0)))
	if ctrl.batches == 0 {
		t.Error("frame did not reach the pad mirror")
	}

	m = press(t, m, DeviceEventMsg(midi.DeviceEvent{
		Type: midi.DeviceDisconnected,
		ID:   ctrl.ID(),
	}))
	if m.controller != nil || m.mirror != nil {
		t.Error("disconnect did not release the controller")
	}
}
