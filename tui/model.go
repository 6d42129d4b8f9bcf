// Package tui is the interactive preview: a bubbletea model that renders
// player frames and edits the effect configuration live.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rgbseq/artnet"
	"rgbseq/matrix"
	"rgbseq/midi"
	"rgbseq/pattern"
	"rgbseq/rgb"
	"rgbseq/theme"
	"rgbseq/widgets"
)

// colorPresets is the cycle order for the start/end color keys.
var colorPresets = []struct {
	name string
	c    rgb.Color
}{
	{"red", rgb.Color{R: 255}},
	{"green", rgb.Color{G: 255}},
	{"blue", rgb.Color{B: 255}},
	{"yellow", rgb.Color{R: 255, G: 255}},
	{"cyan", rgb.Color{G: 255, B: 255}},
	{"magenta", rgb.Color{R: 255, B: 255}},
	{"white", rgb.White},
}

// fadeCycle is the fade time ladder the fade keys walk through.
var fadeCycle = []time.Duration{
	0,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
}

type Model struct {
	Player    *matrix.Player
	DeviceMgr *midi.DeviceManager // may be nil
	Theme     *theme.Theme
	Sender    *artnet.Sender // may be nil
	SaveDir   string

	frame      matrix.Frame
	mirror     *midi.GridMirror
	controller midi.Controller
	startIdx   int
	endIdx     int // 0 = no end color, 1.. = colorPresets[endIdx-1]
	status     string
	showHelp   bool
	quitting   bool
}

type FrameMsg matrix.Frame

type DeviceEventMsg midi.DeviceEvent

func NewModel(player *matrix.Player, deviceMgr *midi.DeviceManager, th *theme.Theme) Model {
	return Model{
		Player:    player,
		DeviceMgr: deviceMgr,
		Theme:     th,
		SaveDir:   "sequences",
	}
}

func ListenForFrames(player *matrix.Player) tea.Cmd {
	return func() tea.Msg {
		return FrameMsg(<-player.Frames())
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		return DeviceEventMsg(<-deviceMgr.Events())
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForFrames(m.Player)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case FrameMsg:
		m.frame = matrix.Frame(msg)
		m.pushOutputs()
		return m, ListenForFrames(m.Player)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected && event.Controller != nil {
			m.controller = event.Controller
			m.mirror = midi.NewGridMirror(event.Controller)
			m.status = "pad controller connected"

			// Any pad press toggles the transport
			player := m.Player
			go func() {
				for range event.Controller.PadEvents() {
					player.Toggle()
				}
			}()
		} else if event.Type == midi.DeviceDisconnected {
			if m.controller != nil && m.controller.ID() == event.ID {
				m.controller = nil
				m.mirror = nil
				m.status = "pad controller disconnected"
			}
		}
		if m.DeviceMgr == nil {
			return m, nil
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mtx := m.Player.Matrix()

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "esc":
		m.showHelp = false
		return m, nil

	case " ", "space":
		if m.Player.Toggle() {
			m.status = "playing"
		} else {
			m.status = "paused"
		}

	case "enter":
		m.Player.Restart()
		m.status = "restarted"

	case "a":
		m.cycleAlgorithm()

	case "r":
		cfg := mtx.Config()
		cfg.RunOrder = cfg.RunOrder.Next()
		mtx.SetConfig(cfg)

	case "d":
		cfg := mtx.Config()
		cfg.Direction = cfg.Direction.Flip()
		mtx.SetConfig(cfg)

	case "b":
		cfg := mtx.Config()
		cfg.BlendMode = cfg.BlendMode.Next()
		mtx.SetConfig(cfg)

	case "m":
		cfg := mtx.Config()
		cfg.ControlMode = cfg.ControlMode.Next()
		mtx.SetConfig(cfg)

	case "x":
		cfg := mtx.Config()
		cfg.DimmerControl = !cfg.DimmerControl
		mtx.SetConfig(cfg)

	case "c":
		m.startIdx = (m.startIdx + 1) % len(colorPresets)
		m.applyColors()

	case "e":
		m.endIdx = (m.endIdx + 1) % (len(colorPresets) + 1)
		m.applyColors()

	case "[":
		cfg := mtx.Config()
		cfg.Duration -= 50 * time.Millisecond
		if cfg.Duration < 50*time.Millisecond {
			cfg.Duration = 50 * time.Millisecond
		}
		mtx.SetConfig(cfg)

	case "]":
		cfg := mtx.Config()
		cfg.Duration += 50 * time.Millisecond
		mtx.SetConfig(cfg)

	case "f":
		cfg := mtx.Config()
		cfg.FadeIn = nextFade(cfg.FadeIn)
		mtx.SetConfig(cfg)

	case "g":
		cfg := mtx.Config()
		cfg.FadeOut = nextFade(cfg.FadeOut)
		mtx.SetConfig(cfg)

	case "+", "=":
		cfg := mtx.Config()
		cfg.Steps = mtx.StepsCount() + 1
		mtx.SetConfig(cfg)

	case "-", "_":
		cfg := mtx.Config()
		steps := mtx.StepsCount() - 1
		if steps < 1 {
			steps = 1
		}
		cfg.Steps = steps
		mtx.SetConfig(cfg)

	case "0":
		cfg := mtx.Config()
		cfg.Steps = 0
		mtx.SetConfig(cfg)

	case "s":
		m.bake()
	}

	return m, nil
}

// cycleAlgorithm moves to the next registered algorithm and drops any
// manual step override, since it belonged to the previous pattern.
func (m *Model) cycleAlgorithm() {
	names := pattern.Available()
	if len(names) == 0 {
		return
	}
	current := m.Player.Matrix().Algorithm()
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	algo, err := pattern.Get(next)
	if err != nil {
		m.status = err.Error()
		return
	}
	cfg := m.Player.Matrix().Config()
	cfg.Steps = 0
	m.Player.Matrix().SetConfig(cfg)
	m.Player.Matrix().SetAlgorithm(algo)
	m.status = "algorithm: " + next
}

func (m *Model) applyColors() {
	start := colorPresets[m.startIdx].c
	var end *rgb.Color
	if m.endIdx > 0 {
		c := colorPresets[m.endIdx-1].c
		end = &c
	}
	m.Player.Matrix().SetColors(start, end)
}

func (m *Model) bake() {
	mtx := m.Player.Matrix()
	name := fmt.Sprintf("%s-%s", strings.ToLower(mtx.Algorithm()), time.Now().Format("20060102-150405"))
	seq := mtx.Bake(name)

	dir := m.SaveDir
	if dir == "" {
		dir = "sequences"
	}
	path := filepath.Join(dir, name+".json")
	if err := seq.Save(path); err != nil {
		m.status = fmt.Sprintf("bake failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("baked %d steps -> %s", len(seq.Steps), path)
}

// pushOutputs forwards the latest frame to the optional hardware
// surfaces.
func (m *Model) pushOutputs() {
	if m.Sender != nil {
		if err := m.Sender.Apply(m.Player.Matrix().Values(m.frame.Map)); err != nil {
			m.status = fmt.Sprintf("artnet: %v", err)
		}
	}
	if m.mirror != nil {
		m.mirror.Show(m.frame.Map, m.frame.Running)
	}
}

func nextFade(cur time.Duration) time.Duration {
	for i, f := range fadeCycle {
		if cur <= f {
			return fadeCycle[(i+1)%len(fadeCycle)]
		}
	}
	return fadeCycle[0]
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.helpView()
	}

	mtx := m.Player.Matrix()
	cfg := mtx.Config()
	steps := mtx.StepsCount()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())

	playState := "STOP"
	if m.frame.Running {
		playState = "PLAY"
	}
	deviceStatus := ""
	if m.controller != nil {
		deviceStatus = "  LP:X"
	}
	header := headerStyle.Render(fmt.Sprintf("rgbseq  %s  %s  step:%02d/%02d%s",
		playState, mtx.Algorithm(), m.frame.Index+1, steps, deviceStatus))

	grid := widgets.RenderGrid(m.frame.Map)
	strip := dimStyle.Render(m.stepStrip(steps, !mtx.Running()))
	ramp := widgets.RenderRamp(m.rampColors(cfg, steps))

	modeLine := dimStyle.Render(fmt.Sprintf("%s %s  blend:%s  control:%s  dimmer:%v",
		cfg.RunOrder, cfg.Direction, cfg.BlendMode, cfg.ControlMode, cfg.DimmerControl))
	timeLine := dimStyle.Render(fmt.Sprintf("duration:%dms  fade in:%dms  fade out:%dms",
		cfg.Duration.Milliseconds(), cfg.FadeIn.Milliseconds(), cfg.FadeOut.Milliseconds()))
	colorLine := dimStyle.Render(m.colorLine(cfg))

	help := dimStyle.Render("space:play  enter:restart  a:algo  r:order  d:dir  b:blend  m:control  " +
		"c/e:colors  [/]:duration  f/g:fades  +/-/0:steps  x:dimmer  s:bake  ?:help  q:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	if grid != "" {
		out.WriteString(grid)
		out.WriteString("\n")
	}
	if strip != "" {
		out.WriteString(strip)
		out.WriteString("\n")
	}
	if ramp != "" {
		out.WriteString(ramp)
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.WriteString(modeLine)
	out.WriteString("\n")
	out.WriteString(timeLine)
	out.WriteString("\n")
	out.WriteString(colorLine)
	out.WriteString("\n\n")
	out.WriteString(help)

	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(statusStyle.Render(m.status))
	}

	return out.String()
}

// helpView is the full-screen key reference behind the ? key.
func (m Model) helpView() string {
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	keys := widgets.RenderKeyHelp([]widgets.KeySection{
		{Title: "Transport", Keys: []widgets.KeyBinding{
			{Key: "space", Desc: "play / pause"},
			{Key: "enter", Desc: "restart from the seed step"},
		}},
		{Title: "Effect", Keys: []widgets.KeyBinding{
			{Key: "a", Desc: "next pattern algorithm"},
			{Key: "r", Desc: "run order: loop, single shot, ping pong"},
			{Key: "d", Desc: "direction: forward or backward"},
			{Key: "b", Desc: "blend mode"},
			{Key: "m", Desc: "control mode: rgb, amber, white, uv, dimmer, shutter"},
			{Key: "x", Desc: "toggle dimmer channel writes"},
			{Key: "c / e", Desc: "cycle start / end color"},
		}},
		{Title: "Timing", Keys: []widgets.KeyBinding{
			{Key: "[ / ]", Desc: "shorter / longer step duration"},
			{Key: "f / g", Desc: "next fade in / fade out time"},
			{Key: "+ / -", Desc: "override the step count"},
			{Key: "0", Desc: "back to the pattern's own step count"},
		}},
		{Title: "Output", Keys: []widgets.KeyBinding{
			{Key: "s", Desc: "bake the traversal to a sequence file"},
		}},
	})

	cfg := m.Player.Matrix().Config()
	sym := m.Theme.Symbols
	start := cfg.StartColor
	legend := []string{
		"Colors",
		widgets.RenderLegendItem([3]uint8{start.R, start.G, start.B}, sym.Solid, "start", start.Hex()),
	}
	if cfg.EndColor != nil {
		end := *cfg.EndColor
		legend = append(legend,
			widgets.RenderLegendItem([3]uint8{end.R, end.G, end.B}, sym.Solid, "end", end.Hex()))
	} else {
		legend = append(legend, fmt.Sprintf("  %c end - none, every step keeps the start color", sym.Empty))
	}
	legend = append(legend, fmt.Sprintf("  %c step   %c playhead   %c single shot finished",
		sym.StepDot, sym.StepPlayhead, sym.StepDone))

	return "\n" + headerStyle.Render("rgbseq keys") + "\n\n" +
		dimStyle.Render(keys) + "\n\n" +
		dimStyle.Render(strings.Join(legend, "\n")) + "\n\n" +
		dimStyle.Render("? or esc returns to the preview")
}

// stepStrip draws the traversal with the playhead on the current index.
// A single shot that ran out of steps gets the done marker instead.
func (m Model) stepStrip(total int, done bool) string {
	if total <= 0 {
		return ""
	}
	mark := m.Theme.Symbols.StepPlayhead
	if done {
		mark = m.Theme.Symbols.StepDone
	}
	var b strings.Builder
	for i := 0; i < total; i++ {
		if i == m.frame.Index {
			b.WriteRune(mark)
		} else {
			b.WriteRune(m.Theme.Symbols.StepDot)
		}
		b.WriteRune(' ')
	}
	return strings.TrimRight(b.String(), " ")
}

// rampColors samples the exact per-step colors the cursor would produce.
func (m Model) rampColors(cfg matrix.Config, steps int) []rgb.Color {
	if steps <= 0 {
		return nil
	}
	start, end := cfg.Colors()
	var cur matrix.Cursor
	cur.Reset(cfg.RunOrder, matrix.Forward, steps, start, end)
	colors := make([]rgb.Color, steps)
	for i := range colors {
		colors[i] = cur.StepColor(i)
	}
	return colors
}

func (m Model) colorLine(cfg matrix.Config) string {
	start := cfg.StartColor
	solid := m.Theme.Symbols.Solid
	line := fmt.Sprintf("start %s %s", widgets.RenderPad([3]uint8{start.R, start.G, start.B}, solid), start.Hex())
	if cfg.EndColor != nil {
		end := *cfg.EndColor
		line += fmt.Sprintf("   end %s %s", widgets.RenderPad([3]uint8{end.R, end.G, end.B}, solid), end.Hex())
	} else {
		line += fmt.Sprintf("   end %c none", m.Theme.Symbols.Empty)
	}
	return line
}
