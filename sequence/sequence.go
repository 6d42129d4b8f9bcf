// Package sequence holds the baked form of a matrix effect: an ordered
// list of steps whose channel values a playback engine can fade between.
package sequence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"rgbseq/fixture"
)

// Millis is a duration stored as whole milliseconds in JSON files.
type Millis time.Duration

// Duration converts back to a time.Duration.
func (m Millis) Duration() time.Duration { return time.Duration(m) }

func (m Millis) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(m).Milliseconds())
}

func (m *Millis) UnmarshalJSON(b []byte) error {
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	*m = Millis(time.Duration(ms) * time.Millisecond)
	return nil
}

// SpeedMode says how fade and duration timings apply across steps.
type SpeedMode int

const (
	SpeedDefault SpeedMode = iota // inherit the sequence-wide timing
	SpeedCommon                   // one timing shared by all steps
	SpeedPerStep                  // every step carries its own timing
)

var speedModeNames = []string{"default", "common", "perstep"}

func (m SpeedMode) String() string {
	if m < 0 || int(m) >= len(speedModeNames) {
		return "default"
	}
	return speedModeNames[m]
}

func (m SpeedMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *SpeedMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for i, name := range speedModeNames {
		if name == s {
			*m = SpeedMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown speed mode %q", s)
}

// Value is one channel assignment within a step or scene.
type Value struct {
	Fixture fixture.ID      `json:"fixture"`
	Channel fixture.Channel `json:"channel"`
	Value   uint8           `json:"value"`
}

// SortValues orders values by fixture id then channel. Baked output must
// be identical across runs, so emitters sort before storing.
func SortValues(values []Value) {
	sort.Slice(values, func(i, j int) bool {
		if values[i].Fixture != values[j].Fixture {
			return values[i].Fixture < values[j].Fixture
		}
		return values[i].Channel < values[j].Channel
	})
}

// Step is one baked step: the channel values to reach, how long to fade
// there and how long to hold.
type Step struct {
	Index    int     `json:"index"`
	Hold     Millis  `json:"hold"`
	Duration Millis  `json:"duration"`
	FadeIn   Millis  `json:"fadeIn"`
	FadeOut  Millis  `json:"fadeOut"`
	Values   []Value `json:"values"`
}

// SortValues puts the step's values into their stable order.
func (s *Step) SortValues() {
	SortValues(s.Values)
}

// Sequence is the baked artifact: a blackout scene plus ordered steps and
// the timing modes playback should honor.
type Sequence struct {
	Name         string    `json:"name"`
	Group        string    `json:"group"`
	DurationMode SpeedMode `json:"durationMode"`
	FadeInMode   SpeedMode `json:"fadeInMode"`
	FadeOutMode  SpeedMode `json:"fadeOutMode"`
	Scene        []Value   `json:"scene"`
	Steps        []Step    `json:"steps"`
}

// TotalDuration sums the step durations.
func (s *Sequence) TotalDuration() time.Duration {
	var total time.Duration
	for _, step := range s.Steps {
		total += step.Duration.Duration()
	}
	return total
}

// ValueCount counts the channel values across all steps.
func (s *Sequence) ValueCount() int {
	n := 0
	for _, step := range s.Steps {
		n += len(step.Values)
	}
	return n
}

// Save writes the sequence as indented JSON, creating parent directories
// as needed.
func (s *Sequence) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sequence: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create sequence dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write sequence: %w", err)
	}
	return nil
}

// Load reads a sequence from a JSON file.
func Load(path string) (*Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sequence: %w", err)
	}
	var s Sequence
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse sequence %s: %w", path, err)
	}
	return &s, nil
}
