package sequence

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSortValues(t *testing.T) {
	shuffles := [][]Value{
		{
			{Fixture: 2, Channel: 1, Value: 10},
			{Fixture: 1, Channel: 3, Value: 20},
			{Fixture: 1, Channel: 0, Value: 30},
			{Fixture: 2, Channel: 0, Value: 40},
		},
		{
			{Fixture: 1, Channel: 0, Value: 30},
			{Fixture: 2, Channel: 0, Value: 40},
			{Fixture: 2, Channel: 1, Value: 10},
			{Fixture: 1, Channel: 3, Value: 20},
		},
	}

	want := []Value{
		{Fixture: 1, Channel: 0, Value: 30},
		{Fixture: 1, Channel: 3, Value: 20},
		{Fixture: 2, Channel: 0, Value: 40},
		{Fixture: 2, Channel: 1, Value: 10},
	}

	for i, vals := range shuffles {
		SortValues(vals)
		for j := range want {
			if vals[j] != want[j] {
				t.Errorf("shuffle %d: values[%d] = %+v, want %+v", i, j, vals[j], want[j])
			}
		}
	}
}

func TestMillisJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.json")
	s := &Sequence{
		Name:         "wipe",
		DurationMode: SpeedPerStep,
		FadeInMode:   SpeedPerStep,
		Steps: []Step{
			{Index: 0, Hold: Millis(400 * time.Millisecond), Duration: Millis(500 * time.Millisecond), FadeIn: Millis(100 * time.Millisecond)},
			{Index: 1, Hold: Millis(400 * time.Millisecond), Duration: Millis(500 * time.Millisecond), FadeIn: Millis(100 * time.Millisecond)},
		},
	}
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Steps[0].Duration.Duration() != 500*time.Millisecond {
		t.Errorf("duration = %v, want 500ms", got.Steps[0].Duration.Duration())
	}
	if got.Steps[1].FadeIn.Duration() != 100*time.Millisecond {
		t.Errorf("fadeIn = %v, want 100ms", got.Steps[1].FadeIn.Duration())
	}
	if got.DurationMode != SpeedPerStep || got.FadeInMode != SpeedPerStep {
		t.Errorf("modes = %v/%v, want perstep/perstep", got.DurationMode, got.FadeInMode)
	}
	if got.FadeOutMode != SpeedDefault {
		t.Errorf("fadeOutMode = %v, want default", got.FadeOutMode)
	}
}

func TestTotalDuration(t *testing.T) {
	s := &Sequence{Steps: []Step{
		{Duration: Millis(200 * time.Millisecond)},
		{Duration: Millis(300 * time.Millisecond)},
	}}
	if got := s.TotalDuration(); got != 500*time.Millisecond {
		t.Errorf("TotalDuration = %v, want 500ms", got)
	}
}

func TestSpeedModeNames(t *testing.T) {
	tests := []struct {
		mode SpeedMode
		want string
	}{
		{SpeedDefault, "default"},
		{SpeedCommon, "common"},
		{SpeedPerStep, "perstep"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.mode, got, tt.want)
		}
	}

	var m SpeedMode
	if err := m.UnmarshalJSON([]byte(`"bogus"`)); err == nil {
		t.Error("unknown speed mode unmarshalled without error")
	}
}
