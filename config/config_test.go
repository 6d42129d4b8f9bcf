package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.GridWidth != 8 || cfg.GridHeight != 8 {
		t.Errorf("default grid = %dx%d, want 8x8", cfg.GridWidth, cfg.GridHeight)
	}
	if cfg.Group != "grid" {
		t.Errorf("default group = %q", cfg.Group)
	}
	if !cfg.Launchpad.Mirror {
		t.Error("launchpad mirroring should default on")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.json")

	cfg := DefaultConfig()
	cfg.RigPath = "/tmp/rig.json"
	cfg.TickMs = 33
	cfg.DebugLog = "/tmp/rgbseq.log"
	cfg.ArtNet = ArtNetConfig{Enabled: true, Host: "10.0.0.7"}
	cfg.UI.LastAlgorithm = "Stripe"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.RigPath != cfg.RigPath || got.TickMs != 33 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.DebugLog != "/tmp/rgbseq.log" {
		t.Errorf("debug log path = %q", got.DebugLog)
	}
	if !got.ArtNet.Enabled || got.ArtNet.Host != "10.0.0.7" {
		t.Errorf("artnet config = %+v", got.ArtNet)
	}
	if got.UI.LastAlgorithm != "Stripe" {
		t.Errorf("ui config = %+v", got.UI)
	}
}

func TestTick(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Tick(); got != 20*time.Millisecond {
		t.Errorf("default tick = %v", got)
	}
	cfg.TickMs = 0
	if got := cfg.Tick(); got != 20*time.Millisecond {
		t.Errorf("zero tick = %v, want default", got)
	}
	cfg.TickMs = 50
	if got := cfg.Tick(); got != 50*time.Millisecond {
		t.Errorf("tick = %v, want 50ms", got)
	}
}
