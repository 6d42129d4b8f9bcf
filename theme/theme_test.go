package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gpl")
	data := `GIMP Palette
Name: test
Columns: 3
# a comment
255 0 0 red
0 255 0 green
0 0 255 blue
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write palette: %v", err)
	}

	p, err := LoadGPL(path)
	if err != nil {
		t.Fatalf("LoadGPL: %v", err)
	}
	if p.Name != "test" {
		t.Errorf("name = %q, want test", p.Name)
	}
	if len(p.Colors) != 3 {
		t.Fatalf("got %d colors, want 3", len(p.Colors))
	}
	if p.Colors[0] != (RGB{255, 0, 0}) || p.Colors[2] != (RGB{0, 0, 255}) {
		t.Errorf("colors = %v", p.Colors)
	}
}

func TestLoadGPLRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gpl")
	if err := os.WriteFile(path, []byte("GIMP Palette\nName: empty\n"), 0644); err != nil {
		t.Fatalf("write palette: %v", err)
	}
	if _, err := LoadGPL(path); err == nil {
		t.Error("LoadGPL accepted a palette with no colors")
	}
}

func TestLoadGPLOrFallsBack(t *testing.T) {
	if p := LoadGPLOr(""); p.Name != "plasma" {
		t.Errorf("empty path palette = %q, want plasma", p.Name)
	}
	if p := LoadGPLOr("/does/not/exist.gpl"); p.Name != "plasma" {
		t.Errorf("missing file palette = %q, want plasma", p.Name)
	}
}

func TestLookup(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {255, 255, 255}}}

	if got := p.Lookup(0); got != (RGB{0, 0, 0}) {
		t.Errorf("Lookup(0) = %v", got)
	}
	if got := p.Lookup(1); got != (RGB{255, 255, 255}) {
		t.Errorf("Lookup(1) = %v", got)
	}
	if got := p.Lookup(-0.5); got != (RGB{0, 0, 0}) {
		t.Errorf("Lookup(-0.5) = %v", got)
	}
	mid := p.Lookup(0.5)
	if mid[0] < 120 || mid[0] > 135 {
		t.Errorf("Lookup(0.5) = %v, want near gray", mid)
	}
	if mid[0] != mid[1] || mid[1] != mid[2] {
		t.Errorf("Lookup(0.5) = %v, want neutral", mid)
	}
}

func TestIndexClamps(t *testing.T) {
	p := Default()
	if got := p.Index(-3); got != p.Colors[0] {
		t.Errorf("Index(-3) = %v", got)
	}
	if got := p.Index(999); got != p.Colors[len(p.Colors)-1] {
		t.Errorf("Index(999) = %v", got)
	}
}

func TestThemeRoles(t *testing.T) {
	th := New(Default())
	if th.BG() == th.Success() {
		t.Error("background and success roles resolve to the same color")
	}
	if got := string(th.Color(0)); got[0] != '#' || len(got) != 7 {
		t.Errorf("Color(0) = %q, want #rrggbb", got)
	}
}
