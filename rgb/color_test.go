package rgb

import "testing"

func TestGray(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want uint8
	}{
		{"black", Color{0, 0, 0}, 0},
		{"white", Color{255, 255, 255}, 255},
		{"red", Color{255, 0, 0}, 87},
		{"green", Color{0, 255, 0}, 127},
		{"blue", Color{0, 0, 255}, 39},
		{"mid gray", Color{128, 128, 128}, 128},
	}

	for _, tt := range tests {
		if got := tt.c.Gray(); got != tt.want {
			t.Errorf("%s: Gray() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGrayIdentityOnGrays(t *testing.T) {
	// A gray color's luma is the channel value itself, so converting
	// twice must not drift.
	for v := 0; v <= 255; v++ {
		c := Color{uint8(v), uint8(v), uint8(v)}
		if got := c.Gray(); got != uint8(v) {
			t.Fatalf("Gray() on gray %d = %d", v, got)
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{255, 0, 0}, "#ff0000"},
		{Color{0, 0, 0}, "#000000"},
		{Color{18, 52, 86}, "#123456"},
	}

	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{128, 128},
		{255, 255},
		{256, 255},
		{1000, 255},
	}

	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMapSize(t *testing.T) {
	m := NewMap(5, 3)
	w, h := m.Size()
	if w != 5 || h != 3 {
		t.Errorf("Size() = %dx%d, want 5x3", w, h)
	}
	if m.Empty() {
		t.Error("5x3 map reported empty")
	}

	if !NewMap(0, 3).Empty() {
		t.Error("zero-width map not empty")
	}
	if !(Map{}).Empty() {
		t.Error("nil-row map not empty")
	}
}

func TestMapClone(t *testing.T) {
	m := NewMap(2, 2)
	m[1][1] = Color{10, 20, 30}

	c := m.Clone()
	c[1][1] = Color{99, 99, 99}

	if m[1][1] != (Color{10, 20, 30}) {
		t.Errorf("Clone shares storage: original cell = %v", m[1][1])
	}
}
