package rgb

// Map is a row-major grid of colors, one entry per matrix cell.
// It is rebuilt for every step; only the most recent map is kept.
type Map [][]Color

// NewMap allocates a height x width map, all cells black.
func NewMap(width, height int) Map {
	if width <= 0 || height <= 0 {
		return nil
	}
	m := make(Map, height)
	for y := range m {
		m[y] = make([]Color, width)
	}
	return m
}

// Size returns the map's width and height.
func (m Map) Size() (width, height int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m[0]), len(m)
}

// Empty reports whether the map has no cells.
func (m Map) Empty() bool {
	w, h := m.Size()
	return w == 0 || h == 0
}

// Clone returns an independent copy of the map.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for y, row := range m {
		out[y] = make([]Color, len(row))
		copy(out[y], row)
	}
	return out
}
