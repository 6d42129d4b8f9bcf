package fixture

import "fmt"

// Point addresses one cell of a group grid. X is the column, Y the row,
// both from the top-left corner.
type Point struct {
	X int
	Y int
}

// MarshalText encodes the point as "x,y" so it can key JSON maps.
func (p Point) MarshalText() ([]byte, error) {
	return fmt.Appendf(nil, "%d,%d", p.X, p.Y), nil
}

// UnmarshalText parses the "x,y" form.
func (p *Point) UnmarshalText(b []byte) error {
	if _, err := fmt.Sscanf(string(b), "%d,%d", &p.X, &p.Y); err != nil {
		return fmt.Errorf("bad point %q: %w", b, err)
	}
	return nil
}

// Head is one sub-head of a fixture, as placed on a group grid.
type Head struct {
	Fixture ID  `json:"fixture"`
	Index   int `json:"index"`
}

// Group arranges fixture heads on a width x height grid. The mapping is
// sparse; cells without a head still render in previews but drive no
// output channels.
type Group struct {
	Name   string         `json:"name"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Heads  map[Point]Head `json:"heads"`
}

// NewGroup creates an empty group of the given size.
func NewGroup(name string, width, height int) *Group {
	return &Group{
		Name:   name,
		Width:  width,
		Height: height,
		Heads:  map[Point]Head{},
	}
}

// Size returns the group's grid dimensions.
func (g *Group) Size() (width, height int) {
	if g == nil {
		return 0, 0
	}
	return g.Width, g.Height
}

// HeadAt looks up the head mapped to a cell.
func (g *Group) HeadAt(p Point) (Head, bool) {
	if g == nil {
		return Head{}, false
	}
	h, ok := g.Heads[p]
	return h, ok
}

// SetHead maps a cell to a head, growing the grid when the cell lies
// outside the current bounds.
func (g *Group) SetHead(p Point, h Head) {
	if g.Heads == nil {
		g.Heads = map[Point]Head{}
	}
	g.Heads[p] = h
	if p.X >= g.Width {
		g.Width = p.X + 1
	}
	if p.Y >= g.Height {
		g.Height = p.Y + 1
	}
}
