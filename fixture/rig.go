package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DemoGroup is the group name Demo patches its grid under.
const DemoGroup = "grid"

// Rig aggregates the patched fixtures and their grid groups.
type Rig struct {
	Fixtures map[ID]*Fixture   `json:"fixtures"`
	Groups   map[string]*Group `json:"groups"`
}

// NewRig creates an empty rig.
func NewRig() *Rig {
	return &Rig{
		Fixtures: map[ID]*Fixture{},
		Groups:   map[string]*Group{},
	}
}

// Fixture looks up a fixture by id.
func (r *Rig) Fixture(id ID) (*Fixture, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.Fixtures[id]
	return f, ok
}

// Group looks up a group by name.
func (r *Rig) Group(name string) (*Group, bool) {
	if r == nil {
		return nil, false
	}
	g, ok := r.Groups[name]
	return g, ok
}

// AddFixture patches a fixture into the rig.
func (r *Rig) AddFixture(f *Fixture) {
	if r.Fixtures == nil {
		r.Fixtures = map[ID]*Fixture{}
	}
	r.Fixtures[f.ID] = f
}

// AddGroup registers a group under its name.
func (r *Rig) AddGroup(g *Group) {
	if r.Groups == nil {
		r.Groups = map[string]*Group{}
	}
	r.Groups[g.Name] = g
}

// GroupNames lists the rig's group names, sorted.
func (r *Rig) GroupNames() []string {
	names := make([]string, 0, len(r.Groups))
	for name := range r.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a rig from a JSON file.
func Load(path string) (*Rig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rig: %w", err)
	}
	var r Rig
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse rig %s: %w", path, err)
	}
	return &r, nil
}

// Save writes the rig as indented JSON, creating parent directories as
// needed.
func (r *Rig) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rig: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create rig dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write rig: %w", err)
	}
	return nil
}

// Demo builds a dense width x height grid of 4-channel fixtures (master,
// red, green, blue) patched back to back, with a group named DemoGroup
// mapping every cell. The patch spills into the next universe when one
// fills up.
func Demo(width, height int) *Rig {
	r := NewRig()
	g := NewGroup(DemoGroup, width, height)

	id := ID(1)
	slot := 0
	universe := uint16(0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if slot+4 > 512 {
				universe++
				slot = 0
			}
			layout := NewHeadLayout()
			layout.Master = 0
			layout.Red = 1
			layout.Green = 2
			layout.Blue = 3
			r.AddFixture(&Fixture{
				ID:       id,
				Name:     fmt.Sprintf("par-%d", id),
				Universe: universe,
				Address:  uint16(slot),
				Heads:    []HeadLayout{layout},
			})
			g.SetHead(Point{X: x, Y: y}, Head{Fixture: id, Index: 0})
			id++
			slot += 4
		}
	}
	r.AddGroup(g)
	return r
}
