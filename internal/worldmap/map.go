// Package worldmap holds the fixed-size terrain grid that backs a match.
package worldmap

import (
	"fmt"

	"arenahost/internal/vecmath"
)

// Terrain is the type of a single map cell.
type Terrain byte

const (
	Land Terrain = iota
	Water
	Flag
	Tower
)

func (t Terrain) String() string {
	switch t {
	case Land:
		return "LAND"
	case Water:
		return "WATER"
	case Flag:
		return "FLAG"
	case Tower:
		return "TOWER"
	default:
		return "UNKNOWN"
	}
}

// Traversable reports whether an actor may stand on or cross this cell.
func (t Terrain) Traversable() bool {
	return t == Land || t == Flag
}

// Map is a square grid of terrain cells. Its shape (side length) never
// changes; the only mutation is a LAND or FLAG cell flipping to TOWER when
// a tower is built, and back to its original terrain when it is destroyed.
type Map struct {
	size  int
	cells []Terrain // row-major, cells[y*size+x]
	flags []vecmath.Vec2D
}

// New builds a size x size map, all LAND, from an optional list of FLAG and
// WATER cell overrides. overrides maps offset -> terrain; any cell not
// named defaults to LAND.
func New(size int, overrides map[vecmath.Vec2D]Terrain) *Map {
	m := &Map{
		size:  size,
		cells: make([]Terrain, size*size),
	}
	for off, terrain := range overrides {
		if !m.InBounds(off) {
			continue
		}
		m.cells[m.index(off)] = terrain
		if terrain == Flag {
			m.flags = append(m.flags, off)
		}
	}
	return m
}

// Size returns the side length of the square grid.
func (m *Map) Size() int { return m.size }

func (m *Map) index(off vecmath.Vec2D) int { return off.Y*m.size + off.X }

// InBounds reports whether off lies within [0, size) on both axes.
func (m *Map) InBounds(off vecmath.Vec2D) bool {
	return off.X >= 0 && off.X < m.size && off.Y >= 0 && off.Y < m.size
}

// At returns the terrain at off. Callers must check InBounds first;
// out-of-range offsets return WATER as a safe impassable default.
func (m *Map) At(off vecmath.Vec2D) Terrain {
	if !m.InBounds(off) {
		return Water
	}
	return m.cells[m.index(off)]
}

// Traversable reports whether off is in bounds and not impassable.
func (m *Map) Traversable(off vecmath.Vec2D) bool {
	return m.InBounds(off) && m.At(off).Traversable()
}

// FlagOffsets returns the fixed set of FLAG cell offsets, insertion order.
func (m *Map) FlagOffsets() []vecmath.Vec2D {
	return m.flags
}

// BuildTower flips a LAND or FLAG cell to TOWER. Fails if the cell is out
// of bounds, WATER, or already a TOWER.
func (m *Map) BuildTower(off vecmath.Vec2D) error {
	if !m.InBounds(off) {
		return fmt.Errorf("worldmap: offset %+v out of bounds", off)
	}
	cur := m.At(off)
	if cur == Tower {
		return fmt.Errorf("worldmap: offset %+v already has a tower", off)
	}
	if cur == Water {
		return fmt.Errorf("worldmap: cannot build on WATER at %+v", off)
	}
	m.cells[m.index(off)] = Tower
	return nil
}

// DestroyTower flips a TOWER cell back to FLAG if it is one of the map's
// flag offsets, otherwise to LAND. Fails if the cell is not currently a
// TOWER.
func (m *Map) DestroyTower(off vecmath.Vec2D) error {
	if !m.InBounds(off) {
		return fmt.Errorf("worldmap: offset %+v out of bounds", off)
	}
	if m.At(off) != Tower {
		return fmt.Errorf("worldmap: no tower to destroy at %+v", off)
	}
	m.cells[m.index(off)] = Land
	for _, f := range m.flags {
		if f == off {
			m.cells[m.index(off)] = Flag
		}
	}
	return nil
}
