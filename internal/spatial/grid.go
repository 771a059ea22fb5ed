// Package spatial provides a cache-friendly fixed-cell broad-phase index
// used by the authoritative world state to resolve blast-radius queries
// without an O(actors²) scan every turn.
package spatial

import "math"

// ActorGrid buckets actor indices into fixed-size cells over the match map.
// Cells store plain indices (not pointers) into the caller's actor slice,
// so rebuilding a cell per turn costs no allocation once warmed up.
type ActorGrid struct {
	cellSize    float64
	invCellSize float64
	cols, rows  int
	cells       [][]int
	scratch     []int
}

// NewActorGrid builds a grid covering [0, worldSize) on both axes.
// cellSize should be close to the largest blast radius in play so a query
// touches only a handful of neighboring cells.
func NewActorGrid(worldSize float64, cellSize float64, maxActors int) *ActorGrid {
	cols := int(math.Ceil(worldSize / cellSize))
	rows := cols
	if cols < 1 {
		cols = 1
		rows = 1
	}

	cells := make([][]int, cols*rows)
	avgPerCell := maxActors / len(cells)
	if avgPerCell < 4 {
		avgPerCell = 4
	}
	for i := range cells {
		cells[i] = make([]int, 0, avgPerCell)
	}

	return &ActorGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       cells,
		scratch:     make([]int, 0, 64),
	}
}

// Clear empties every cell while keeping its backing array.
func (g *ActorGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *ActorGrid) clampedCell(x, y float64) (int, int) {
	col := int(x * g.invCellSize)
	row := int(y * g.invCellSize)
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// Insert places actorIndex into the cell containing (x, y).
func (g *ActorGrid) Insert(actorIndex int, x, y float64) {
	col, row := g.clampedCell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], actorIndex)
}

// QueryRadius returns candidate actor indices whose cell overlaps a square
// of side 2*radius centered at (cx, cy). Candidates may lie outside the
// true circular radius; callers must narrow-phase filter by exact
// distance. The returned slice is reused across calls — copy it if it
// must outlive the next QueryRadius call.
func (g *ActorGrid) QueryRadius(cx, cy, radius float64) []int {
	g.scratch = g.scratch[:0]

	minCol, minRow := g.clampedCell(cx-radius, cy-radius)
	maxCol, maxRow := g.clampedCell(cx+radius, cy+radius)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			g.scratch = append(g.scratch, g.cells[row*g.cols+col]...)
		}
	}
	return g.scratch
}
