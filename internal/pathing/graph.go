// Package pathing implements the A*-based navigator over a waypoint graph
// derived from the traversable portion of the map plus dynamic tower
// obstacles, in the visibility-graph style of classic any-angle path
// planners.
package pathing

import (
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
)

// Graph is an undirected visibility graph over waypoints: every lattice
// point touching both blocked and open cells, counting outside the map as
// blocked (see concaveCorners). Edges connect waypoint pairs that are
// directly reachable; weights are Euclidean distances. The graph is
// recomputed whenever traversability changes (a tower is built or
// destroyed).
type Graph struct {
	m     *worldmap.Map
	nodes []vecmath.DoubleVec2D
	index map[vecmath.DoubleVec2D]int
	adj   [][]edge
}

type edge struct {
	to     int
	weight float64
}

// NewGraph builds the waypoint graph for the given map's current
// traversability.
func NewGraph(m *worldmap.Map) *Graph {
	g := &Graph{m: m}
	g.Rebuild()
	return g
}

// Rebuild recomputes waypoints and edges from the map's current
// traversability. Must be called after any BuildTower/DestroyTower.
func (g *Graph) Rebuild() {
	g.nodes = concaveCorners(g.m)
	g.index = make(map[vecmath.DoubleVec2D]int, len(g.nodes))
	for i, n := range g.nodes {
		g.index[n] = i
	}
	g.adj = make([][]edge, len(g.nodes))
	for i := range g.nodes {
		for j := i + 1; j < len(g.nodes); j++ {
			if directlyReachable(g.nodes[i], g.nodes[j], g.m) {
				w := g.nodes[i].Distance(g.nodes[j])
				g.adj[i] = append(g.adj[i], edge{j, w})
				g.adj[j] = append(g.adj[j], edge{i, w})
			}
		}
	}
}

// NodeCount returns the number of permanent waypoints in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Nodes returns the permanent waypoints, insertion order, for test
// inspection of the graph's stability across rebuilds.
func (g *Graph) Nodes() []vecmath.DoubleVec2D {
	out := make([]vecmath.DoubleVec2D, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// EdgeCount returns the total number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, adj := range g.adj {
		n += len(adj)
	}
	return n / 2
}

// concaveCorners enumerates candidate waypoints: lattice points that sit on
// a corner of the blocked region (some but not all of the four cells
// touching the point are impassable), since only such points can anchor a
// shortest any-angle path around an obstacle.
func concaveCorners(m *worldmap.Map) []vecmath.DoubleVec2D {
	size := m.Size()
	seen := make(map[vecmath.Vec2D]bool)
	var out []vecmath.DoubleVec2D

	blockedAt := func(x, y int) bool {
		off := vecmath.Vec2D{X: x, Y: y}
		if !m.InBounds(off) {
			return true // treat outside the map as blocked
		}
		return !m.Traversable(off)
	}

	for y := 0; y <= size; y++ {
		for x := 0; x <= size; x++ {
			nw := blockedAt(x-1, y-1)
			ne := blockedAt(x, y-1)
			sw := blockedAt(x-1, y)
			se := blockedAt(x, y)
			blockedCount := boolCount(nw, ne, sw, se)
			if blockedCount == 0 || blockedCount == 4 {
				continue
			}
			p := vecmath.Vec2D{X: x, Y: y}
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p.ToDouble())
		}
	}
	return out
}

func boolCount(bs ...bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}
