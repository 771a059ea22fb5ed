package pathing

import (
	"container/heap"

	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
)

// Planner answers shortest-path queries over a Graph, adding the query's
// start and end points as temporary waypoints linked to every permanent
// waypoint they can directly reach.
type Planner struct {
	graph *Graph
	m     *worldmap.Map
}

// NewPlanner creates a planner bound to the given map. The planner owns no
// state of its own beyond a reference to the graph; rebuilding the graph
// (on tower build/destroy) is the caller's responsibility.
func NewPlanner(m *worldmap.Map) *Planner {
	return &Planner{graph: NewGraph(m), m: m}
}

// Graph exposes the underlying waypoint graph, mainly for tests asserting
// rebuild stability.
func (p *Planner) Graph() *Graph { return p.graph }

// RebuildGraph recomputes the waypoint graph from the map's current
// traversability. Call after any tower is built or destroyed.
func (p *Planner) RebuildGraph() { p.graph.Rebuild() }

// Path returns the sequence of waypoints from just after start up to and
// including end, following the shortest route around obstacles. An empty,
// non-nil slice return means start == end (already there); a nil return
// means end is unreachable.
func (p *Planner) Path(start, end vecmath.DoubleVec2D) []vecmath.DoubleVec2D {
	if start.Equals(end) {
		return []vecmath.DoubleVec2D{}
	}

	nodes := p.graph.nodes
	n := len(nodes)

	// Temporary waypoints: start is index n, end is index n+1.
	startIdx, endIdx := n, n+1
	total := n + 2

	links := make([][]edge, total)
	copy(links, p.graph.adj)

	linkTemp := func(idx int, pt vecmath.DoubleVec2D) {
		for i, node := range nodes {
			if directlyReachable(pt, node, p.m) {
				w := pt.Distance(node)
				links[idx] = append(links[idx], edge{i, w})
				links[i] = append(links[i], edge{idx, w})
			}
		}
	}
	linkTemp(startIdx, start)
	linkTemp(endIdx, end)
	if directlyReachable(start, end, p.m) {
		w := start.Distance(end)
		links[startIdx] = append(links[startIdx], edge{endIdx, w})
		links[endIdx] = append(links[endIdx], edge{startIdx, w})
	}

	pointOf := func(idx int) vecmath.DoubleVec2D {
		if idx == startIdx {
			return start
		}
		if idx == endIdx {
			return end
		}
		return nodes[idx]
	}

	path, ok := aStar(total, startIdx, endIdx, links, pointOf)
	if !ok {
		return nil
	}

	out := make([]vecmath.DoubleVec2D, 0, len(path)-1)
	for _, idx := range path[1:] {
		out = append(out, pointOf(idx))
	}
	return out
}

// NextPosition walks the path from source to dest, consuming up to speed
// units of Euclidean distance, and returns the exact point reached
// (possibly mid-segment). Returns the null sentinel if dest is unreachable
// from source. If source already equals dest, returns source unchanged for
// any positive speed.
func (p *Planner) NextPosition(source, dest vecmath.DoubleVec2D, speed float64) (vecmath.DoubleVec2D, bool) {
	if source.Equals(dest) {
		return source, true
	}
	path := p.Path(source, dest)
	if path == nil {
		return vecmath.NullDouble, false
	}

	remaining := speed
	cur := source
	for _, next := range path {
		segLen := cur.Distance(next)
		if segLen <= remaining {
			remaining -= segLen
			cur = next
			continue
		}
		return cur.MoveTowards(next, remaining), true
	}
	return cur, true
}

// --- A* over an explicit adjacency list, Euclidean heuristic, stable
// insertion-order tie-break. ---

type aStarItem struct {
	node     int
	priority float64
	seq      int // insertion order, for stable tie-breaking
	index    int
}

type aStarQueue []*aStarItem

func (q aStarQueue) Len() int { return len(q) }
func (q aStarQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q aStarQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *aStarQueue) Push(x interface{}) {
	item := x.(*aStarItem)
	item.index = len(*q)
	*q = append(*q, item)
}
func (q *aStarQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

func aStar(total, start, goal int, adj [][]edge, pointOf func(int) vecmath.DoubleVec2D) ([]int, bool) {
	const inf = 1e18
	gScore := make([]float64, total)
	prev := make([]int, total)
	visited := make([]bool, total)
	for i := range gScore {
		gScore[i] = inf
		prev[i] = -1
	}
	gScore[start] = 0

	goalPt := pointOf(goal)
	h := func(n int) float64 { return pointOf(n).Distance(goalPt) }

	pq := &aStarQueue{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, &aStarItem{node: start, priority: h(start), seq: seq})
	seq++

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*aStarItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == goal {
			break
		}
		for _, e := range adj[cur.node] {
			if visited[e.to] {
				continue
			}
			tentative := gScore[cur.node] + e.weight
			if tentative < gScore[e.to] {
				gScore[e.to] = tentative
				prev[e.to] = cur.node
				heap.Push(pq, &aStarItem{node: e.to, priority: tentative + h(e.to), seq: seq})
				seq++
			}
		}
	}

	if gScore[goal] >= inf {
		return nil, false
	}

	var path []int
	for n := goal; n != -1; n = prev[n] {
		path = append([]int{n}, path...)
	}
	return path, true
}
