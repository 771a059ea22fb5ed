package pathing

import (
	"sort"

	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
)

// directlyReachable reports whether the open segment a-b never crosses an
// impassable cell. For every unit cell whose interior intersects the open
// segment, that cell must be traversable; a segment that merely grazes the
// boundary between two cells only requires one of the two to be
// traversable, since it never enters either cell's interior.
//
// Implementation: walk every sub-segment produced by splitting [a,b] at
// every integer x and every integer y crossed, and test the cell under
// each sub-segment's midpoint. A segment lying exactly on a grid line has
// its midpoints on that line, on the edge shared by two cells; such a
// sub-segment passes if either of those two cells is traversable.
func directlyReachable(a, b vecmath.DoubleVec2D, m *worldmap.Map) bool {
	if a.Equals(b) {
		return true
	}

	ts := breakpoints(a, b)
	for i := 0; i+1 < len(ts); i++ {
		t0, t1 := ts[i], ts[i+1]
		if t1-t0 <= 0 {
			continue
		}
		mid := t0 + (t1-t0)/2
		p := vecmath.DoubleVec2D{
			X: a.X + (b.X-a.X)*mid,
			Y: a.Y + (b.Y-a.Y)*mid,
		}
		cell := p.Floor()
		if !m.Traversable(cell) {
			other := cell
			if p.X == float64(cell.X) {
				other.X--
			} else if p.Y == float64(cell.Y) {
				other.Y--
			}
			if other == cell || !m.Traversable(other) {
				return false
			}
		}
	}
	return true
}

// breakpoints returns the sorted, deduplicated parameter values t in [0,1]
// at which the segment a+(b-a)*t crosses an integer x or integer y line,
// including the endpoints 0 and 1.
func breakpoints(a, b vecmath.DoubleVec2D) []float64 {
	ts := []float64{0, 1}

	dx := b.X - a.X
	if dx != 0 {
		lo, hi := a.X, b.X
		if lo > hi {
			lo, hi = hi, lo
		}
		for xi := ceilInt(lo); xi <= floorInt(hi); xi++ {
			t := (float64(xi) - a.X) / dx
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}

	dy := b.Y - a.Y
	if dy != 0 {
		lo, hi := a.Y, b.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		for yi := ceilInt(lo); yi <= floorInt(hi); yi++ {
			t := (float64(yi) - a.Y) / dy
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}

	sort.Float64s(ts)
	return dedup(ts)
}

func dedup(ts []float64) []float64 {
	out := ts[:0:0]
	for i, t := range ts {
		if i == 0 || t-out[len(out)-1] > 1e-12 {
			out = append(out, t)
		}
	}
	return out
}

func floorInt(v float64) int {
	i := int(v)
	if float64(i) > v {
		i--
	}
	return i
}

func ceilInt(v float64) int {
	i := int(v)
	if float64(i) < v {
		i++
	}
	return i
}
