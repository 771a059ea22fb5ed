// Package vecmath provides 2D coordinate arithmetic used throughout the
// match runtime: integer lattice points (Vec2D) for map cells and tower
// offsets, and real-valued points (DoubleVec2D) for actor positions.
package vecmath

import "math"

// NullInt is the sentinel integer coordinate meaning "unset".
var NullInt = Vec2D{X: math.MinInt32, Y: math.MinInt32}

// NullDouble is the sentinel real coordinate meaning "unset".
var NullDouble = DoubleVec2D{X: math.MaxFloat64, Y: math.MaxFloat64}

// Vec2D is an integer lattice point: map cells, tower offsets.
type Vec2D struct {
	X, Y int
}

// IsNull reports whether v is the unset sentinel.
func (v Vec2D) IsNull() bool { return v == NullInt }

// Equals is exact integer equality.
func (v Vec2D) Equals(o Vec2D) bool { return v.X == o.X && v.Y == o.Y }

// Add returns the component-wise sum.
func (v Vec2D) Add(o Vec2D) Vec2D { return Vec2D{v.X + o.X, v.Y + o.Y} }

// ToDouble widens the integer point to a real point.
func (v Vec2D) ToDouble() DoubleVec2D { return DoubleVec2D{float64(v.X), float64(v.Y)} }

// DoubleVec2D is a real-valued point: actor positions, path waypoints.
type DoubleVec2D struct {
	X, Y float64
}

// IsNull reports whether v is the unset sentinel.
func (v DoubleVec2D) IsNull() bool { return v == NullDouble }

// Equals is exact floating-point equality (no epsilon). PathPlanner
// arithmetic is required to be bit-identical across replays, so values it
// produces may be compared exactly; never compare against an externally
// supplied double this way.
func (v DoubleVec2D) Equals(o DoubleVec2D) bool { return v.X == o.X && v.Y == o.Y }

// Add returns the component-wise sum.
func (v DoubleVec2D) Add(o DoubleVec2D) DoubleVec2D {
	return DoubleVec2D{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference v - o.
func (v DoubleVec2D) Sub(o DoubleVec2D) DoubleVec2D {
	return DoubleVec2D{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v DoubleVec2D) Scale(s float64) DoubleVec2D {
	return DoubleVec2D{v.X * s, v.Y * s}
}

// Length returns the Euclidean norm of v.
func (v DoubleVec2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Distance returns the Euclidean distance between v and o.
func (v DoubleVec2D) Distance(o DoubleVec2D) float64 {
	return v.Sub(o).Length()
}

// Floor truncates both components toward negative infinity, producing the
// integer lattice cell containing v.
func (v DoubleVec2D) Floor() Vec2D {
	return Vec2D{int(math.Floor(v.X)), int(math.Floor(v.Y))}
}

// Ceil rounds both components toward positive infinity.
func (v DoubleVec2D) Ceil() Vec2D {
	return Vec2D{int(math.Ceil(v.X)), int(math.Ceil(v.Y))}
}

// MoveTowards returns the point reached by moving from v toward dest by at
// most maxDist Euclidean units. If v is already within maxDist of dest, it
// returns dest exactly.
func (v DoubleVec2D) MoveTowards(dest DoubleVec2D, maxDist float64) DoubleVec2D {
	delta := dest.Sub(v)
	dist := delta.Length()
	if dist <= maxDist || dist == 0 {
		return dest
	}
	return v.Add(delta.Scale(maxDist / dist))
}
