// Package coordflip centralizes the player-2 coordinate transform used at
// every boundary crossing: snapshot out (State -> player) and snapshot in
// (player -> CommandGiver). Per the design
// notes this is kept in exactly one place because off-by-one errors in
// this transform are the easiest mistake to make, and the easiest to
// silently duplicate incorrectly if reimplemented at each call site.
package coordflip

import "arenahost/internal/vecmath"

// FlipBot maps a real-valued bot position between player 1's and
// player 2's frames: (x, y) <-> (mapSize - x, mapSize - y). The transform
// is its own inverse, so the same function is used for both directions.
func FlipBot(p vecmath.DoubleVec2D, mapSize int) vecmath.DoubleVec2D {
	return vecmath.DoubleVec2D{X: float64(mapSize) - p.X, Y: float64(mapSize) - p.Y}
}

// FlipTower maps an integer tower/flag offset between frames:
// (x, y) <-> (mapSize - 1 - x, mapSize - 1 - y). Also its own inverse.
func FlipTower(o vecmath.Vec2D, mapSize int) vecmath.Vec2D {
	return vecmath.Vec2D{X: mapSize - 1 - o.X, Y: mapSize - 1 - o.Y}
}
