package pathing

import "arenahost/internal/vecmath"

// TowerOffset derives the integer tower-placement cell from a bot's real
// valued destination, addressing the same cell from either player's
// flipped frame: player 1 floors, player 2 ceils-minus-one.
func TowerOffset(dest vecmath.DoubleVec2D, isPlayer2 bool) vecmath.Vec2D {
	if isPlayer2 {
		c := dest.Ceil()
		return vecmath.Vec2D{X: c.X - 1, Y: c.Y - 1}
	}
	return dest.Floor()
}
