package coordflip

import (
	"testing"

	"arenahost/internal/vecmath"
)

func TestFlipBotIsItsOwnInverse(t *testing.T) {
	p := vecmath.DoubleVec2D{X: 12.5, Y: 40}
	flipped := FlipBot(p, 100)
	back := FlipBot(flipped, 100)
	if back != p {
		t.Fatalf("FlipBot(FlipBot(p)) = %v, want %v", back, p)
	}
}

func TestFlipTowerIsItsOwnInverse(t *testing.T) {
	o := vecmath.Vec2D{X: 3, Y: 7}
	flipped := FlipTower(o, 20)
	back := FlipTower(flipped, 20)
	if back != o {
		t.Fatalf("FlipTower(FlipTower(o)) = %v, want %v", back, o)
	}
}

func TestFlipTowerCorners(t *testing.T) {
	if got := FlipTower(vecmath.Vec2D{X: 0, Y: 0}, 10); got != (vecmath.Vec2D{X: 9, Y: 9}) {
		t.Fatalf("corner flip = %v, want {9 9}", got)
	}
}
