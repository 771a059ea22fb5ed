package pathing

import (
	"testing"

	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
)

func TestNextPositionSamePointReturnsSource(t *testing.T) {
	m := worldmap.New(20, nil)
	p := NewPlanner(m)
	src := vecmath.DoubleVec2D{X: 5, Y: 5}
	got, ok := p.NextPosition(src, src, 3)
	if !ok || !got.Equals(src) {
		t.Fatalf("expected source unchanged, got %+v ok=%v", got, ok)
	}
}

func TestNextPositionOpenFieldMovesDirectly(t *testing.T) {
	m := worldmap.New(20, nil)
	p := NewPlanner(m)
	src := vecmath.DoubleVec2D{X: 0, Y: 0}
	dest := vecmath.DoubleVec2D{X: 10, Y: 0}
	got, ok := p.NextPosition(src, dest, 4)
	if !ok {
		t.Fatal("expected reachable")
	}
	want := vecmath.DoubleVec2D{X: 4, Y: 0}
	if !got.Equals(want) {
		t.Errorf("got %+v want %+v", got, want)
	}
}

func TestNextPositionArrivesExactlyAtDestWhenSpeedSufficient(t *testing.T) {
	m := worldmap.New(20, nil)
	p := NewPlanner(m)
	src := vecmath.DoubleVec2D{X: 0, Y: 0}
	dest := vecmath.DoubleVec2D{X: 3, Y: 4}
	got, ok := p.NextPosition(src, dest, 100)
	if !ok || !got.Equals(dest) {
		t.Fatalf("expected arrival at dest, got %+v ok=%v", got, ok)
	}
}

func TestUnreachableDestinationReturnsFalse(t *testing.T) {
	size := 10
	overrides := map[vecmath.Vec2D]worldmap.Terrain{}
	// Wall off a 1-cell island at (9,9) completely with water.
	for x := 7; x <= 9; x++ {
		for y := 7; y <= 9; y++ {
			if !(x == 9 && y == 9) {
				overrides[vecmath.Vec2D{X: x, Y: y}] = worldmap.Water
			}
		}
	}
	m := worldmap.New(size, overrides)
	p := NewPlanner(m)
	src := vecmath.DoubleVec2D{X: 0, Y: 0}
	dest := vecmath.DoubleVec2D{X: 9.5, Y: 9.5}
	_, ok := p.NextPosition(src, dest, 5)
	if ok {
		t.Error("expected unreachable destination")
	}
}

func TestGraphRebuildTowerAddRemoveRestoresGraph(t *testing.T) {
	m := worldmap.New(20, nil)
	p := NewPlanner(m)
	before := p.Graph().NodeCount()
	beforeEdges := p.Graph().EdgeCount()

	off := vecmath.Vec2D{X: 10, Y: 10}
	if err := m.BuildTower(off); err != nil {
		t.Fatalf("BuildTower: %v", err)
	}
	p.RebuildGraph()
	if p.Graph().NodeCount() == before {
		t.Error("expected node count to change after building a tower")
	}

	if err := m.DestroyTower(off); err != nil {
		t.Fatalf("DestroyTower: %v", err)
	}
	p.RebuildGraph()
	if p.Graph().NodeCount() != before {
		t.Errorf("expected node count restored, got %d want %d", p.Graph().NodeCount(), before)
	}
	if p.Graph().EdgeCount() != beforeEdges {
		t.Errorf("expected edge count restored, got %d want %d", p.Graph().EdgeCount(), beforeEdges)
	}
}

func TestPathAvoidsTower(t *testing.T) {
	size := 20
	m := worldmap.New(size, nil)
	p := NewPlanner(m)

	// Build a wall of towers straight between src and dest, forcing a
	// detour around one of its ends: a 1-wide row from x=5..14 at y=10.
	for x := 5; x <= 14; x++ {
		if err := m.BuildTower(vecmath.Vec2D{X: x, Y: 10}); err != nil {
			t.Fatalf("BuildTower: %v", err)
		}
	}
	p.RebuildGraph()

	src := vecmath.DoubleVec2D{X: 9, Y: 5}
	dest := vecmath.DoubleVec2D{X: 9, Y: 15}
	path := p.Path(src, dest)
	if path == nil {
		t.Fatal("expected a detour path to exist")
	}
	straight := src.Distance(dest)
	var total float64
	cur := src
	for _, wp := range path {
		total += cur.Distance(wp)
		cur = wp
	}
	if total <= straight {
		t.Errorf("expected detour longer than straight line: total=%v straight=%v", total, straight)
	}
}

func TestTowerOffsetFlipping(t *testing.T) {
	dest := vecmath.DoubleVec2D{X: 3.5, Y: 3.5}
	p1 := TowerOffset(dest, false)
	if p1 != (vecmath.Vec2D{X: 3, Y: 3}) {
		t.Errorf("player1 offset = %+v", p1)
	}
	p2 := TowerOffset(dest, true)
	if p2 != (vecmath.Vec2D{X: 3, Y: 3}) {
		t.Errorf("player2 offset = %+v", p2)
	}
}
