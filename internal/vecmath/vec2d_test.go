package vecmath

import "testing"

func TestVec2DEquals(t *testing.T) {
	a := Vec2D{3, 4}
	b := Vec2D{3, 4}
	c := Vec2D{3, 5}
	if !a.Equals(b) {
		t.Error("expected a == b")
	}
	if a.Equals(c) {
		t.Error("expected a != c")
	}
}

func TestDoubleVec2DMoveTowardsReachesDestination(t *testing.T) {
	src := DoubleVec2D{0, 0}
	dest := DoubleVec2D{3, 4}
	got := src.MoveTowards(dest, 100)
	if !got.Equals(dest) {
		t.Errorf("expected to reach destination, got %+v", got)
	}
}

func TestDoubleVec2DMoveTowardsPartial(t *testing.T) {
	src := DoubleVec2D{0, 0}
	dest := DoubleVec2D{10, 0}
	got := src.MoveTowards(dest, 4)
	want := DoubleVec2D{4, 0}
	if !got.Equals(want) {
		t.Errorf("got %+v want %+v", got, want)
	}
}

func TestDoubleVec2DMoveTowardsSamePoint(t *testing.T) {
	p := DoubleVec2D{5, 5}
	got := p.MoveTowards(p, 2)
	if !got.Equals(p) {
		t.Errorf("expected no movement for p==dest, got %+v", got)
	}
}

func TestFloorCeil(t *testing.T) {
	p := DoubleVec2D{3.7, 4.2}
	if f := p.Floor(); f != (Vec2D{3, 4}) {
		t.Errorf("Floor() = %+v", f)
	}
	if c := p.Ceil(); c != (Vec2D{4, 5}) {
		t.Errorf("Ceil() = %+v", c)
	}
}

func TestNullSentinels(t *testing.T) {
	if !NullInt.IsNull() {
		t.Error("NullInt should be null")
	}
	if !NullDouble.IsNull() {
		t.Error("NullDouble should be null")
	}
	if (Vec2D{0, 0}).IsNull() {
		t.Error("origin should not be null")
	}
}
