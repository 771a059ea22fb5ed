package spatial

import "testing"

func TestQueryRadiusFindsInsertedActor(t *testing.T) {
	g := NewActorGrid(100, 10, 50)
	g.Insert(7, 42, 42)

	candidates := g.QueryRadius(40, 40, 5)
	found := false
	for _, idx := range candidates {
		if idx == 7 {
			found = true
		}
	}
	if !found {
		t.Error("expected to find inserted actor in query radius")
	}
}

func TestClearEmptiesGrid(t *testing.T) {
	g := NewActorGrid(100, 10, 50)
	g.Insert(1, 5, 5)
	g.Clear()
	candidates := g.QueryRadius(5, 5, 50)
	if len(candidates) != 0 {
		t.Errorf("expected empty grid after Clear, got %d candidates", len(candidates))
	}
}

func TestQueryRadiusOutOfRangeCellNotReturned(t *testing.T) {
	g := NewActorGrid(100, 10, 50)
	g.Insert(3, 90, 90)
	candidates := g.QueryRadius(0, 0, 5)
	for _, idx := range candidates {
		if idx == 3 {
			t.Error("actor far outside query window should not be a candidate")
		}
	}
}
