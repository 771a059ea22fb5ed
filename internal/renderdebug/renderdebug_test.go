package renderdebug

import (
	"os"
	"testing"

	"arenahost/internal/actor"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
	"arenahost/internal/worldstate"
)

func testConfig() worldstate.Config {
	return worldstate.Config{
		MapSize:              10,
		MaxNumBots:           10,
		MaxNumTowers:         5,
		BotSpeed:             2,
		BlastImpactRadius:    2,
		NumBotsStart:         1,
		BotScoreMultiplier:   10,
		TowerScoreMultiplier: 25,
		BasePosition:         [2]vecmath.Vec2D{{X: 1, Y: 1}, {X: 8, Y: 8}},
		BotMaxHP:             100,
		BotDamage:            50,
		TowerHPScale:         3,
		TowerDamage:          50,
		TowerBlastRng:        3,
	}
}

func TestRenderProducesAPNGFile(t *testing.T) {
	actor.ResetIDCounterForTest()
	m := worldmap.New(10, nil)
	st := worldstate.New(testConfig(), m)

	path := t.TempDir() + "/final.png"
	if err := Render(st, path); err != nil {
		t.Fatalf("Render: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected non-empty PNG file")
	}
}
