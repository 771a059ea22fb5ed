package shm

import (
	"testing"

	"arenahost/internal/actor"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
	"arenahost/internal/worldstate"
)

func sampleTransferState() *worldstate.TransferState {
	return &worldstate.TransferState{
		MapSize: 4,
		Terrain: []worldmap.Terrain{
			worldmap.Land, worldmap.Water, worldmap.Flag, worldmap.Tower,
			worldmap.Land, worldmap.Land, worldmap.Land, worldmap.Land,
			worldmap.Land, worldmap.Land, worldmap.Land, worldmap.Land,
			worldmap.Land, worldmap.Land, worldmap.Land, worldmap.Land,
		},
		Flags: []vecmath.Vec2D{{X: 2, Y: 0}},
		OwnBots: []worldstate.BotView{
			{ActorID: 1, HP: 100, MaxHP: 100, Position: vecmath.DoubleVec2D{X: 1.5, Y: 2.25}, State: actor.BotIdle},
		},
		EnemyBots: []worldstate.BotView{
			{ActorID: 2, HP: 50, MaxHP: 100, Position: vecmath.DoubleVec2D{X: 3, Y: 3}, State: actor.BotMove},
		},
		OwnTowers:   []worldstate.TowerView{{ActorID: 3, HP: 300, MaxHP: 300, Position: vecmath.DoubleVec2D{X: 0, Y: 3}, State: actor.TowerIdle}},
		EnemyTowers: nil,
		Scores:      [2]int{10, 20},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ts := sampleTransferState()
	buf := make([]byte, EncodedSize(ts))
	n, err := EncodeTransferState(ts, buf)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("encoded %d bytes, EncodedSize said %d", n, len(buf))
	}

	got, err := DecodeTransferState(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.MapSize != ts.MapSize || len(got.Terrain) != len(ts.Terrain) {
		t.Fatalf("map mismatch: %+v", got)
	}
	if len(got.OwnBots) != 1 || got.OwnBots[0].Position != ts.OwnBots[0].Position {
		t.Fatalf("own bots mismatch: %+v", got.OwnBots)
	}
	if len(got.EnemyBots) != 1 || got.EnemyBots[0].State != actor.BotMove {
		t.Fatalf("enemy bots mismatch: %+v", got.EnemyBots)
	}
	if len(got.OwnTowers) != 1 {
		t.Fatalf("own towers mismatch: %+v", got.OwnTowers)
	}
	if got.Scores != ts.Scores {
		t.Fatalf("scores = %+v, want %+v", got.Scores, ts.Scores)
	}
}

func TestEncodeTooSmallBufferErrors(t *testing.T) {
	ts := sampleTransferState()
	_, err := EncodeTransferState(ts, make([]byte, 1))
	if err == nil {
		t.Fatal("expected an error encoding into an undersized buffer")
	}
}
