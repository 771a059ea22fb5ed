package statesync

import (
	"testing"

	"arenahost/internal/actor"
	"arenahost/internal/commandgiver"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
	"arenahost/internal/worldstate"
)

func testConfig() worldstate.Config {
	return worldstate.Config{
		MapSize:              20,
		MaxNumBots:           50,
		MaxNumTowers:         2,
		BotSpeed:             2,
		BlastImpactRadius:    3,
		NumBotsStart:         1,
		BotScoreMultiplier:   10,
		TowerScoreMultiplier: 25,
		BasePosition:         [2]vecmath.Vec2D{{X: 1, Y: 1}, {X: 18, Y: 18}},
		BotMaxHP:             100,
		BotDamage:            50,
		TowerHPScale:         3,
		TowerDamage:          50,
		TowerBlastRng:        3,
	}
}

func echoSubmission(snap *worldstate.TransferState) commandgiver.Submission {
	sub := commandgiver.Submission{}
	for _, b := range snap.OwnBots {
		sub.OwnBots = append(sub.OwnBots, commandgiver.BotIntent{
			ActorID: b.ActorID, HP: b.HP, Position: b.Position, State: b.State,
			Destination: vecmath.NullDouble, FinalDestination: vecmath.NullDouble, TransformDestination: vecmath.NullDouble,
		})
	}
	for _, b := range snap.EnemyBots {
		sub.EnemyBots = append(sub.EnemyBots, commandgiver.BotIntent{
			ActorID: b.ActorID, HP: b.HP, Position: b.Position, State: b.State,
			Destination: vecmath.NullDouble, FinalDestination: vecmath.NullDouble, TransformDestination: vecmath.NullDouble,
		})
	}
	for _, tw := range snap.OwnTowers {
		sub.OwnTowers = append(sub.OwnTowers, commandgiver.TowerIntent{ActorID: tw.ActorID, HP: tw.HP, Position: tw.Position, State: tw.State})
	}
	for _, tw := range snap.EnemyTowers {
		sub.EnemyTowers = append(sub.EnemyTowers, commandgiver.TowerIntent{ActorID: tw.ActorID, HP: tw.HP, Position: tw.Position, State: tw.State})
	}
	return sub
}

func TestTurnWithNoIntentsIsAQuietPass(t *testing.T) {
	actor.ResetIDCounterForTest()
	m := worldmap.New(20, nil)
	st := worldstate.New(testConfig(), m)
	syncer := New(st, nil)

	p1 := st.Snapshot(actor.Player1)
	p2 := st.Snapshot(actor.Player2)

	p1Snap, p2Snap, _, _ := syncer.Turn(0, [2]bool{false, false}, echoSubmission(p1), echoSubmission(p2))

	if len(p1Snap.OwnBots) != 1 || len(p2Snap.OwnBots) != 1 {
		t.Fatalf("expected both players to still have 1 bot, got %d/%d", len(p1Snap.OwnBots), len(p2Snap.OwnBots))
	}
}

func TestSkippedPlayerSubmissionIsIgnored(t *testing.T) {
	actor.ResetIDCounterForTest()
	m := worldmap.New(20, nil)
	st := worldstate.New(testConfig(), m)
	syncer := New(st, nil)

	p1 := st.Snapshot(actor.Player1)
	sub := echoSubmission(p1)
	sub.OwnBots[0].Destination = vecmath.DoubleVec2D{X: 5, Y: 1}

	syncer.Turn(0, [2]bool{true, true}, sub, commandgiver.Submission{})

	b := st.Bots()[0]
	if !b.Destination.IsNull() {
		t.Error("a skipped player's intent must not be dispatched")
	}
}
