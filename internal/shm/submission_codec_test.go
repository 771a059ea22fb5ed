package shm

import (
	"testing"

	"arenahost/internal/actor"
	"arenahost/internal/commandgiver"
	"arenahost/internal/vecmath"
)

func sampleSubmission() commandgiver.Submission {
	return commandgiver.Submission{
		OwnBots: []commandgiver.BotIntent{
			{
				ActorID: 1, HP: 100, Position: vecmath.DoubleVec2D{X: 5, Y: 5}, State: actor.BotIdle,
				Destination: vecmath.DoubleVec2D{X: 6, Y: 5}, FinalDestination: vecmath.NullDouble, TransformDestination: vecmath.NullDouble,
			},
		},
		EnemyBots: []commandgiver.BotIntent{
			{
				ActorID: 2, HP: 80, Position: vecmath.DoubleVec2D{X: 90, Y: 90}, State: actor.BotMove,
				Destination: vecmath.NullDouble, FinalDestination: vecmath.NullDouble, TransformDestination: vecmath.NullDouble,
			},
		},
		OwnTowers: []commandgiver.TowerIntent{
			{ActorID: 3, HP: 300, Position: vecmath.DoubleVec2D{X: 10, Y: 10}, State: actor.TowerIdle, IsBlasting: true},
		},
	}
}

func TestSubmissionRoundTrip(t *testing.T) {
	sub := sampleSubmission()
	buf := make([]byte, SubmissionEncodedSize(sub))
	n, err := EncodeSubmission(sub, buf)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("encoded %d bytes, expected %d", n, len(buf))
	}

	got, err := DecodeSubmission(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.OwnBots) != 1 || got.OwnBots[0].Destination != sub.OwnBots[0].Destination {
		t.Fatalf("own bots mismatch: %+v", got.OwnBots)
	}
	if len(got.OwnTowers) != 1 || !got.OwnTowers[0].IsBlasting {
		t.Fatalf("own towers mismatch: %+v", got.OwnTowers)
	}
}

func TestBufferSubmissionRoundTrip(t *testing.T) {
	path := t.TempDir() + "/shm_sub.bin"
	b, err := Create(path, DefaultRegionSize)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer b.Close()

	sub := sampleSubmission()
	if err := b.WriteSubmission(sub); err != nil {
		t.Fatalf("WriteSubmission: %v", err)
	}
	got, err := b.ReadSubmission()
	if err != nil {
		t.Fatalf("ReadSubmission: %v", err)
	}
	if len(got.OwnBots) != len(sub.OwnBots) {
		t.Fatalf("got %d own bots, want %d", len(got.OwnBots), len(sub.OwnBots))
	}
}
