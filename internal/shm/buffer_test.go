package shm

import (
	"path/filepath"
	"testing"
)

func TestBatonRoundTripsThroughMmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shm1.bin")
	host, err := Create(path, DefaultRegionSize)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer host.Close()

	player, err := Open(path, DefaultRegionSize)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer player.Close()

	if host.IsPlayerRunning() {
		t.Fatal("baton should start clear")
	}
	host.SetPlayerRunning(true)
	if !player.IsPlayerRunning() {
		t.Fatal("player-side mapping should observe the host's baton write")
	}
	player.SetPlayerRunning(false)
	if host.IsPlayerRunning() {
		t.Fatal("host-side mapping should observe the player's baton clear")
	}
}

func TestInstructionCountersAccumulate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shm2.bin")
	b, err := Create(path, DefaultRegionSize)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer b.Close()

	b.AddInstructions(100)
	b.AddInstructions(50)
	if b.TurnInstructionCount() != 150 {
		t.Errorf("turn count = %d, want 150", b.TurnInstructionCount())
	}
	if b.GameInstructionCount() != 150 {
		t.Errorf("game count = %d, want 150", b.GameInstructionCount())
	}
	b.ResetTurnInstructionCount()
	if b.TurnInstructionCount() != 0 {
		t.Error("turn count should reset to 0")
	}
	if b.GameInstructionCount() != 150 {
		t.Error("game count must survive a turn-counter reset")
	}
}

func TestWriteReadSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shm3.bin")
	b, err := Create(path, DefaultRegionSize)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer b.Close()

	ts := sampleTransferState()
	if err := b.WriteSnapshot(ts); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	got, err := b.ReadSnapshot()
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if got.Scores != ts.Scores {
		t.Errorf("scores = %+v, want %+v", got.Scores, ts.Scores)
	}
}
