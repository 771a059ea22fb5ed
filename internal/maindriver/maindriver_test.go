package maindriver

import (
	"testing"
	"time"

	"arenahost/internal/actor"
	"arenahost/internal/commandgiver"
	"arenahost/internal/shm"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
	"arenahost/internal/worldstate"
)

type fakeProc struct {
	terminated chan struct{}
}

func newFakeProc() *fakeProc { return &fakeProc{terminated: make(chan struct{}, 1)} }

func (f *fakeProc) Terminate() error {
	select {
	case f.terminated <- struct{}{}:
	default:
	}
	return nil
}

func testWorldConfig() worldstate.Config {
	return worldstate.Config{
		MapSize:              10,
		MaxNumBots:           5,
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

// setupDriver builds a Driver with real shm buffers backed by temp files
// and fake, in-process player handles, standing in for the two OS
// processes New would otherwise launch.
func setupDriver(t *testing.T, numTurns int, gameDuration time.Duration) (*Driver, *fakeProc, *fakeProc) {
	t.Helper()
	actor.ResetIDCounterForTest()
	m := worldmap.New(10, nil)

	cfg := Config{
		MatchID:                    "test-match",
		World:                      testWorldConfig(),
		NumTurns:                   numTurns,
		GameDuration:               gameDuration,
		PlayerInstructionLimitTurn: 10_000_000,
		PlayerInstructionLimitGame: 100_000_000,
		ShmPath:                    [2]string{t.TempDir() + "/shm0.bin", t.TempDir() + "/shm1.bin"},
		ReplayPath:                 t.TempDir() + "/replay.bin",
	}

	d := newDriver(cfg, m, nil)
	p1, p2 := newFakeProc(), newFakeProc()
	d.procs = [2]playerHandle{p1, p2}

	for p := 0; p < 2; p++ {
		buf, err := shm.Create(cfg.ShmPath[p], shm.DefaultRegionSize)
		if err != nil {
			t.Fatalf("shm.Create: %v", err)
		}
		d.bufs[p] = buf
	}
	return d, p1, p2
}

// autoReleaseSubmission simulates a well-behaved player: whenever the
// baton is handed to player index idx, it immediately writes back an
// empty (no-op) submission and releases the baton. An empty submission
// fails CommandGiver's cardinality check, which is harmless here — the
// turn still advances, just with that player's intents all dropped.
func autoReleaseSubmission(t *testing.T, d *Driver, idx int, stop <-chan struct{}) {
	t.Helper()
	buf := d.bufs[idx]
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			if buf.IsPlayerRunning() {
				_ = buf.WriteSubmission(commandgiver.Submission{})
				buf.SetPlayerRunning(false)
			}
			time.Sleep(time.Millisecond)
		}
	}()
}

func TestCleanTimeoutWinWhenOnePlayerNeverReleases(t *testing.T) {
	d, _, p2 := setupDriver(t, 1000, 80*time.Millisecond)
	defer d.cleanup()

	stop := make(chan struct{})
	defer close(stop)
	autoReleaseSubmission(t, d, 0, stop)

	result, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.WinType != WinTypeTimeout {
		t.Fatalf("win type = %s, want %s", result.WinType, WinTypeTimeout)
	}
	if result.Winner != 0 {
		t.Fatalf("winner = %d, want 0", result.Winner)
	}
	select {
	case <-p2.terminated:
	default:
		t.Fatal("expected the stalled player's process to be terminated")
	}
}

func TestScoreTieWhenNeitherPlayerActs(t *testing.T) {
	d, _, _ := setupDriver(t, 5, 2*time.Second)
	defer d.cleanup()

	stop := make(chan struct{})
	defer close(stop)
	autoReleaseSubmission(t, d, 0, stop)
	autoReleaseSubmission(t, d, 1, stop)

	result, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.WinType != WinTypeScore {
		t.Fatalf("win type = %s, want %s", result.WinType, WinTypeScore)
	}
	if result.Winner != -1 {
		t.Fatalf("winner = %d, want -1 (tie)", result.Winner)
	}
}

func TestBothExceedInstructionLimitIsATie(t *testing.T) {
	d, _, _ := setupDriver(t, 1000, 2*time.Second)
	defer d.cleanup()

	d.bufs[0].AddInstructions(d.cfg.PlayerInstructionLimitGame + 1)
	d.bufs[1].AddInstructions(d.cfg.PlayerInstructionLimitGame + 1)

	stop := make(chan struct{})
	defer close(stop)
	autoReleaseSubmission(t, d, 0, stop)
	autoReleaseSubmission(t, d, 1, stop)

	result, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.WinType != WinTypeExceededInstruction {
		t.Fatalf("win type = %s, want %s", result.WinType, WinTypeExceededInstruction)
	}
	if result.Winner != -1 {
		t.Fatalf("winner = %d, want -1 (tie)", result.Winner)
	}
	if result.PlayerResults[0].Status != StatusExceededInstructionLimit || result.PlayerResults[1].Status != StatusExceededInstructionLimit {
		t.Fatalf("unexpected player results: %+v", result.PlayerResults)
	}
}

func TestAsymmetricInstructionLimitGivesOtherPlayerTheWin(t *testing.T) {
	d, _, _ := setupDriver(t, 1000, 2*time.Second)
	defer d.cleanup()

	d.bufs[0].AddInstructions(d.cfg.PlayerInstructionLimitGame + 1)

	stop := make(chan struct{})
	defer close(stop)
	autoReleaseSubmission(t, d, 0, stop)
	autoReleaseSubmission(t, d, 1, stop)

	result, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.WinType != WinTypeExceededInstruction {
		t.Fatalf("win type = %s, want %s", result.WinType, WinTypeExceededInstruction)
	}
	if result.Winner != 1 {
		t.Fatalf("winner = %d, want 1", result.Winner)
	}
}

func TestCancelMidTurnEndsWithNoResult(t *testing.T) {
	d, _, _ := setupDriver(t, 1000, 2*time.Second)
	defer d.cleanup()

	stop := make(chan struct{})
	defer close(stop)
	autoReleaseSubmission(t, d, 1, stop)
	// Player 0 never releases; cancel before the deadline would fire.
	d.Cancel()

	result, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.WinType != WinTypeNone || result.Winner != -1 {
		t.Fatalf("unexpected cancelled result: %+v", result)
	}
}
