// Package maindriver is the turn loop: it hands the baton to each
// player in order, enforces the per-turn and per-game instruction
// budgets, drives one statesync.Syncer turn when neither player blew
// the game budget, and resolves the match's terminal outcome.
package maindriver

import (
	"runtime"
	"sync/atomic"
	"time"

	"arenahost/internal/matchlog"
	"arenahost/internal/metrics"
	"arenahost/internal/playerproc"
	"arenahost/internal/replay"
	"arenahost/internal/shm"
	"arenahost/internal/statesync"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
	"arenahost/internal/worldstate"
)

// spectator is the narrow broadcast seam spectate.Hub satisfies. Nil by
// default; SetSpectator wires a hub in from the CLI entry point.
type spectator interface {
	Broadcast(turn int, p1, p2 *worldstate.TransferState)
}

// Win types: a match's possible terminal outcomes.
const (
	WinTypeScore               = "SCORE"
	WinTypeTimeout             = "TIMEOUT"
	WinTypeExceededInstruction = "EXCEEDED_INSTRUCTION_LIMIT"
	WinTypeNone                = "NONE"
)

// Player-result status values.
const (
	StatusOK                       = "OK"
	StatusExceededInstructionLimit = "EXCEEDED_INSTRUCTION_LIMIT"
)

// PlayerResult is one player's terminal bookkeeping.
type PlayerResult struct {
	Status string
}

// GameResult is MainDriver's return value: the winner (0, 1, or -1 for a
// tie/no-result), the win type, and each player's terminal status.
type GameResult struct {
	Winner        int
	WinType       string
	PlayerResults [2]PlayerResult
}

// Config bundles everything a match run needs: the authoritative world
// configuration, timing/instruction budgets, and the shared-memory paths
// handed to each player process.
type Config struct {
	MatchID string
	World   worldstate.Config

	NumTurns                   int
	GameDuration               time.Duration
	PlayerInstructionLimitTurn uint64
	PlayerInstructionLimitGame uint64

	ShmPath      [2]string
	PlayerBinary [2]string
	ReplayPath   string
}

// spinYield is how long the baton spin-wait sleeps between polls.
const spinYield = 200 * time.Microsecond

// playerHandle is the slice of playerproc.Process this package actually
// needs. Narrowing to an interface lets the turn loop be driven in
// tests without spawning real OS processes.
type playerHandle interface {
	Terminate() error
}

// Driver owns one match's full lifecycle: player processes, shared
// buffers, the authoritative state, and the replay writer.
type Driver struct {
	cfg Config
	log *matchlog.Logger

	procs [2]playerHandle
	bufs  [2]*shm.Buffer

	st     *worldstate.State
	syncer *statesync.Syncer
	rec    *replay.Writer
	spec   spectator

	cancelled atomic.Bool
}

// SetSpectator wires a spectator broadcaster in; every turn's snapshots
// are pushed to it after StateSyncer.Turn returns. Optional — a nil or
// never-called SetSpectator leaves match timing untouched.
func (d *Driver) SetSpectator(s spectator) { d.spec = s }

// New sets up a match: builds the authoritative state on the given map, creates
// both shared-memory regions, and launches both player processes.
func New(cfg Config, m *worldmap.Map, log *matchlog.Logger) (*Driver, error) {
	d := newDriver(cfg, m, log)

	for p := 0; p < 2; p++ {
		buf, err := shm.Create(cfg.ShmPath[p], shm.DefaultRegionSize)
		if err != nil {
			d.cleanup()
			return nil, err
		}
		d.bufs[p] = buf

		proc, err := playerproc.Launch(p, cfg.PlayerBinary[p], cfg.ShmPath[p])
		if err != nil {
			d.cleanup()
			return nil, err
		}
		d.procs[p] = proc
	}

	if log != nil {
		log.LogMatchStart(cfg.MatchID, cfg.World.MapSize)
	}
	return d, nil
}

// newDriver builds the authoritative-state half of a Driver without
// touching shared memory or OS processes, shared by New and by tests
// that inject their own bufs/procs.
func newDriver(cfg Config, m *worldmap.Map, log *matchlog.Logger) *Driver {
	st := worldstate.New(cfg.World, m)
	// Pass a nil *matchlog.Logger on as a nil interface, so statesync
	// installs its no-op logger instead of calling through a nil pointer.
	var syncLog statesync.Logger
	if log != nil {
		syncLog = log
	}
	syncer := statesync.New(st, syncLog)

	terrain := make([]worldmap.Terrain, m.Size()*m.Size())
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			terrain[y*m.Size()+x] = m.At(vecmath.Vec2D{X: x, Y: y})
		}
	}
	rec := replay.New(m.Size(), terrain)

	return &Driver{cfg: cfg, log: log, st: st, syncer: syncer, rec: rec}
}

// Cancel requests cooperative cancellation, observed at the next baton
// spin-wait.
func (d *Driver) Cancel() { d.cancelled.Store(true) }

// Run drives the full turn loop and returns the match's terminal result.
func (d *Driver) Run() (*GameResult, error) {
	deadline := shm.Start(d.cfg.GameDuration, func() {})
	defer func() {
		if !deadline.Fired() {
			deadline.Stop()
		}
	}()

	for t := 0; t < d.cfg.NumTurns; t++ {
		turnStart := time.Now()
		skip := [2]bool{}
		var exceeded [2]bool

		for p := 0; p < 2; p++ {
			d.bufs[p].ResetTurnInstructionCount()
			d.bufs[p].SetPlayerRunning(true)

			waitStart := time.Now()
			for d.bufs[p].IsPlayerRunning() {
				if d.cancelled.Load() {
					d.bufs[p].SetPlayerRunning(false)
					return d.finalizeCancelled(), nil
				}
				if deadline.Fired() {
					_ = d.procs[p].Terminate()
					return d.finalizeTimeout(p), nil
				}
				runtime.Gosched()
				time.Sleep(spinYield)
			}
			metrics.ObserveBatonWait(p, time.Since(waitStart))

			gameCount := d.bufs[p].GameInstructionCount()
			if gameCount > d.cfg.PlayerInstructionLimitGame {
				exceeded[p] = true
			} else if d.bufs[p].TurnInstructionCount() > d.cfg.PlayerInstructionLimitTurn {
				skip[p] = true
			}
			if d.log != nil {
				d.log.LogInstructionCount(t, p, d.bufs[p].TurnInstructionCount())
			}
		}

		if exceeded[0] || exceeded[1] {
			return d.finalizeInstructionLimit(exceeded), nil
		}

		p1Sub, err := d.bufs[0].ReadSubmission()
		if err != nil {
			return nil, err
		}
		p2Sub, err := d.bufs[1].ReadSubmission()
		if err != nil {
			return nil, err
		}

		p1Snap, p2Snap, p1Errs, p2Errs := d.syncer.Turn(t, skip, p1Sub, p2Sub)

		if err := d.bufs[0].WriteSnapshot(p1Snap); err != nil {
			return nil, err
		}
		if err := d.bufs[1].WriteSnapshot(p2Snap); err != nil {
			return nil, err
		}
		if d.spec != nil {
			d.spec.Broadcast(t, p1Snap, p2Snap)
		}
		for _, e := range p1Errs {
			metrics.IncRejection(string(e.Code))
		}
		for _, e := range p2Errs {
			metrics.IncRejection(string(e.Code))
		}

		scores := d.st.Score().Scores()
		d.rec.RecordTurn(replay.TurnRecord{
			Index:      t,
			P1Instr:    d.bufs[0].TurnInstructionCount(),
			P2Instr:    d.bufs[1].TurnInstructionCount(),
			P1Errors:   p1Errs,
			P2Errors:   p2Errs,
			P1Snapshot: p1Snap,
			P2Snapshot: p2Snap,
		})
		metrics.SetScore(0, scores[0])
		metrics.SetScore(1, scores[1])
		metrics.ObserveTurn(time.Since(turnStart))
	}

	return d.finalizeByScore(), nil
}

// State exposes the authoritative world state, e.g. for an end-of-match
// debug render. Only safe to read after Run has returned.
func (d *Driver) State() *worldstate.State { return d.st }

// Close terminates any still-running player processes and unmaps the
// shared buffers. Safe to call after Run returns.
func (d *Driver) Close() {
	d.cleanup()
}

func (d *Driver) cleanup() {
	for p := 0; p < 2; p++ {
		if d.procs[p] != nil {
			_ = d.procs[p].Terminate()
		}
		if d.bufs[p] != nil {
			_ = d.bufs[p].Close()
		}
	}
}

func (d *Driver) finalizeCancelled() *GameResult {
	d.flush(-1, WinTypeNone)
	return &GameResult{Winner: -1, WinType: WinTypeNone, PlayerResults: [2]PlayerResult{{Status: StatusOK}, {Status: StatusOK}}}
}

func (d *Driver) finalizeTimeout(loser int) *GameResult {
	winner := 1 - loser
	d.flush(winner, WinTypeTimeout)
	results := [2]PlayerResult{{Status: StatusOK}, {Status: StatusOK}}
	results[loser] = PlayerResult{Status: WinTypeTimeout}
	return &GameResult{Winner: winner, WinType: WinTypeTimeout, PlayerResults: results}
}

func (d *Driver) finalizeInstructionLimit(exceeded [2]bool) *GameResult {
	var results [2]PlayerResult
	for p := 0; p < 2; p++ {
		if exceeded[p] {
			results[p] = PlayerResult{Status: StatusExceededInstructionLimit}
		} else {
			results[p] = PlayerResult{Status: StatusOK}
		}
	}
	winner := -1
	switch {
	case exceeded[0] && !exceeded[1]:
		winner = 1
	case exceeded[1] && !exceeded[0]:
		winner = 0
	}
	d.flush(winner, WinTypeExceededInstruction)
	return &GameResult{Winner: winner, WinType: WinTypeExceededInstruction, PlayerResults: results}
}

func (d *Driver) finalizeByScore() *GameResult {
	scores := d.st.Score().Scores()
	winner := -1
	switch {
	case scores[0] > scores[1]:
		winner = 0
	case scores[1] > scores[0]:
		winner = 1
	}
	d.flush(winner, WinTypeScore)
	return &GameResult{
		Winner:        winner,
		WinType:       WinTypeScore,
		PlayerResults: [2]PlayerResult{{Status: StatusOK}, {Status: StatusOK}},
	}
}

func (d *Driver) flush(winner int, winType string) {
	scores := d.st.Score().Scores()
	d.rec.RecordFinal(replay.Final{Winner: winner, WinType: winType, ScoreP1: scores[0], ScoreP2: scores[1]})
	_ = d.rec.Flush(d.cfg.ReplayPath, d.log)
}
