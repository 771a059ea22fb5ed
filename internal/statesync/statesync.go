// Package statesync drives one turn end to end: CommandGiver validation
// for both players, the authoritative State update/lateUpdate pass, and
// projection of fresh per-player snapshots, exactly in the order spec'd
// for determinism (player 1 validation, player 2 validation, update,
// lateUpdate, score, snapshot, log).
package statesync

import (
	"arenahost/internal/actor"
	"arenahost/internal/commandgiver"
	"arenahost/internal/worldstate"
)

// Logger is the narrow logging seam statesync depends on; matchlog
// implements it. Kept separate from that package so statesync does not
// import logrus directly.
type Logger interface {
	LogTurn(turn int, p1Errs, p2Errs []commandgiver.ValidationError, scores [2]int)
}

type noopLogger struct{}

func (noopLogger) LogTurn(int, []commandgiver.ValidationError, []commandgiver.ValidationError, [2]int) {
}

// Syncer owns the per-turn drive sequence over a single State.
type Syncer struct {
	st  *worldstate.State
	log Logger
}

// New builds a Syncer over st. A nil logger installs a no-op logger.
func New(st *worldstate.State, log Logger) *Syncer {
	if log == nil {
		log = noopLogger{}
	}
	return &Syncer{st: st, log: log}
}

// Turn runs one full turn: CommandGiver for player 1 then player 2 (each
// skipped per the skip mask — a forfeited turn for exceeding the
// per-turn instruction budget), the authoritative update/lateUpdate pass,
// and fresh per-player snapshot projection. turnIdx is the zero-based turn
// index, used only for logging.
func (s *Syncer) Turn(turnIdx int, skip [2]bool, p1Sub, p2Sub commandgiver.Submission) (p1Snap, p2Snap *worldstate.TransferState, p1Errs, p2Errs []commandgiver.ValidationError) {
	if !skip[0] {
		p1Errs = commandgiver.Process(s.st, actor.Player1, p1Sub)
	}
	if !skip[1] {
		p2Errs = commandgiver.Process(s.st, actor.Player2, p2Sub)
	}

	s.st.Update()
	s.st.LateUpdate()

	p1Snap = s.st.Snapshot(actor.Player1)
	p2Snap = s.st.Snapshot(actor.Player2)

	s.log.LogTurn(turnIdx, p1Errs, p2Errs, s.st.Score().Scores())
	return p1Snap, p2Snap, p1Errs, p2Errs
}

// State exposes the underlying authoritative state.
func (s *Syncer) State() *worldstate.State { return s.st }
