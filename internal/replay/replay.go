// Package replay records a match as a single length-prefixed protobuf
// message, flushed once at match end. Fields are encoded with
// protowire's low-level primitives instead of generated message code,
// since there is no .proto schema to compile against.
package replay

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/encoding/protowire"

	"arenahost/internal/commandgiver"
	"arenahost/internal/matchlog"
	"arenahost/internal/worldmap"
	"arenahost/internal/worldstate"
)

// Field numbers for the top-level Replay message.
const (
	fieldMapSize      = 1
	fieldTerrain      = 2
	fieldTurn         = 3
	fieldErrorTaxonomy = 4
	fieldFinal        = 5
)

// Field numbers within a Turn submessage.
const (
	turnFieldIndex        = 1
	turnFieldP1Instr      = 2
	turnFieldP2Instr      = 3
	turnFieldP1Errors     = 4
	turnFieldP2Errors     = 5
	turnFieldP1Snapshot   = 6
	turnFieldP2Snapshot   = 7
)

// Field numbers within a TurnError submessage.
const (
	errFieldActorID = 1
	errFieldCode    = 2
)

// Field numbers within a Final submessage.
const (
	finalFieldWinner  = 1
	finalFieldWinType = 2
	finalFieldScoreP1 = 3
	finalFieldScoreP2 = 4
)

// TurnRecord is everything a single turn contributes to the replay.
type TurnRecord struct {
	Index       int
	P1Instr     uint64
	P2Instr     uint64
	P1Errors    []commandgiver.ValidationError
	P2Errors    []commandgiver.ValidationError
	P1Snapshot  *worldstate.TransferState
	P2Snapshot  *worldstate.TransferState
}

// Final is the match's terminal outcome, mirroring MainDriver's
// GameResult.
type Final struct {
	Winner    int // 0, 1, or -1 for a tie
	WinType   string
	ScoreP1   int
	ScoreP2   int
}

// Writer accumulates turn records in memory and flushes a single
// length-prefixed message to disk at Flush, matching "the replay is
// flushed once, at match end."
type Writer struct {
	mapSize int
	terrain []worldmap.Terrain
	turns   []TurnRecord
	final   *Final
	taxonomy []commandgiver.Code
	seen     map[commandgiver.Code]bool
}

// New starts a replay for a match on the given map.
func New(mapSize int, terrain []worldmap.Terrain) *Writer {
	return &Writer{
		mapSize: mapSize,
		terrain: terrain,
		seen:    make(map[commandgiver.Code]bool),
	}
}

// RecordTurn appends one turn's data and registers any previously-unseen
// error codes into the replay's taxonomy table, assigned on first
// occurrence.
func (w *Writer) RecordTurn(t TurnRecord) {
	w.turns = append(w.turns, t)
	for _, e := range append(append([]commandgiver.ValidationError{}, t.P1Errors...), t.P2Errors...) {
		if !w.seen[e.Code] {
			w.seen[e.Code] = true
			w.taxonomy = append(w.taxonomy, e.Code)
		}
	}
}

// RecordFinal sets the match's terminal outcome.
func (w *Writer) RecordFinal(f Final) { w.final = &f }

// Flush writes the accumulated replay to path as one length-prefixed
// protobuf message and logs completion via the given logger.
func (w *Writer) Flush(path string, log *matchlog.Logger) error {
	buf := w.encode()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: create %s: %w", path, err)
	}
	defer f.Close()

	header := protowire.AppendVarint(nil, uint64(len(buf)))
	if _, err := f.Write(header); err != nil {
		return fmt.Errorf("replay: write length prefix: %w", err)
	}
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("replay: write body: %w", err)
	}
	if log != nil {
		winner := -1
		winType := ""
		scores := [2]int{}
		if w.final != nil {
			winner, winType, scores = w.final.Winner, w.final.WinType, [2]int{w.final.ScoreP1, w.final.ScoreP2}
		}
		log.LogMatchEnd(winner, winType, scores)
	}
	return nil
}

func (w *Writer) encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldMapSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(w.mapSize))

	terrainBytes := make([]byte, len(w.terrain))
	for i, t := range w.terrain {
		terrainBytes[i] = byte(t)
	}
	b = protowire.AppendTag(b, fieldTerrain, protowire.BytesType)
	b = protowire.AppendBytes(b, terrainBytes)

	for _, t := range w.turns {
		turnBytes := encodeTurn(t)
		b = protowire.AppendTag(b, fieldTurn, protowire.BytesType)
		b = protowire.AppendBytes(b, turnBytes)
	}

	for _, code := range w.taxonomy {
		b = protowire.AppendTag(b, fieldErrorTaxonomy, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte(code))
	}

	if w.final != nil {
		var fb []byte
		fb = protowire.AppendTag(fb, finalFieldWinner, protowire.VarintType)
		fb = protowire.AppendVarint(fb, uint64(int64(w.final.Winner)))
		fb = protowire.AppendTag(fb, finalFieldWinType, protowire.BytesType)
		fb = protowire.AppendBytes(fb, []byte(w.final.WinType))
		fb = protowire.AppendTag(fb, finalFieldScoreP1, protowire.VarintType)
		fb = protowire.AppendVarint(fb, uint64(w.final.ScoreP1))
		fb = protowire.AppendTag(fb, finalFieldScoreP2, protowire.VarintType)
		fb = protowire.AppendVarint(fb, uint64(w.final.ScoreP2))

		b = protowire.AppendTag(b, fieldFinal, protowire.BytesType)
		b = protowire.AppendBytes(b, fb)
	}
	return b
}

func encodeTurn(t TurnRecord) []byte {
	var b []byte
	b = protowire.AppendTag(b, turnFieldIndex, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.Index))
	b = protowire.AppendTag(b, turnFieldP1Instr, protowire.VarintType)
	b = protowire.AppendVarint(b, t.P1Instr)
	b = protowire.AppendTag(b, turnFieldP2Instr, protowire.VarintType)
	b = protowire.AppendVarint(b, t.P2Instr)

	for _, e := range t.P1Errors {
		eb := encodeError(e)
		b = protowire.AppendTag(b, turnFieldP1Errors, protowire.BytesType)
		b = protowire.AppendBytes(b, eb)
	}
	for _, e := range t.P2Errors {
		eb := encodeError(e)
		b = protowire.AppendTag(b, turnFieldP2Errors, protowire.BytesType)
		b = protowire.AppendBytes(b, eb)
	}

	if t.P1Snapshot != nil {
		b = protowire.AppendTag(b, turnFieldP1Snapshot, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeSnapshotSummary(t.P1Snapshot))
	}
	if t.P2Snapshot != nil {
		b = protowire.AppendTag(b, turnFieldP2Snapshot, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeSnapshotSummary(t.P2Snapshot))
	}
	return b
}

func encodeError(e commandgiver.ValidationError) []byte {
	var b []byte
	b = protowire.AppendTag(b, errFieldActorID, protowire.VarintType)
	b = protowire.AppendVarint(b, e.ActorID)
	b = protowire.AppendTag(b, errFieldCode, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte(e.Code))
	return b
}

// snapshot summary field numbers, local to encodeSnapshotSummary's
// sub-message (own bot count, own tower count, score pair). The replay
// records per-turn actor counts and scores only; actor positions are not
// recorded.
const (
	snapFieldOwnBots   = 1
	snapFieldOwnTowers = 2
	snapFieldScoreSelf = 3
	snapFieldScoreEnemy = 4
)

func encodeSnapshotSummary(ts *worldstate.TransferState) []byte {
	var b []byte
	b = protowire.AppendTag(b, snapFieldOwnBots, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(len(ts.OwnBots)))
	b = protowire.AppendTag(b, snapFieldOwnTowers, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(len(ts.OwnTowers)))
	b = protowire.AppendTag(b, snapFieldScoreSelf, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(ts.Scores[0]))
	b = protowire.AppendTag(b, snapFieldScoreEnemy, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(ts.Scores[1]))
	return b
}
