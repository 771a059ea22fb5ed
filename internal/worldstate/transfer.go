package worldstate

import (
	"arenahost/internal/actor"
	"arenahost/internal/coordflip"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
)

// BotView is the fixed-shape, per-actor projection of a Bot into a
// transfer snapshot: just enough to validate or display a turn, no
// indirection (no slices-of-pointers, no interior pointers) so the
// containing TransferState can live in shared memory.
type BotView struct {
	ActorID  uint64
	HP       int
	MaxHP    int
	Position vecmath.DoubleVec2D
	State    actor.BotState
}

// TowerView is the fixed-shape per-actor projection of a Tower.
type TowerView struct {
	ActorID  uint64
	HP       int
	MaxHP    int
	Position vecmath.DoubleVec2D
	State    actor.TowerState
}

// TransferState is the per-player snapshot: the map, the flag offsets, the
// viewing player's own actors, the visible enemy actors, and both scores.
// The actor lists are plain slices with one entry per live actor; Snapshot
// does not cap them at Config.MaxNumBots / MaxNumTowers. The shm codec
// (internal/shm, EncodeTransferState) writes them count-prefixed, so the
// encoded size varies with the number of actors.
type TransferState struct {
	MapSize int
	Terrain []worldmap.Terrain // row-major, len == MapSize*MapSize
	Flags   []vecmath.Vec2D

	OwnBots     []BotView
	EnemyBots   []BotView
	OwnTowers   []TowerView
	EnemyTowers []TowerView

	Scores [2]int
}

// Snapshot projects the authoritative State into a per-player transfer
// view, flipping coordinates into player 2's frame when for == Player2
// (spec section 4.3: "Player 2 sees coordinates flipped").
func (s *State) Snapshot(for_ actor.PlayerID) *TransferState {
	enemy := actor.Player2
	if for_ == actor.Player2 {
		enemy = actor.Player1
	}

	ts := &TransferState{
		MapSize: s.m.Size(),
		Terrain: make([]worldmap.Terrain, s.m.Size()*s.m.Size()),
		Flags:   make([]vecmath.Vec2D, 0, len(s.m.FlagOffsets())),
	}
	for y := 0; y < s.m.Size(); y++ {
		for x := 0; x < s.m.Size(); x++ {
			off := vecmath.Vec2D{X: x, Y: y}
			if for_ == actor.Player2 {
				off = coordflip.FlipTower(off, s.m.Size())
			}
			ts.Terrain[y*s.m.Size()+x] = s.m.At(off)
		}
	}
	for _, off := range s.m.FlagOffsets() {
		o := off
		if for_ == actor.Player2 {
			o = coordflip.FlipTower(off, s.m.Size())
		}
		ts.Flags = append(ts.Flags, o)
	}

	for _, id := range s.botOrder {
		b := s.bots[id]
		pos := b.Position
		if for_ == actor.Player2 {
			pos = coordflip.FlipBot(pos, s.m.Size())
		}
		v := BotView{ActorID: b.ID, HP: b.HP, MaxHP: b.MaxHP, Position: pos, State: b.State}
		if b.Player == for_ {
			ts.OwnBots = append(ts.OwnBots, v)
		} else if b.Player == enemy {
			ts.EnemyBots = append(ts.EnemyBots, v)
		}
	}
	for _, id := range s.towerOrder {
		tw := s.towers[id]
		pos := tw.Position
		if for_ == actor.Player2 {
			pos = coordflip.FlipTower(pos.Floor(), s.m.Size()).ToDouble()
		}
		v := TowerView{ActorID: tw.ID, HP: tw.HP, MaxHP: tw.MaxHP, Position: pos, State: tw.State}
		if tw.Player == for_ {
			ts.OwnTowers = append(ts.OwnTowers, v)
		} else if tw.Player == enemy {
			ts.EnemyTowers = append(ts.EnemyTowers, v)
		}
	}

	scores := s.sc.Scores()
	if for_ == actor.Player2 {
		ts.Scores = [2]int{scores[1], scores[0]}
	} else {
		ts.Scores = scores
	}
	return ts
}
