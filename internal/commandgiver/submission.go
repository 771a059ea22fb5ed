package commandgiver

import (
	"arenahost/internal/actor"
	"arenahost/internal/vecmath"
)

// BotIntent is one bot entry in a player's returned turn submission: the
// actor's reported identity/property fields (which must match
// authoritative, modulo the player-2 flip) plus its intent fields.
type BotIntent struct {
	ActorID  uint64
	HP       int
	Position vecmath.DoubleVec2D
	State    actor.BotState

	Destination          vecmath.DoubleVec2D // vecmath.NullDouble if unset
	FinalDestination     vecmath.DoubleVec2D
	TransformDestination vecmath.DoubleVec2D
	IsBlasting           bool
	IsTransforming       bool
}

// TowerIntent is one tower entry in a player's returned turn submission.
type TowerIntent struct {
	ActorID    uint64
	HP         int
	Position   vecmath.DoubleVec2D
	State      actor.TowerState
	IsBlasting bool
}

// Submission is everything a player process returned for one turn, still
// in that player's coordinate frame (flipped for player 2).
type Submission struct {
	OwnBots     []BotIntent
	OwnTowers   []TowerIntent
	EnemyBots   []BotIntent
	EnemyTowers []TowerIntent
}

// intentCount reports how many of the bot's five mutually-exclusive
// intent slots are set, matching the bot-intent invariant's accounting.
func (b BotIntent) intentCount() int {
	n := 0
	if !b.Destination.IsNull() {
		n++
	}
	if !b.FinalDestination.IsNull() {
		n++
	}
	if !b.TransformDestination.IsNull() {
		n++
	}
	if b.IsBlasting {
		n++
	}
	if b.IsTransforming {
		n++
	}
	return n
}
