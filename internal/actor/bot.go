package actor

import "arenahost/internal/vecmath"

// BotState is the bot lifecycle state machine.
type BotState int

const (
	BotIdle BotState = iota
	BotMove
	BotMoveToBlast
	BotMoveToTransform
	BotBlast
	BotTransform
	BotDead
)

func (s BotState) String() string {
	switch s {
	case BotIdle:
		return "IDLE"
	case BotMove:
		return "MOVE"
	case BotMoveToBlast:
		return "MOVE_TO_BLAST"
	case BotMoveToTransform:
		return "MOVE_TO_TRANSFORM"
	case BotBlast:
		return "BLAST"
	case BotTransform:
		return "TRANSFORM"
	case BotDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// Bot is a mobile actor that can move, blast (self-destruct for area
// damage), or transform into a tower.
type Bot struct {
	Common

	Speed        int
	BlastRange   float64
	DamagePoints int

	// At most one of these five is active at any instant (the bot-intent
	// invariant). Destination/FinalDestination/TransformDestination use
	// the null sentinel for "unset".
	Destination         vecmath.DoubleVec2D
	FinalDestination    vecmath.DoubleVec2D
	TransformDestination vecmath.DoubleVec2D
	IsBlasting          bool
	IsTransforming      bool

	State BotState

	// newPosition is the position computed by Update, committed by
	// lateUpdate. Kept as a field (not applied immediately) so movement is
	// committed only in lateUpdate, after every actor's Update has run.
	newPosition    vecmath.DoubleVec2D
	hasNewPosition bool
}

// ClearIntents unsets all five intent slots, enforcing the bot-intent
// invariant. Called whenever a new intent is about to be assigned.
func (b *Bot) ClearIntents() {
	b.Destination = vecmath.NullDouble
	b.FinalDestination = vecmath.NullDouble
	b.TransformDestination = vecmath.NullDouble
	b.IsBlasting = false
	b.IsTransforming = false
}

// ActiveIntentCount returns how many of the five intent slots are set;
// the invariant requires this never exceed 1.
func (b *Bot) ActiveIntentCount() int {
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

// NewBot constructs an idle bot with no intents set.
func NewBot(player PlayerID, pos vecmath.DoubleVec2D, speed int, blastRange float64, damage, maxHP int) *Bot {
	b := &Bot{
		Common: Common{
			ID:       NextID(),
			Player:   player,
			Kind:     KindBot,
			HP:       maxHP,
			MaxHP:    maxHP,
			Position: pos,
		},
		Speed:        speed,
		BlastRange:   blastRange,
		DamagePoints: damage,
		State:        BotIdle,
	}
	b.ClearIntents()
	return b
}

// PathPlanner is the read-only navigation handle actors use to plan
// movement, narrowed from the full pathing.Planner to the one query
// actors need.
type PathPlanner interface {
	NextPosition(source, dest vecmath.DoubleVec2D, speed float64) (vecmath.DoubleVec2D, bool)
}

// Update drives the bot's transient-state machine for one turn, returning
// any deferred effects (blast damage, tower construction) the State must
// apply before lateUpdate. Update never mutates HP or commits movement;
// that happens in LateUpdate.
func (b *Bot) Update(planner PathPlanner) []Effect {
	if b.State == BotDead {
		return nil
	}
	if b.HP == 0 {
		b.State = BotDead
		return nil
	}

	// A bot already mid-transient-state (MOVE*, or having arrived at BLAST
	// / TRANSFORM on a prior turn's lateUpdate) continues that state
	// first; only an IDLE bot consults its intent fields to pick a new
	// one. This is what makes arrival at a MOVE_TO_BLAST/MOVE_TO_TRANSFORM
	// target durable across the turn boundary: lateUpdate already
	// committed BotBlast/BotTransform, so this Update call executes that
	// terminal state's side effect instead of re-deriving MOVE_TO_* from
	// the still-set FinalDestination/TransformDestination field.
	if b.State == BotIdle {
		switch {
		case b.IsBlasting:
			b.State = BotBlast
		case b.IsTransforming:
			b.State = BotTransform
		case !b.FinalDestination.IsNull():
			b.State = BotMoveToBlast
		case !b.TransformDestination.IsNull():
			b.State = BotMoveToTransform
		case !b.Destination.IsNull():
			b.State = BotMove
		}
	}

	switch b.State {
	case BotIdle:
		return nil

	case BotMove:
		return b.stepTowards(planner, b.Destination, BotIdle)

	case BotMoveToBlast:
		return b.stepTowards(planner, b.FinalDestination, BotBlast)

	case BotMoveToTransform:
		return b.stepTowards(planner, b.TransformDestination, BotTransform)

	case BotBlast:
		origin := b.Position
		b.Damage(b.HP) // the bot destroys itself
		return []Effect{BlastEffect{
			Attacker: b.Player,
			Origin:   origin,
			Range:    b.BlastRange,
			Damage:   b.DamagePoints,
		}}

	case BotTransform:
		return []Effect{ConstructTowerEffect{
			Player:   b.Player,
			BotID:    b.ID,
			Position: b.Position,
			BlastRng: b.BlastRange,
			Damage:   b.DamagePoints,
		}}
	}
	return nil
}

// stepTowards asks the planner for the next position toward target. If the
// planner reports arrival, the bot's next-turn state becomes arrivedState;
// only a plain move (arrivedState IDLE) clears its intent, while a
// MOVE_TO_BLAST/MOVE_TO_TRANSFORM target stays set. No movement is queued
// this turn past the arrival point. If the target is
// unreachable, the bot falls back to IDLE (the "unreachable destination"
// boundary case).
func (b *Bot) stepTowards(planner PathPlanner, target vecmath.DoubleVec2D, arrivedState BotState) []Effect {
	next, ok := planner.NextPosition(b.Position, target, float64(b.Speed))
	if !ok {
		b.ClearIntents()
		b.State = BotIdle
		return nil
	}
	if next.Equals(target) {
		b.newPosition = next
		b.hasNewPosition = true
		b.State = arrivedState
		if arrivedState == BotIdle {
			b.ClearIntents()
		}
		return nil
	}
	b.newPosition = next
	b.hasNewPosition = true
	return nil
}

// LateUpdate commits queued movement and damage. Score bookkeeping for
// flag-cell occupancy is handled by the caller (State), which re-censuses
// positions after every actor's LateUpdate.
func (b *Bot) LateUpdate() {
	if b.hasNewPosition {
		b.Position = b.newPosition
		b.hasNewPosition = false
	}
	if b.CommitDamage() {
		b.State = BotDead
		b.ClearIntents()
	}
}
