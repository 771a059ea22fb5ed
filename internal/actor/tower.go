package actor

import "arenahost/internal/vecmath"

// TowerState is the tower lifecycle state machine.
type TowerState int

const (
	TowerIdle TowerState = iota
	TowerBlast
	TowerDead
)

func (s TowerState) String() string {
	switch s {
	case TowerIdle:
		return "IDLE"
	case TowerBlast:
		return "BLAST"
	case TowerDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// Tower is a stationary actor built by transforming a bot.
type Tower struct {
	Common

	BlastRange   float64
	DamagePoints int
	Age          int
	IsBlasting   bool

	State TowerState
}

// NewTower constructs an idle tower. Used both for match-config towers (if
// any) and for towers born from a transforming bot, which inherit the
// bot's actor ID.
func NewTower(id uint64, player PlayerID, pos vecmath.DoubleVec2D, blastRange float64, damage, maxHP int) *Tower {
	return &Tower{
		Common: Common{
			ID:       id,
			Player:   player,
			Kind:     KindTower,
			HP:       maxHP,
			MaxHP:    maxHP,
			Position: pos,
		},
		BlastRange:   blastRange,
		DamagePoints: damage,
		State:        TowerIdle,
	}
}

// Update drives the tower's state machine for one turn, returning any
// deferred blast effect. IDLE -> BLAST -> DEAD all completes within a
// single turn: LateUpdate always commits BLAST to DEAD before the next
// Update call observes it.
func (t *Tower) Update() []Effect {
	if t.State == TowerDead {
		return nil
	}
	if t.HP == 0 {
		t.State = TowerDead
		return nil
	}
	if t.IsBlasting {
		t.State = TowerBlast
		origin := t.Position
		t.Damage(t.HP)
		return []Effect{BlastEffect{
			Attacker: t.Player,
			Origin:   origin,
			Range:    t.BlastRange,
			Damage:   t.DamagePoints,
		}}
	}
	return nil
}

// LateUpdate commits queued damage, advances age, and finalizes a BLAST
// tower's transition to DEAD.
func (t *Tower) LateUpdate() {
	t.Age++
	justDied := t.CommitDamage()
	if t.State == TowerBlast || justDied {
		t.State = TowerDead
	}
}
