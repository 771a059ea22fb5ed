// Package actor defines the common actor fields and the Bot/Tower state
// machines that drive per-turn updates. Per the deferred-intent design
// (replacing the source's raw back-pointers into State), Update produces a
// slice of Effect values instead of calling back into the world directly;
// State applies them between its update and lateUpdate passes.
package actor

import (
	"sync/atomic"

	"arenahost/internal/vecmath"
)

// PlayerID identifies a match participant.
type PlayerID int

const (
	Player1 PlayerID = iota
	Player2
	PlayerNull // tie / no owner
)

// Kind distinguishes the two actor archetypes.
type Kind int

const (
	KindBot Kind = iota
	KindTower
)

// idCounter is the process-wide monotonic actor-id source. Actor IDs are
// never reused and increase in creation order.
var idCounter uint64

// NextID returns the next actor ID, distinct from and greater than every
// previously issued ID in this process.
func NextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}

// ResetIDCounterForTest rewinds the process-wide counter. Test-only: real
// matches never reset it, since actor IDs must be globally unique for the
// lifetime of the host process.
func ResetIDCounterForTest() {
	atomic.StoreUint64(&idCounter, 0)
}

// Common holds the fields shared by Bot and Tower.
type Common struct {
	ID             uint64
	Player         PlayerID
	Kind           Kind
	HP             int
	MaxHP          int
	Position       vecmath.DoubleVec2D
	DamageIncurred int
}

// Damage queues damage to be committed at lateUpdate; it never mutates HP
// directly, preserving the invariant that HP only changes during
// lateUpdate.
func (c *Common) Damage(amount int) {
	if amount <= 0 {
		return
	}
	c.DamageIncurred += amount
}

// CommitDamage applies queued damage, clamps HP at zero, and resets the
// accumulator. Returns true if the actor's HP reached zero this turn.
func (c *Common) CommitDamage() (justDied bool) {
	before := c.HP
	c.HP -= c.DamageIncurred
	if c.HP < 0 {
		c.HP = 0
	}
	c.DamageIncurred = 0
	return before > 0 && c.HP == 0
}

// Alive reports whether HP is still positive.
func (c *Common) Alive() bool { return c.HP > 0 }

// Effect is a deferred mutation request produced by an actor's Update,
// applied by State between its update and lateUpdate passes.
type Effect interface {
	isEffect()
}

// BlastEffect requests damage to every enemy actor within range of origin,
// excluding the blaster's own player. Actors that die from it are cleaned
// up by State's LateUpdate: dead bots are removed, and dead towers are
// removed with their cell freed.
type BlastEffect struct {
	Attacker PlayerID
	Origin   vecmath.DoubleVec2D
	Range    float64
	Damage   int
}

func (BlastEffect) isEffect() {}

// ConstructTowerEffect requests a tower be created at Position for Player,
// inheriting BotID's identity, once the transforming bot is destroyed at
// end of turn.
type ConstructTowerEffect struct {
	Player   PlayerID
	BotID    uint64
	Position vecmath.DoubleVec2D
	BlastRng float64
	Damage   int
}

func (ConstructTowerEffect) isEffect() {}
