// Package worldstate is the authoritative match state: the owner of the
// map, the actors, the path planner, and the score manager. It exposes
// three mutation primitives (move, transform, blast) plus the two-phase
// per-turn Update/LateUpdate pass.
package worldstate

import (
	"fmt"
	"sort"

	"arenahost/internal/actor"
	"arenahost/internal/pathing"
	"arenahost/internal/spatial"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
)

// State owns the map, the actor population, the path planner, and the
// score manager for the match duration. It is mutated only by the main
// thread during the turn-processing window.
type State struct {
	cfg Config
	m   *worldmap.Map
	pl  *pathing.Planner
	sc  *ScoreManager

	bots       map[uint64]*actor.Bot
	botOrder   []uint64 // insertion order; determinism requirement
	towers     map[uint64]*actor.Tower
	towerOrder []uint64

	grid *spatial.ActorGrid

	pendingConstructs map[uint64]actor.ConstructTowerEffect
}

// New creates a State seeded with cfg.NumBotsStart bots at each player's
// base position, on the given map.
func New(cfg Config, m *worldmap.Map) *State {
	s := &State{
		cfg:               cfg,
		m:                 m,
		pl:                pathing.NewPlanner(m),
		sc:                NewScoreManager(cfg.BotScoreMultiplier, cfg.TowerScoreMultiplier),
		bots:              make(map[uint64]*actor.Bot),
		towers:            make(map[uint64]*actor.Tower),
		grid:              spatial.NewActorGrid(float64(cfg.MapSize), cfg.BlastImpactRadius*2, cfg.MaxNumBots+cfg.MaxNumTowers),
		pendingConstructs: make(map[uint64]actor.ConstructTowerEffect),
	}

	for p := 0; p < 2; p++ {
		base := cfg.BasePosition[p].ToDouble()
		for i := 0; i < cfg.NumBotsStart; i++ {
			b := actor.NewBot(actor.PlayerID(p), base, cfg.BotSpeed, cfg.BlastImpactRadius, cfg.BotDamage, cfg.BotMaxHP)
			s.bots[b.ID] = b
			s.botOrder = append(s.botOrder, b.ID)
		}
	}
	return s
}

// Map returns the authoritative map.
func (s *State) Map() *worldmap.Map { return s.m }

// Planner returns the authoritative path planner.
func (s *State) Planner() *pathing.Planner { return s.pl }

// Score returns the score manager.
func (s *State) Score() *ScoreManager { return s.sc }

// Config returns the match configuration this State was built with.
func (s *State) Config() Config { return s.cfg }

// Bots returns live bots in insertion (creation) order.
func (s *State) Bots() []*actor.Bot {
	out := make([]*actor.Bot, 0, len(s.botOrder))
	for _, id := range s.botOrder {
		out = append(out, s.bots[id])
	}
	return out
}

// Towers returns live towers in insertion (creation) order.
func (s *State) Towers() []*actor.Tower {
	out := make([]*actor.Tower, 0, len(s.towerOrder))
	for _, id := range s.towerOrder {
		out = append(out, s.towers[id])
	}
	return out
}

// Bot looks up a live bot by ID.
func (s *State) Bot(id uint64) (*actor.Bot, bool) {
	b, ok := s.bots[id]
	return b, ok
}

// Tower looks up a live tower by ID.
func (s *State) Tower(id uint64) (*actor.Tower, bool) {
	t, ok := s.towers[id]
	return t, ok
}

// --- Mutation primitives: move, transform, blast ---

// MoveBot sets a pure-move intent on the bot, clearing any other intent.
func (s *State) MoveBot(botID uint64, dest vecmath.DoubleVec2D) error {
	b, ok := s.bots[botID]
	if !ok {
		return fmt.Errorf("worldstate: no such bot %d", botID)
	}
	b.ClearIntents()
	b.Destination = dest
	return nil
}

// BlastActor sets a blast intent on a bot or a tower. If at equals the
// actor's current position the blast fires immediately next Update (the
// IsBlasting flag); otherwise (bots only) it becomes a move-then-blast
// final_destination. Towers cannot move, so a tower blast destination
// must equal its own position.
func (s *State) BlastActor(actorID uint64, at vecmath.DoubleVec2D) error {
	if b, ok := s.bots[actorID]; ok {
		b.ClearIntents()
		if b.Position.Equals(at) {
			b.IsBlasting = true
		} else {
			b.FinalDestination = at
		}
		return nil
	}
	if t, ok := s.towers[actorID]; ok {
		if !t.Position.Equals(at) {
			return fmt.Errorf("worldstate: tower %d cannot blast away from its own cell", actorID)
		}
		t.IsBlasting = true
		return nil
	}
	return fmt.Errorf("worldstate: no such actor %d", actorID)
}

// TransformBot sets a transform intent on a bot: immediate if at equals
// its current position, otherwise a move-then-transform
// transform_destination.
func (s *State) TransformBot(botID uint64, at vecmath.DoubleVec2D) error {
	b, ok := s.bots[botID]
	if !ok {
		return fmt.Errorf("worldstate: no such bot %d", botID)
	}
	b.ClearIntents()
	if b.Position.Equals(at) {
		b.IsTransforming = true
	} else {
		b.TransformDestination = at
	}
	return nil
}

// --- Two-phase per-turn update ---

// Update drives every actor's transient-state transition, then applies the
// deferred blast/construct effects those transitions produced. Movement
// and damage are only queued here, not committed; LateUpdate commits them.
func (s *State) Update() {
	var effects []actor.Effect
	for _, id := range s.botOrder {
		effects = append(effects, s.bots[id].Update(s.pl)...)
	}
	for _, id := range s.towerOrder {
		effects = append(effects, s.towers[id].Update()...)
	}

	for _, eff := range effects {
		switch e := eff.(type) {
		case actor.BlastEffect:
			s.applyBlast(e)
		case actor.ConstructTowerEffect:
			s.pendingConstructs[e.BotID] = e
		}
	}
}

func (s *State) applyBlast(e actor.BlastEffect) {
	s.grid.Clear()
	botIdx := make([]*actor.Bot, 0, len(s.botOrder))
	for _, id := range s.botOrder {
		b := s.bots[id]
		botIdx = append(botIdx, b)
		s.grid.Insert(len(botIdx)-1, b.Position.X, b.Position.Y)
	}
	towerBase := len(botIdx)
	towerIdx := make([]*actor.Tower, 0, len(s.towerOrder))
	for _, id := range s.towerOrder {
		t := s.towers[id]
		towerIdx = append(towerIdx, t)
		s.grid.Insert(towerBase+len(towerIdx)-1, t.Position.X, t.Position.Y)
	}

	for _, idx := range s.grid.QueryRadius(e.Origin.X, e.Origin.Y, e.Range) {
		if idx < towerBase {
			b := botIdx[idx]
			if b.Player == e.Attacker || b.State == actor.BotDead {
				continue
			}
			if b.Position.Distance(e.Origin) <= e.Range {
				b.Damage(e.Damage)
			}
		} else {
			t := towerIdx[idx-towerBase]
			if t.Player == e.Attacker || t.State == actor.TowerDead {
				continue
			}
			if t.Position.Distance(e.Origin) <= e.Range {
				t.Damage(e.Damage)
			}
		}
	}
}

// LateUpdate commits queued movement and damage, retires actors that
// reached DEAD this turn, spawns towers from bots that completed
// TRANSFORM, and re-censuses flag occupancy. Must be called once per turn,
// after Update.
func (s *State) LateUpdate() {
	// Transform spawns happen before the generic per-bot LateUpdate so a
	// transforming bot never takes its own HP-based death path.
	var transformedIDs []uint64
	for id, eff := range s.pendingConstructs {
		if s.spawnTowerFromTransform(eff) {
			transformedIDs = append(transformedIDs, id)
		}
	}
	for _, id := range transformedIDs {
		delete(s.pendingConstructs, id)
		s.removeBot(id)
	}

	var deadBots []uint64
	for _, id := range s.botOrder {
		b, ok := s.bots[id]
		if !ok {
			continue // already removed via transform this turn
		}
		b.LateUpdate()
		if b.State == actor.BotDead {
			deadBots = append(deadBots, id)
		}
	}
	for _, id := range deadBots {
		s.removeBot(id)
	}

	var deadTowers []uint64
	for _, id := range s.towerOrder {
		t := s.towers[id]
		t.LateUpdate()
		if t.State == actor.TowerDead {
			deadTowers = append(deadTowers, id)
		}
	}
	for _, id := range deadTowers {
		s.removeTower(id)
	}

	s.sc.Update(s.Bots(), s.Towers(), s.m)
}

func (s *State) spawnTowerFromTransform(eff actor.ConstructTowerEffect) bool {
	offset := pathing.TowerOffset(eff.Position, eff.Player == actor.Player2)
	if err := s.m.BuildTower(offset); err != nil {
		return false
	}
	tw := actor.NewTower(eff.BotID, eff.Player, offset.ToDouble(), eff.BlastRng, eff.Damage, s.cfg.BotMaxHP*s.cfg.TowerHPScale)
	s.towers[tw.ID] = tw
	s.towerOrder = append(s.towerOrder, tw.ID)
	s.pl.RebuildGraph()
	return true
}

func (s *State) removeBot(id uint64) {
	delete(s.bots, id)
	s.botOrder = removeID(s.botOrder, id)
}

func (s *State) removeTower(id uint64) {
	off := s.towers[id].Position.Floor()
	_ = s.m.DestroyTower(off)
	delete(s.towers, id)
	s.towerOrder = removeID(s.towerOrder, id)
	s.pl.RebuildGraph()
}

func removeID(order []uint64, id uint64) []uint64 {
	out := order[:0:0]
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// IsGameOver always reports false: a match ends only on turn-count
// exhaustion, timeout, instruction-limit exceedance, or cancellation —
// all decided by the caller (MainDriver), never by State itself.
func (s *State) IsGameOver() bool { return false }

// ActorIDsSorted returns every live actor ID across both populations, for
// tests asserting the monotonic-and-distinct actor-id invariant.
func (s *State) ActorIDsSorted() []uint64 {
	ids := make([]uint64, 0, len(s.botOrder)+len(s.towerOrder))
	ids = append(ids, s.botOrder...)
	ids = append(ids, s.towerOrder...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
