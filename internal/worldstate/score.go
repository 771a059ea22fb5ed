package worldstate

import (
	"arenahost/internal/actor"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
)

// ScoreManager counts how many bots and towers each player currently
// stands on a FLAG cell, and converts that per-turn census into additive
// score increments (per-turn census x multiplier, summed), rather than
// a dominance-only variant where only the leader scores.
type ScoreManager struct {
	botMultiplier   int
	towerMultiplier int

	botsOnFlag   [2]int
	towersOnFlag [2]int
	score        [2]int
}

// NewScoreManager builds a score manager with the given per-census-unit
// multipliers.
func NewScoreManager(botMultiplier, towerMultiplier int) *ScoreManager {
	return &ScoreManager{botMultiplier: botMultiplier, towerMultiplier: towerMultiplier}
}

// Update re-censuses flag occupancy from the current actor positions and
// accumulates this turn's score increment. Only live actors (HP > 0,
// state not DEAD) are counted.
func (sm *ScoreManager) Update(bots []*actor.Bot, towers []*actor.Tower, m *worldmap.Map) {
	sm.botsOnFlag = [2]int{}
	sm.towersOnFlag = [2]int{}

	// A built tower overwrites its cell's terrain with TOWER, including
	// on a cell that started as FLAG, so flag occupancy can't be read
	// back from the live terrain for towers. FlagOffsets is the fixed
	// set BuildTower/DestroyTower never mutate; check membership in it
	// instead.
	flags := make(map[vecmath.Vec2D]struct{}, len(m.FlagOffsets()))
	for _, f := range m.FlagOffsets() {
		flags[f] = struct{}{}
	}

	for _, b := range bots {
		if b.State == actor.BotDead {
			continue
		}
		if _, onFlag := flags[b.Position.Floor()]; onFlag {
			sm.botsOnFlag[b.Player]++
		}
	}
	for _, tw := range towers {
		if tw.State == actor.TowerDead {
			continue
		}
		if _, onFlag := flags[tw.Position.Floor()]; onFlag {
			sm.towersOnFlag[tw.Player]++
		}
	}

	for p := 0; p < 2; p++ {
		sm.score[p] += sm.botsOnFlag[p]*sm.botMultiplier + sm.towersOnFlag[p]*sm.towerMultiplier
	}
}

// BotsOnFlag returns the current per-player live-bot-on-FLAG census.
func (sm *ScoreManager) BotsOnFlag() [2]int { return sm.botsOnFlag }

// TowersOnFlag returns the current per-player live-tower-on-FLAG census.
func (sm *ScoreManager) TowersOnFlag() [2]int { return sm.towersOnFlag }

// Scores returns the cumulative score for each player.
func (sm *ScoreManager) Scores() [2]int { return sm.score }
