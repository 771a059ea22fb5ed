package worldstate

import "arenahost/internal/vecmath"

// Config carries the tunable match constants. internal/config applies
// environment-variable overrides before a Config reaches State.
type Config struct {
	MapSize      int
	MaxNumBots   int
	MaxNumTowers int

	BotSpeed          int
	BlastImpactRadius float64

	NumBotsStart      int
	BotSpawnFrequency int // carried for completeness; see DESIGN.md: no mid-match spawning is implemented

	BotScoreMultiplier   int
	TowerScoreMultiplier int

	BasePosition [2]vecmath.Vec2D

	// Starting bot stats. No single universal hp/damage constant is
	// baked into the engine; these are configuration defaults, not
	// invariants.
	BotMaxHP       int
	BotDamage      int
	TowerHPScale   int // tower max HP = bot max HP * TowerHPScale
	TowerDamage    int
	TowerBlastRng  float64
}

// DefaultConfig returns the default match configuration values.
func DefaultConfig() Config {
	return Config{
		MapSize:              100,
		MaxNumBots:            500,
		MaxNumTowers:          50,
		BotSpeed:              2,
		BlastImpactRadius:     3,
		NumBotsStart:          20,
		BotSpawnFrequency:     1,
		BotScoreMultiplier:    10,
		TowerScoreMultiplier:  25,
		BasePosition:          [2]vecmath.Vec2D{{X: 5, Y: 5}, {X: 94, Y: 94}},
		BotMaxHP:              100,
		BotDamage:             50,
		TowerHPScale:          3,
		TowerDamage:           50,
		TowerBlastRng:         3,
	}
}
