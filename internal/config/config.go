// Package config provides centralized configuration management for a
// match run. This is the SINGLE SOURCE OF TRUTH for the tunable match
// constants and for the host process's own runtime settings (ports,
// file paths). Environment variables override the defaults; callers
// that need the bare defaults use worldstate.DefaultConfig directly.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"arenahost/internal/vecmath"
	"arenahost/internal/worldstate"
)

// LoadDotEnv loads a .env file if present, trying the working directory
// then its parent, matching the fallback the rest of this module's
// command-line entry points use. Absence of a .env file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		_ = godotenv.Load("../.env")
	}
}

// MatchFromEnv returns a worldstate.Config seeded from its defaults,
// with any ARENA_* environment variables overriding them.
func MatchFromEnv() worldstate.Config {
	cfg := worldstate.DefaultConfig()

	if v := getEnvInt("ARENA_MAP_SIZE", 0); v > 0 {
		cfg.MapSize = v
	}
	if v := getEnvInt("ARENA_MAX_NUM_BOTS", 0); v > 0 {
		cfg.MaxNumBots = v
	}
	if v := getEnvInt("ARENA_MAX_NUM_TOWERS", 0); v > 0 {
		cfg.MaxNumTowers = v
	}
	if v := getEnvInt("ARENA_BOT_SPEED", 0); v > 0 {
		cfg.BotSpeed = v
	}
	if v := getEnvFloat("ARENA_BLAST_IMPACT_RADIUS", -1); v >= 0 {
		cfg.BlastImpactRadius = v
	}
	if v := getEnvInt("ARENA_NUM_BOTS_START", -1); v >= 0 {
		cfg.NumBotsStart = v
	}
	if v := getEnvInt("ARENA_BOT_SCORE_MULTIPLIER", -1); v >= 0 {
		cfg.BotScoreMultiplier = v
	}
	if v := getEnvInt("ARENA_TOWER_SCORE_MULTIPLIER", -1); v >= 0 {
		cfg.TowerScoreMultiplier = v
	}
	return cfg
}

// RuntimeConfig is the host process's own settings: timing budgets, I/O
// paths, and the debug/spectate surface, none of which belong on
// worldstate.Config since State itself never reads them.
type RuntimeConfig struct {
	NumTurns                  int
	GameDurationMS            int
	PlayerInstructionLimitTurn uint64
	PlayerInstructionLimitGame uint64

	SharedMemoryPathP1 string
	SharedMemoryPathP2 string
	ReplayPath         string

	DebugServerAddr string
	SpectateAddr    string
}

// DefaultRuntime returns the default NUM_TURNS / GAME_DURATION_MS /
// instruction-limit constants and this module's own default file
// layout.
func DefaultRuntime() RuntimeConfig {
	return RuntimeConfig{
		NumTurns:                   1000,
		GameDurationMS:             50000,
		PlayerInstructionLimitTurn: 10_000_000,
		PlayerInstructionLimitGame: 100_000_000,
		SharedMemoryPathP1:         "/dev/shm/arenahost_p1",
		SharedMemoryPathP2:         "/dev/shm/arenahost_p2",
		ReplayPath:                 "replay.bin",
		DebugServerAddr:            "127.0.0.1:6060",
		SpectateAddr:               "127.0.0.1:6061",
	}
}

// RuntimeFromEnv overlays environment overrides onto DefaultRuntime.
func RuntimeFromEnv() RuntimeConfig {
	cfg := DefaultRuntime()
	if v := getEnvInt("ARENA_NUM_TURNS", 0); v > 0 {
		cfg.NumTurns = v
	}
	if v := getEnvInt("ARENA_GAME_DURATION_MS", 0); v > 0 {
		cfg.GameDurationMS = v
	}
	if v := os.Getenv("ARENA_SHM_PATH_P1"); v != "" {
		cfg.SharedMemoryPathP1 = v
	}
	if v := os.Getenv("ARENA_SHM_PATH_P2"); v != "" {
		cfg.SharedMemoryPathP2 = v
	}
	if v := os.Getenv("ARENA_REPLAY_PATH"); v != "" {
		cfg.ReplayPath = v
	}
	if v := os.Getenv("ARENA_DEBUG_ADDR"); v != "" {
		cfg.DebugServerAddr = v
	}
	if v := os.Getenv("ARENA_SPECTATE_ADDR"); v != "" {
		cfg.SpectateAddr = v
	}
	return cfg
}

// BasePositions is a convenience accessor mirroring the base-position
// pair carried on worldstate.Config, exported separately so callers that
// only need spawn points don't need the whole Config.
func BasePositions(cfg worldstate.Config) [2]vecmath.Vec2D { return cfg.BasePosition }

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
