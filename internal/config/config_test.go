package config

import "testing"

func TestMatchFromEnvDefaultsMatchSpec(t *testing.T) {
	t.Setenv("ARENA_MAP_SIZE", "")
	cfg := MatchFromEnv()
	if cfg.MapSize != 100 || cfg.MaxNumBots != 500 || cfg.BotSpeed != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestMatchFromEnvOverride(t *testing.T) {
	t.Setenv("ARENA_MAP_SIZE", "40")
	t.Setenv("ARENA_BOT_SPEED", "5")
	cfg := MatchFromEnv()
	if cfg.MapSize != 40 {
		t.Errorf("MapSize = %d, want 40", cfg.MapSize)
	}
	if cfg.BotSpeed != 5 {
		t.Errorf("BotSpeed = %d, want 5", cfg.BotSpeed)
	}
}

func TestRuntimeFromEnvDefaults(t *testing.T) {
	cfg := RuntimeFromEnv()
	if cfg.NumTurns != 1000 || cfg.GameDurationMS != 50000 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
}
