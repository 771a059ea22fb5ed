// Command arenahost is the match runner: it wires together
// configuration, the two player processes, the authoritative world
// state, and every ambient service (replay, metrics, spectate, debug
// server) into one running match.
//
// Usage: arenahost <player1-binary> <player2-binary>
package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"arenahost/internal/config"
	"arenahost/internal/debugserver"
	"arenahost/internal/maindriver"
	"arenahost/internal/matchlog"
	"arenahost/internal/renderdebug"
	"arenahost/internal/spectate"
	"arenahost/internal/vecmath"
	"arenahost/internal/worldmap"
	"arenahost/internal/worldstate"
)

func main() {
	config.LoadDotEnv()

	if len(os.Args) < 3 {
		log.Fatalf("usage: %s <player1-binary> <player2-binary>", os.Args[0])
	}
	player1Path, player2Path := os.Args[1], os.Args[2]

	matchID := uuid.New().String()
	logger := matchlog.New()

	worldCfg := config.MatchFromEnv()
	runtimeCfg := config.RuntimeFromEnv()

	if err := debugserver.Start(debugserver.Config{
		Enabled:    true,
		ListenAddr: runtimeCfg.DebugServerAddr,
		ReplayPath: runtimeCfg.ReplayPath,
	}); err != nil {
		log.Printf("arenahost: debug server disabled: %v", err)
	}

	hub := spectate.NewHub()
	go func() {
		mux := spectate.NewServeMux(hub)
		if err := http.ListenAndServe(runtimeCfg.SpectateAddr, mux); err != nil {
			log.Printf("arenahost: spectate server stopped: %v", err)
		}
	}()

	m := generateMap(worldCfg)

	driverCfg := maindriver.Config{
		MatchID:                    matchID,
		World:                      worldCfg,
		NumTurns:                   runtimeCfg.NumTurns,
		GameDuration:               time.Duration(runtimeCfg.GameDurationMS) * time.Millisecond,
		PlayerInstructionLimitTurn: runtimeCfg.PlayerInstructionLimitTurn,
		PlayerInstructionLimitGame: runtimeCfg.PlayerInstructionLimitGame,
		ShmPath:                    [2]string{runtimeCfg.SharedMemoryPathP1, runtimeCfg.SharedMemoryPathP2},
		PlayerBinary:               [2]string{player1Path, player2Path},
		ReplayPath:                 runtimeCfg.ReplayPath,
	}

	if err := writeShmPathFiles(driverCfg.ShmPath); err != nil {
		log.Fatalf("arenahost: writing shm path files: %v", err)
	}

	driver, err := maindriver.New(driverCfg, m, logger)
	if err != nil {
		log.Fatalf("arenahost: failed to start match: %v", err)
	}
	defer driver.Close()
	driver.SetSpectator(hub)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("arenahost: received shutdown signal, cancelling match")
		driver.Cancel()
	}()

	result, err := driver.Run()
	if err != nil {
		log.Fatalf("arenahost: match run failed: %v", err)
	}

	log.Printf("arenahost: match %s finished: winner=%d win_type=%s", matchID, result.Winner, result.WinType)

	if debugPNG := os.Getenv("ARENA_DEBUG_PNG"); debugPNG != "" {
		if err := renderdebug.Render(driver.State(), debugPNG); err != nil {
			log.Printf("arenahost: failed to render debug PNG: %v", err)
		}
	}
}

// generateMap builds a symmetric board: a central flag and two full-height
// water columns inset size/10 cells from the left and right edges, each
// with a one-cell gap in the row of the base beside it. The original simulator loads its
// map from an external file; since no map file format is specified here,
// this CLI entry point synthesizes the simplest layout that exercises
// every terrain kind (LAND, WATER, FLAG) the rest of the system cares
// about.
func generateMap(cfg worldstate.Config) *worldmap.Map {
	size := cfg.MapSize
	overrides := make(map[vecmath.Vec2D]worldmap.Terrain)

	center := size / 2
	overrides[vecmath.Vec2D{X: center, Y: center}] = worldmap.Flag

	border := size / 10
	if border < 1 {
		border = 1
	}
	for i := 0; i < size; i++ {
		overrides[vecmath.Vec2D{X: border, Y: i}] = worldmap.Water
		overrides[vecmath.Vec2D{X: size - 1 - border, Y: i}] = worldmap.Water
	}
	// Base positions must stay reachable.
	for _, base := range cfg.BasePosition {
		delete(overrides, base)
	}
	delete(overrides, vecmath.Vec2D{X: border, Y: cfg.BasePosition[0].Y})
	delete(overrides, vecmath.Vec2D{X: size - 1 - border, Y: cfg.BasePosition[1].Y})

	return worldmap.New(size, overrides)
}

func writeShmPathFiles(paths [2]string) error {
	if err := os.WriteFile("shm1.txt", []byte(paths[0]), 0600); err != nil {
		return err
	}
	return os.WriteFile("shm2.txt", []byte(paths[1]), 0600)
}
