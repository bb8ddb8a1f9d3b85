// simd runs the tactical simulation daemon: a fixed-tick world with an
// optional websocket surface for orders and frame snapshots
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ohade/strategy-game/command"
	"github.com/ohade/strategy-game/config"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/logging"
	"github.com/ohade/strategy-game/network"
	"github.com/ohade/strategy-game/parameter"
	"github.com/ohade/strategy-game/system"
)

func main() {
	if err := run(); err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Load("."); err != nil {
		return err
	}

	var logFile *os.File
	if dir := config.GetString("logsDir"); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			logFile, _ = os.Create(filepath.Join(dir, "simd.log"))
		}
	}
	log := logging.Setup(config.GetString("logLevel"), logFile)
	if logFile != nil {
		defer logFile.Close()
	}

	tickRate := config.GetInt("sim.tickRate")
	if tickRate <= 0 {
		tickRate = parameter.TickRate
	}
	game := engine.NewGame(log, time.Second/time.Duration(tickRate))

	game.AddSystem(system.NewOrderSystem(game.World))
	carrierSys := system.NewCarrierSystem(game.World)
	if config.GetBool("sim.strictStages") {
		carrierSys.(*system.CarrierSystem).SetStrict(true)
	}
	game.AddSystem(carrierSys)
	game.AddSystem(system.NewTargetingSystem(game.World))
	game.AddSystem(system.NewMovementSystem(game.World))
	game.AddSystem(system.NewCollisionSystem(game.World))
	game.AddSystem(system.NewAttackSystem(game.World))
	game.AddSystem(system.NewDeathSystem(game.World))

	spawnScenario(game.World)

	dispatcher := command.NewDispatcher(game.World, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return game.Run(ctx)
	})
	if config.GetBool("server.enabled") {
		server := network.NewServer(
			game, dispatcher,
			config.GetString("server.listen"),
			config.GetInt("server.snapshotHz"),
			log,
		)
		g.Go(func() error {
			return server.Run(ctx)
		})
	}

	log.Info().Int("tickRate", tickRate).Msg("simd up")
	return g.Wait()
}

// spawnScenario seeds the configured opening position: a friendly
// carrier group on the left, loose enemies on the right
func spawnScenario(w *engine.World) {
	carriers := config.GetInt("scenario.carriers")
	fighters := config.GetInt("scenario.fighters")
	enemies := config.GetInt("scenario.enemies")

	for i := 0; i < carriers; i++ {
		w.SpawnCarrier(core.FactionFriendly,
			parameter.MapWidth*0.2,
			parameter.MapHeight*(0.3+0.4*float64(i)),
			0)
	}
	for i := 0; i < fighters; i++ {
		w.SpawnFighter(core.FactionFriendly,
			parameter.MapWidth*0.3,
			parameter.MapHeight*0.2+float64(i)*60,
			0)
	}
	for i := 0; i < enemies; i++ {
		w.SpawnFighter(core.FactionEnemy,
			parameter.MapWidth*0.8,
			parameter.MapHeight*0.2+float64(i)*60,
			math.Pi)
	}
}
