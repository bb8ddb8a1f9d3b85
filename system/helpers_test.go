package system

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ohade/strategy-game/engine"
)

const testTick = time.Second / 60

// newTestGame wires the full pipeline in tick order
func newTestGame() *engine.Game {
	g := engine.NewGame(zerolog.Nop(), testTick)
	g.AddSystem(NewOrderSystem(g.World))
	g.AddSystem(NewCarrierSystem(g.World))
	g.AddSystem(NewTargetingSystem(g.World))
	g.AddSystem(NewMovementSystem(g.World))
	g.AddSystem(NewCollisionSystem(g.World))
	g.AddSystem(NewAttackSystem(g.World))
	g.AddSystem(NewDeathSystem(g.World))
	return g
}

// step advances n ticks
func step(g *engine.Game, n int) {
	for i := 0; i < n; i++ {
		g.Step(testTick)
	}
}

// simTime returns the elapsed simulation seconds after n ticks
func simTime(n int) float64 {
	return testTick.Seconds() * float64(n)
}
