package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ohade/strategy-game/event"
	"github.com/ohade/strategy-game/status"
)

// Game owns the ECS world, the event queue, and the fixed-tick loop.
// All entity mutation happens on the tick goroutine; producers only push
// events into the queue
type Game struct {
	World *World

	queue       *event.EventQueue
	frameNumber atomic.Int64

	// handlers routes event types to the systems that subscribed to them,
	// built once when systems are registered
	handlers map[event.EventType][]System

	// observers receive notification events after systems have run
	observers []func(event.GameEvent)

	tickInterval time.Duration
	log          zerolog.Logger

	// stepSeconds gauges the wall time of the last Step for the status
	// surface; a value creeping toward the tick interval means the
	// pipeline is about to miss frames
	stepSeconds *status.AtomicFloat
}

// NewGame creates a game context around a fresh world
func NewGame(log zerolog.Logger, tickInterval time.Duration) *Game {
	g := &Game{
		World:        NewWorld(),
		queue:        event.NewEventQueue(),
		handlers:     make(map[event.EventType][]System),
		tickInterval: tickInterval,
		log:          log,
	}
	g.World.Resources.Log = log
	g.World.SetEventMetadata(g.queue, &g.frameNumber)
	g.stepSeconds = g.World.Resources.Status.Floats.Get("engine.stepSeconds")
	return g
}

// Queue exposes the event queue for producers (command dispatcher, network)
func (g *Game) Queue() *event.EventQueue {
	return g.queue
}

// FrameNumber returns the current tick index
func (g *Game) FrameNumber() int64 {
	return g.frameNumber.Load()
}

// AddSystem registers a system with the world and subscribes it to its
// event types
func (g *Game) AddSystem(s System) {
	g.World.AddSystem(s)
	for _, t := range s.EventTypes() {
		g.handlers[t] = append(g.handlers[t], s)
	}
}

// Observe registers a callback for notification events emitted by systems.
// Callbacks run on the tick goroutine; keep them short
func (g *Game) Observe(fn func(event.GameEvent)) {
	g.observers = append(g.observers, fn)
}

// Step advances the simulation by dt: drain pending events to their
// subscribed systems, then run every system in priority order.
// Events pushed during the step are delivered at the start of the next
// tick, which keeps command application strictly before integration
func (g *Game) Step(dt time.Duration) {
	start := time.Now()
	defer func() {
		g.stepSeconds.Set(time.Since(start).Seconds())
	}()

	g.World.RunSafe(func() {
		frame := g.frameNumber.Add(1)
		g.World.Resources.Time.Update(dt, frame)

		for _, ev := range g.queue.Consume() {
			systems, ok := g.handlers[ev.Type]
			if !ok {
				for _, fn := range g.observers {
					fn(ev)
				}
				continue
			}
			for _, s := range systems {
				s.HandleEvent(ev)
			}
		}

		g.World.UpdateLocked()
	})
}

// Run drives the fixed-tick loop until the context is cancelled
func (g *Game) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.tickInterval)
	defer ticker.Stop()

	g.log.Info().Dur("tick", g.tickInterval).Msg("simulation loop started")

	for {
		select {
		case <-ctx.Done():
			g.log.Info().Int64("frames", g.FrameNumber()).Msg("simulation loop stopped")
			return ctx.Err()
		case <-ticker.C:
			g.Step(g.tickInterval)
		}
	}
}
