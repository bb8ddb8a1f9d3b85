package system

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/ohade/strategy-game/constant"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/event"
)

// DeathSystem is the destruction sweep at the end of the pipeline. A unit
// whose hit points reached zero is marked destroyed, announced, and
// removed from the active set in the same tick, so no later tick can move
// it, target it, or land a hit on it. Destruction is terminal: the id is
// never re-equipped
type DeathSystem struct {
	engine.SystemBase

	log zerolog.Logger

	statDestroyed *atomic.Int64
}

func NewDeathSystem(world *engine.World) engine.System {
	s := &DeathSystem{
		SystemBase: engine.NewSystemBase(world),
		log:        world.Resources.Log.With().Str("system", "death").Logger(),
	}
	s.statDestroyed = world.Resources.Status.Ints.Get("units.destroyed")
	return s
}

func (s *DeathSystem) Name() string {
	return "death"
}

func (s *DeathSystem) Priority() int {
	return constant.PriorityDeath
}

func (s *DeathSystem) EventTypes() []event.EventType {
	return nil
}

func (s *DeathSystem) HandleEvent(ev event.GameEvent) {}

func (s *DeathSystem) Update() {
	for _, e := range s.Component.Combats.Entities() {
		combat, _ := s.Component.Combats.Get(e)
		if combat.Alive() {
			continue
		}
		unit, ok := s.Component.Units.Get(e)
		if !ok || unit.State.Terminal() {
			continue
		}

		unit.State = core.StateDestroyed
		s.Component.Units.Set(e, unit)

		s.releaseCapacity(e, unit.Home)
		s.dropCargo(e)

		s.World.PushEvent(event.EventUnitDestroyed, &event.UnitDestroyedPayload{
			Unit:    e,
			Faction: unit.Faction,
		})
		s.log.Info().
			Uint64("unit", uint64(e)).
			Str("faction", unit.Faction.String()).
			Msg("unit destroyed")
		s.statDestroyed.Add(1)

		s.World.DestroyEntity(e)
	}
}

// releaseCapacity hands an in-flight slot back to the fighter's home
// carrier so the bay can launch a replacement
func (s *DeathSystem) releaseCapacity(e core.Entity, home core.Entity) {
	if home == core.NoEntity {
		return
	}
	carrier, ok := s.Component.Carriers.Get(home)
	if !ok {
		return
	}
	if carrier.InFlight > 0 {
		carrier.InFlight--
		s.Component.Carriers.Set(home, carrier)
	}
}

// dropCargo handles a destroyed carrier: stowed ids go down with the
// ship, queued launches are cancelled, and inbound landers are released
// back to their own orders
func (s *DeathSystem) dropCargo(e core.Entity) {
	carrier, ok := s.Component.Carriers.Get(e)
	if !ok {
		return
	}

	lost := len(carrier.Stored) + len(carrier.LaunchQueue)
	if lost > 0 {
		s.log.Info().
			Uint64("carrier", uint64(e)).
			Int("fighters", lost).
			Msg("hangar lost with carrier")
	}

	for _, f := range s.Component.Landings.Entities() {
		landing, _ := s.Component.Landings.Get(f)
		if landing.Carrier != e {
			continue
		}
		s.Component.Landings.Remove(f)
		if kin, ok := s.Component.Kinetics.Get(f); ok && kin.Suspended {
			kin.Suspended = false
			s.Component.Kinetics.Set(f, kin)
		}
		if mover, ok := s.Component.Movers.Get(f); ok {
			mover.HasPoint = false
			mover.TargetUnit = core.NoEntity
			s.Component.Movers.Set(f, mover)
		}
		if unit, ok := s.Component.Units.Get(f); ok && unit.State == core.StateMoving {
			unit.State = core.StateIdle
			s.Component.Units.Set(f, unit)
		}
	}
}
