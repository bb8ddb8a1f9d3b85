package system

import (
	"sync/atomic"

	"github.com/ohade/strategy-game/constant"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/event"
	"github.com/ohade/strategy-game/parameter"
	"github.com/ohade/strategy-game/vmath"
)

// TargetingSystem validates combat targets and performs lock-on
// acquisition. Units that are idle, or moving to a point without an
// explicit target, engage the nearest opposing unit inside the lock-on
// radius. Ties break toward the lowest entity id so replays stay
// deterministic
type TargetingSystem struct {
	engine.SystemBase

	statLocks *atomic.Int64
}

func NewTargetingSystem(world *engine.World) engine.System {
	s := &TargetingSystem{
		SystemBase: engine.NewSystemBase(world),
	}
	s.statLocks = world.Resources.Status.Ints.Get("combat.lockons")
	return s
}

func (s *TargetingSystem) Name() string {
	return "targeting"
}

func (s *TargetingSystem) Priority() int {
	return constant.PriorityTargeting
}

func (s *TargetingSystem) EventTypes() []event.EventType {
	return nil
}

func (s *TargetingSystem) HandleEvent(ev event.GameEvent) {}

func (s *TargetingSystem) Update() {
	for _, e := range s.Component.Combats.Entities() {
		unit, ok := s.Component.Units.Get(e)
		if !ok || unit.State.Terminal() {
			continue
		}
		// Landing fighters are out of the fight
		if s.Component.Landings.Has(e) {
			continue
		}

		combat, _ := s.Component.Combats.Get(e)

		if combat.Target != core.NoEntity && !s.targetAlive(combat.Target) {
			combat.Target = core.NoEntity
			s.Component.Combats.Set(e, combat)

			mover, ok := s.Component.Movers.Get(e)
			if ok && mover.TargetUnit != core.NoEntity {
				mover.TargetUnit = core.NoEntity
				s.Component.Movers.Set(e, mover)
				if !mover.HasPoint && unit.State == core.StateMoving {
					unit.State = core.StateIdle
					s.Component.Units.Set(e, unit)
				}
			}
			if unit.State == core.StateAttacking {
				unit.State = core.StateIdle
				s.Component.Units.Set(e, unit)
			}
		}

		if combat.Target != core.NoEntity {
			continue
		}
		if unit.State != core.StateIdle && unit.State != core.StateMoving {
			continue
		}

		target := s.acquire(e, unit.Faction)
		if target == core.NoEntity {
			continue
		}

		combat.Target = target
		s.Component.Combats.Set(e, combat)

		// An idle unit pursues its lock; a unit with a standing move
		// order keeps its point and engages only when the target
		// crosses into weapon range
		if unit.State == core.StateIdle {
			if mover, ok := s.Component.Movers.Get(e); ok {
				mover.TargetUnit = target
				s.Component.Movers.Set(e, mover)
			}
			unit.State = core.StateMoving
			s.Component.Units.Set(e, unit)
		}

		s.statLocks.Add(1)
	}
}

func (s *TargetingSystem) targetAlive(e core.Entity) bool {
	unit, ok := s.Component.Units.Get(e)
	return ok && !unit.State.Terminal()
}

// acquire returns the nearest live opposing unit within the lock-on
// radius, NoEntity when none qualifies. Iteration over the sorted entity
// slice with a strict less-than makes the lowest id win distance ties
func (s *TargetingSystem) acquire(e core.Entity, faction core.Faction) core.Entity {
	kin, ok := s.Component.Kinetics.Get(e)
	if !ok {
		return core.NoEntity
	}

	best := core.NoEntity
	bestDist := parameter.LockOnRadius * parameter.LockOnRadius

	for _, other := range s.Component.Units.Entities() {
		if other == e {
			continue
		}
		u, _ := s.Component.Units.Get(other)
		if u.State.Terminal() || !faction.Opposes(u.Faction) {
			continue
		}
		otherKin, okKin := s.Component.Kinetics.Get(other)
		if !okKin || otherKin.Suspended {
			continue
		}

		d := vmath.DistSq(kin.X, kin.Y, otherKin.X, otherKin.Y)
		if d < bestDist {
			bestDist = d
			best = other
		}
	}
	return best
}
