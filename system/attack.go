package system

import (
	"sync/atomic"

	"github.com/ohade/strategy-game/constant"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/event"
	"github.com/ohade/strategy-game/physics"
	"github.com/ohade/strategy-game/vmath"
)

// AttackSystem runs the engagement state machine after positions settle.
// A unit with a live target inside weapon range holds and fires on its
// cooldown; outside range it pursues. Cooldowns tick down every frame
// for every unit, including out-of-range and idle ones, so breaking off
// never grants a free reload
type AttackSystem struct {
	engine.SystemBase

	statShots  *atomic.Int64
	statDamage *atomic.Int64
}

func NewAttackSystem(world *engine.World) engine.System {
	s := &AttackSystem{
		SystemBase: engine.NewSystemBase(world),
	}
	s.statShots = world.Resources.Status.Ints.Get("combat.shots")
	s.statDamage = world.Resources.Status.Ints.Get("combat.damage")
	return s
}

func (s *AttackSystem) Name() string {
	return "attack"
}

func (s *AttackSystem) Priority() int {
	return constant.PriorityAttack
}

func (s *AttackSystem) EventTypes() []event.EventType {
	return nil
}

func (s *AttackSystem) HandleEvent(ev event.GameEvent) {}

func (s *AttackSystem) Update() {
	dt := s.Resource.Time.Dt()

	for _, e := range s.Component.Combats.Entities() {
		combat, _ := s.Component.Combats.Get(e)

		if combat.RemainingCooldown > 0 {
			combat.RemainingCooldown -= dt
			if combat.RemainingCooldown < 0 {
				combat.RemainingCooldown = 0
			}
			s.Component.Combats.Set(e, combat)
		}

		unit, ok := s.Component.Units.Get(e)
		if !ok || unit.State.Terminal() {
			continue
		}
		if combat.Target == core.NoEntity {
			continue
		}

		targetUnit, ok := s.Component.Units.Get(combat.Target)
		if !ok || targetUnit.State.Terminal() {
			continue // targeting clears the stale lock next tick
		}

		kin, okA := s.Component.Kinetics.Get(e)
		targetKin, okB := s.Component.Kinetics.Get(combat.Target)
		if !okA || !okB {
			continue
		}

		dist := vmath.Dist(kin.X, kin.Y, targetKin.X, targetKin.Y)

		if dist > combat.AttackRange {
			// Pursue: the movement system chases the mover's unit
			// target next tick
			if unit.State == core.StateAttacking {
				unit.State = core.StateMoving
				s.Component.Units.Set(e, unit)
			}
			if mover, ok := s.Component.Movers.Get(e); ok && mover.TargetUnit != combat.Target && !mover.HasPoint {
				mover.TargetUnit = combat.Target
				s.Component.Movers.Set(e, mover)
			}
			continue
		}

		if unit.State != core.StateAttacking {
			unit.State = core.StateAttacking
			s.Component.Units.Set(e, unit)
		}

		// Keep the nose on the target while holding position
		physics.FaceToward(&kin.Kinetic, targetKin.X, targetKin.Y, kin.MaxTurnRate, dt)
		s.Component.Kinetics.Set(e, kin)

		if combat.RemainingCooldown > 0 {
			continue
		}

		targetCombat, ok := s.Component.Combats.Get(combat.Target)
		if !ok {
			continue
		}
		targetCombat.HP -= combat.AttackPower
		if targetCombat.HP < 0 {
			targetCombat.HP = 0
		}
		s.Component.Combats.Set(combat.Target, targetCombat)

		combat.RemainingCooldown = combat.AttackCooldown
		s.Component.Combats.Set(e, combat)

		s.statShots.Add(1)
		s.statDamage.Add(int64(combat.AttackPower))
	}
}
