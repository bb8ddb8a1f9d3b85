package system

import (
	"sync/atomic"

	"github.com/ohade/strategy-game/component"
	"github.com/ohade/strategy-game/constant"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/event"
	"github.com/ohade/strategy-game/parameter"
	"github.com/ohade/strategy-game/physics"
	"github.com/ohade/strategy-game/vmath"
)

// idleDrag bleeds residual velocity once a unit has no movement intent,
// so launch boosts and collision shoves do not carry a unit across the
// map forever
const idleDrag = 4.0

// MovementSystem turns movement intent into motion: seek steering toward
// the active target, proximity bias away from carrier hulls, then bounded
// integration. Carriers under a derived movement lock hold position for
// the tick unless an emergency override lifted the lock
type MovementSystem struct {
	engine.SystemBase

	// carrier scratch rebuilt each tick for the avoidance scan
	hulls []hullRef

	statMoving *atomic.Int64
}

type hullRef struct {
	id     core.Entity
	kin    component.KineticComponent
	buffer float64
}

func NewMovementSystem(world *engine.World) engine.System {
	s := &MovementSystem{
		SystemBase: engine.NewSystemBase(world),
		hulls:      make([]hullRef, 0, 8),
	}
	s.statMoving = world.Resources.Status.Ints.Get("movement.active")
	return s
}

func (s *MovementSystem) Name() string {
	return "movement"
}

func (s *MovementSystem) Priority() int {
	return constant.PriorityMovement
}

func (s *MovementSystem) EventTypes() []event.EventType {
	return nil
}

func (s *MovementSystem) HandleEvent(ev event.GameEvent) {}

func (s *MovementSystem) Update() {
	dt := s.Resource.Time.Dt()
	if dt <= 0 {
		return
	}

	s.collectHulls()

	moving := int64(0)
	for _, e := range s.Component.Kinetics.Entities() {
		unit, ok := s.Component.Units.Get(e)
		if !ok || unit.State.Terminal() {
			continue
		}

		kin, _ := s.Component.Kinetics.Get(e)

		if carrier, isCarrier := s.Component.Carriers.Get(e); isCarrier {
			if carrier.MovementLocked {
				physics.Halt(&kin.Kinetic)
				s.Component.Kinetics.Set(e, kin)
				continue
			}
		}

		maxSpeed := s.speedLimit(e, &kin)
		targetX, targetY, hasTarget := s.resolveTarget(e, unit.State)

		if hasTarget {
			s.applyAvoidance(e, &kin)
			profile := physics.SteerProfile{
				MaxSpeed:    maxSpeed,
				MaxAccel:    kin.MaxAccel,
				MaxTurnRate: kin.MaxTurnRate,
			}
			physics.ApplySeek(&kin.Kinetic, targetX, targetY, &profile, dt)
			moving++
		} else {
			// No intent: bleed whatever momentum is left
			drag := 1.0 - idleDrag*dt
			if drag < 0 {
				drag = 0
			}
			kin.VelX *= drag
			kin.VelY *= drag
			kin.AccelX = 0
			kin.AccelY = 0
		}

		physics.Integrate(&kin.Kinetic, maxSpeed, dt)

		if hasTarget && s.pointTarget(e) && physics.Arrived(&kin.Kinetic, targetX, targetY) {
			kin.X = targetX
			kin.Y = targetY
			physics.Halt(&kin.Kinetic)
			s.finishMove(e)
		}

		s.Component.Kinetics.Set(e, kin)
	}

	s.statMoving.Store(moving)
}

// collectHulls caches carrier bodies and their proximity envelopes for
// the avoidance scan
func (s *MovementSystem) collectHulls() {
	s.hulls = s.hulls[:0]
	for _, e := range s.Component.Carriers.Entities() {
		unit, ok := s.Component.Units.Get(e)
		if !ok || unit.State.Terminal() {
			continue
		}
		kin, ok := s.Component.Kinetics.Get(e)
		if !ok {
			continue
		}
		s.hulls = append(s.hulls, hullRef{
			id:     e,
			kin:    kin,
			buffer: kin.Radius * parameter.ProximityRadiusFactor,
		})
	}
}

// speedLimit caps an aligning lander's speed so its turn circle (speed
// over turn rate) fits inside the align envelope; everybody else flies
// at full MaxSpeed
func (s *MovementSystem) speedLimit(e core.Entity, kin *component.KineticComponent) float64 {
	landing, ok := s.Component.Landings.Get(e)
	if !ok || landing.Stage < constant.LandingAligning {
		return kin.MaxSpeed
	}
	limit := kin.MaxTurnRate * parameter.LandingAlignDistance * parameter.LandingClosingFactor
	if limit < kin.MaxSpeed {
		return limit
	}
	return kin.MaxSpeed
}

// applyAvoidance biases a small unit away from any carrier hull it is
// closing on inside the proximity envelope. Landing fighters are exempt:
// their whole purpose is to close on the hull
func (s *MovementSystem) applyAvoidance(e core.Entity, kin *component.KineticComponent) {
	if s.Component.Carriers.Has(e) || s.Component.Landings.Has(e) {
		return
	}
	for i := range s.hulls {
		h := &s.hulls[i]
		if h.id == e {
			continue
		}
		if vmath.MagnitudeSq(kin.X-h.kin.X, kin.Y-h.kin.Y) > h.buffer*h.buffer {
			continue
		}
		physics.ApplyProximityRepulsion(&kin.Kinetic, h.kin.X, h.kin.Y)
	}
}

// resolveTarget returns the point the unit should steer toward this tick.
// A unit target takes precedence over a stored point; attacking units hold
// position (the attack system faces them separately)
func (s *MovementSystem) resolveTarget(e core.Entity, state core.UnitState) (float64, float64, bool) {
	if state != core.StateMoving {
		return 0, 0, false
	}
	mover, ok := s.Component.Movers.Get(e)
	if !ok {
		return 0, 0, false
	}

	if mover.TargetUnit != core.NoEntity {
		targetKin, ok := s.Component.Kinetics.Get(mover.TargetUnit)
		if ok {
			return targetKin.X, targetKin.Y, true
		}
		// Target body vanished mid-tick; targeting cleans up next tick
		mover.TargetUnit = core.NoEntity
		s.Component.Movers.Set(e, mover)
	}

	if mover.HasPoint {
		return mover.PointX, mover.PointY, true
	}
	return 0, 0, false
}

func (s *MovementSystem) pointTarget(e core.Entity) bool {
	mover, ok := s.Component.Movers.Get(e)
	return ok && mover.HasPoint && mover.TargetUnit == core.NoEntity
}

// finishMove clears the point and drops the unit back to idle unless a
// combat lock keeps it engaged
func (s *MovementSystem) finishMove(e core.Entity) {
	mover, ok := s.Component.Movers.Get(e)
	if ok {
		mover.HasPoint = false
		s.Component.Movers.Set(e, mover)
	}

	unit, ok := s.Component.Units.Get(e)
	if !ok {
		return
	}
	if combat, ok := s.Component.Combats.Get(e); ok && combat.Target != core.NoEntity {
		// Attack system decides between pursuit and firing
		return
	}
	unit.State = core.StateIdle
	s.Component.Units.Set(e, unit)
}
