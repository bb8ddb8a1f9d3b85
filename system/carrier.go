package system

import (
	"math"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/ohade/strategy-game/component"
	"github.com/ohade/strategy-game/constant"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/event"
	"github.com/ohade/strategy-game/parameter"
	"github.com/ohade/strategy-game/physics"
	"github.com/ohade/strategy-game/vmath"
)

// CarrierSystem sequences fighter launches and landings.
//
// Launches move through a FIFO queue: an order pops stored fighter ids
// into the queue, each request reserves the next free launch point
// round-robin, emerges over a timed phase, and the fighter is equipped at
// the point's world position with a velocity boost. A point's cooldown
// runs from reservation, so with emergence much shorter than cooldown a
// two-point carrier completes two launches per cooldown interval.
//
// Landings walk a monotonic stage ladder per fighter: requested,
// approaching, aligning, final, secured. The only backward edge is the
// emergency abort from aligning/final back to approaching. While any
// launch is emerging or any lander is at aligning or beyond, the carrier
// movement lock is held
type CarrierSystem struct {
	engine.SystemBase

	log zerolog.Logger

	// strict promotes stage violations from clamped errors to panics
	strict bool

	statLaunched *atomic.Int64
	statSecured  *atomic.Int64
	statAborted  *atomic.Int64
}

func NewCarrierSystem(world *engine.World) engine.System {
	s := &CarrierSystem{
		SystemBase: engine.NewSystemBase(world),
		log:        world.Resources.Log.With().Str("system", "carrier").Logger(),
	}
	s.statLaunched = world.Resources.Status.Ints.Get("carrier.launched")
	s.statSecured = world.Resources.Status.Ints.Get("carrier.secured")
	s.statAborted = world.Resources.Status.Ints.Get("carrier.aborted")
	return s
}

// SetStrict enables panic-on-stage-violation for debugging sessions
func (s *CarrierSystem) SetStrict(v bool) {
	s.strict = v
}

func (s *CarrierSystem) Name() string {
	return "carrier"
}

func (s *CarrierSystem) Priority() int {
	return constant.PriorityCarrier
}

func (s *CarrierSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventLaunchOrder,
		event.EventRecallOrder,
		event.EventEmergencyMove,
	}
}

func (s *CarrierSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventLaunchOrder:
		if p, ok := ev.Payload.(*event.LaunchOrderPayload); ok {
			s.enqueueLaunches(p)
		}
	case event.EventRecallOrder:
		if p, ok := ev.Payload.(*event.RecallOrderPayload); ok {
			s.beginRecall(p)
		}
	case event.EventEmergencyMove:
		if p, ok := ev.Payload.(*event.EmergencyMovePayload); ok {
			s.emergencyMove(p)
		}
	}
}

func (s *CarrierSystem) Update() {
	dt := s.Resource.Time.Dt()

	for _, e := range s.Component.Carriers.Entities() {
		carrier, _ := s.Component.Carriers.Get(e)
		unit, ok := s.Component.Units.Get(e)
		if !ok || unit.State.Terminal() {
			continue
		}

		s.tickPoints(e, &carrier, dt)
		s.serviceQueue(e, &carrier)
		s.tickLandings(e, &carrier, dt)

		// Derived once per tick; an emergency override lifts the lock
		// for this tick only and is consumed here
		carrier.MovementLocked = !carrier.EmergencyOverride && s.operationsActive(e, &carrier)
		carrier.EmergencyOverride = false

		s.Component.Carriers.Set(e, carrier)
	}
}

// enqueueLaunches pops stored fighter ids FIFO into the launch queue.
// Capacity was validated at dispatch; re-check here because the bay may
// have drained between dispatch and tick
func (s *CarrierSystem) enqueueLaunches(p *event.LaunchOrderPayload) {
	carrier, ok := s.Component.Carriers.Get(p.Carrier)
	if !ok {
		return
	}

	count := p.Count
	if count <= 0 || count > len(carrier.Stored) {
		count = len(carrier.Stored)
	}
	if count == 0 {
		s.log.Warn().Uint64("carrier", uint64(p.Carrier)).Msg("launch order with empty bay")
		return
	}

	for i := 0; i < count; i++ {
		id := carrier.Stored[0]
		carrier.Stored = carrier.Stored[1:]
		carrier.LaunchQueue = append(carrier.LaunchQueue, component.LaunchRequest{
			ID:    id,
			Stage: constant.LaunchQueued,
			Point: -1,
		})
	}
	s.Component.Carriers.Set(p.Carrier, carrier)
}

// tickPoints advances emergence and cooldown timers. A busy point whose
// emergence completes births its fighter at the point's world position
func (s *CarrierSystem) tickPoints(e core.Entity, carrier *component.CarrierComponent, dt float64) {
	carrierKin, hasKin := s.Component.Kinetics.Get(e)
	carrierUnit, _ := s.Component.Units.Get(e)

	for i := range carrier.Points {
		pt := &carrier.Points[i]

		switch pt.Status {
		case constant.PointBusy:
			pt.EmergeRemaining -= dt
			pt.CooldownRemaining -= dt
			if pt.EmergeRemaining > 0 {
				break
			}
			if hasKin {
				s.completeLaunch(e, carrier, i, &carrierKin, carrierUnit.Faction)
			}
			if pt.CooldownRemaining > 0 {
				pt.Status = constant.PointCooling
			} else {
				pt.Status = constant.PointAvailable
				pt.CooldownRemaining = 0
			}
			pt.Occupant = core.NoEntity

		case constant.PointCooling:
			pt.CooldownRemaining -= dt
			if pt.CooldownRemaining <= 0 {
				pt.CooldownRemaining = 0
				pt.Status = constant.PointAvailable
			}
		}
	}
}

// serviceQueue reserves free points for queued requests in FIFO order,
// rotating the starting point so tubes wear evenly. Reservation and
// emergence begin in the same tick; the cooldown clock starts at
// reservation
func (s *CarrierSystem) serviceQueue(e core.Entity, carrier *component.CarrierComponent) {
	for qi := range carrier.LaunchQueue {
		req := &carrier.LaunchQueue[qi]
		if req.Stage != constant.LaunchQueued {
			continue
		}

		point := s.reservePoint(carrier)
		if point < 0 {
			break // FIFO: nothing behind this request may jump it
		}

		s.advanceLaunch(e, req, constant.LaunchReserved)
		req.Point = point

		pt := &carrier.Points[point]
		pt.Status = constant.PointBusy
		pt.Occupant = req.ID
		pt.EmergeRemaining = parameter.LaunchEmergeDuration
		pt.CooldownRemaining = parameter.LaunchPointCooldown

		s.advanceLaunch(e, req, constant.LaunchEmerging)
	}

	// Compact finished requests out of the queue
	live := carrier.LaunchQueue[:0]
	for _, req := range carrier.LaunchQueue {
		if req.Stage != constant.LaunchDone {
			live = append(live, req)
		}
	}
	carrier.LaunchQueue = live
}

func (s *CarrierSystem) reservePoint(carrier *component.CarrierComponent) int {
	n := len(carrier.Points)
	for i := 0; i < n; i++ {
		idx := (carrier.NextPoint + i) % n
		if carrier.Points[idx].Status == constant.PointAvailable {
			carrier.NextPoint = (idx + 1) % n
			return idx
		}
	}
	return -1
}

// completeLaunch equips the reserved id as a live fighter at the point's
// world position with the carrier's velocity plus a boost along its
// heading, and a patrol point ahead of the bow
func (s *CarrierSystem) completeLaunch(e core.Entity, carrier *component.CarrierComponent, point int, carrierKin *component.KineticComponent, faction core.Faction) {
	pt := &carrier.Points[point]
	fighter := pt.Occupant
	if fighter == core.NoEntity {
		return
	}

	for qi := range carrier.LaunchQueue {
		if carrier.LaunchQueue[qi].ID == fighter {
			s.advanceLaunch(e, &carrier.LaunchQueue[qi], constant.LaunchDone)
			break
		}
	}

	sin, cos := math.Sincos(carrierKin.Heading)
	ox, oy := vmath.Rotate(pt.OffsetForward, pt.OffsetLateral, carrierKin.Heading)
	x := carrierKin.X + ox
	y := carrierKin.Y + oy

	s.World.EquipFighter(fighter, faction, x, y, carrierKin.Heading, e)

	kin, _ := s.Component.Kinetics.Get(fighter)
	boost := kin.MaxSpeed * parameter.LaunchBoostFactor
	physics.SetImpulse(&kin.Kinetic, carrierKin.VelX+cos*boost, carrierKin.VelY+sin*boost)
	s.Component.Kinetics.Set(fighter, kin)

	mover, _ := s.Component.Movers.Get(fighter)
	mover.HasPoint = true
	mover.PointX = carrierKin.X + cos*parameter.LaunchPatrolDistance
	mover.PointY = carrierKin.Y + sin*parameter.LaunchPatrolDistance
	s.Component.Movers.Set(fighter, mover)

	unit, _ := s.Component.Units.Get(fighter)
	unit.State = core.StateMoving
	s.Component.Units.Set(fighter, unit)

	carrier.InFlight++
	s.statLaunched.Add(1)

	s.World.PushEvent(event.EventFighterLaunched, &event.FighterLaunchedPayload{
		Carrier: e,
		Fighter: fighter,
		Point:   point,
	})
}

// beginRecall starts landing sequences. Capacity is re-validated per
// fighter: a bay that filled since dispatch rejects the remainder and
// leaves them on their current orders
func (s *CarrierSystem) beginRecall(p *event.RecallOrderPayload) {
	carrier, ok := s.Component.Carriers.Get(p.Carrier)
	if !ok {
		return
	}
	carrierUnit, ok := s.Component.Units.Get(p.Carrier)
	if !ok || carrierUnit.State.Terminal() {
		return
	}

	// Committed slots beyond the bay itself: queued launches that left
	// Stored but have not emerged, own fighters in flight, and foreign
	// landers already accepted by an earlier recall
	inbound := carrier.InFlight + len(carrier.LaunchQueue)
	for _, f := range s.Component.Landings.Entities() {
		landing, _ := s.Component.Landings.Get(f)
		if landing.Carrier != p.Carrier {
			continue
		}
		if u, ok := s.Component.Units.Get(f); ok && u.Home != p.Carrier {
			inbound++
		}
	}

	for _, f := range p.Fighters {
		unit, ok := s.Component.Units.Get(f)
		if !ok || unit.State.Terminal() || unit.Faction != carrierUnit.Faction {
			continue
		}
		if s.Component.Landings.Has(f) || s.Component.Carriers.Has(f) {
			continue
		}
		if len(carrier.Stored)+inbound >= carrier.Capacity && unit.Home != p.Carrier {
			s.log.Warn().
				Uint64("carrier", uint64(p.Carrier)).
				Uint64("fighter", uint64(f)).
				Msg("recall rejected, bay full")
			continue
		}
		if unit.Home != p.Carrier {
			inbound++
		}

		// Landing supersedes whatever the fighter was doing
		if combat, ok := s.Component.Combats.Get(f); ok {
			combat.Target = core.NoEntity
			s.Component.Combats.Set(f, combat)
		}
		if mover, ok := s.Component.Movers.Get(f); ok {
			mover.HasPoint = false
			mover.TargetUnit = core.NoEntity
			s.Component.Movers.Set(f, mover)
		}
		unit.State = core.StateMoving
		s.Component.Units.Set(f, unit)

		s.Component.Landings.Set(f, component.LandingComponent{
			Carrier: p.Carrier,
			Stage:   constant.LandingRequested,
		})
	}
}

// emergencyMove lifts the movement lock for the tick, reissues the
// carrier's move order, and aborts any lander past the approach stage
func (s *CarrierSystem) emergencyMove(p *event.EmergencyMovePayload) {
	carrier, ok := s.Component.Carriers.Get(p.Carrier)
	if !ok {
		return
	}

	carrier.EmergencyOverride = true
	s.Component.Carriers.Set(p.Carrier, carrier)

	if mover, ok := s.Component.Movers.Get(p.Carrier); ok {
		mover.HasPoint = true
		mover.PointX = p.X
		mover.PointY = p.Y
		mover.TargetUnit = core.NoEntity
		s.Component.Movers.Set(p.Carrier, mover)
	}
	if unit, ok := s.Component.Units.Get(p.Carrier); ok && !unit.State.Terminal() {
		unit.State = core.StateMoving
		s.Component.Units.Set(p.Carrier, unit)
	}

	for _, f := range s.Component.Landings.Entities() {
		landing, _ := s.Component.Landings.Get(f)
		if landing.Carrier != p.Carrier {
			continue
		}
		if landing.Stage != constant.LandingAligning && landing.Stage != constant.LandingFinal {
			continue
		}

		landing.Stage = constant.LandingApproaching
		landing.Backoff = parameter.LandingAbortBackoff
		s.Component.Landings.Set(f, landing)

		if kin, ok := s.Component.Kinetics.Get(f); ok && kin.Suspended {
			kin.Suspended = false
			s.Component.Kinetics.Set(f, kin)
		}

		s.statAborted.Add(1)
		s.World.PushEvent(event.EventLandingAborted, &event.LandingAbortedPayload{
			Carrier: p.Carrier,
			Fighter: f,
		})
	}
}

// tickLandings advances every lander bound for this carrier one rung at
// most per tick
func (s *CarrierSystem) tickLandings(e core.Entity, carrier *component.CarrierComponent, dt float64) {
	carrierKin, ok := s.Component.Kinetics.Get(e)
	if !ok {
		return
	}

	for _, f := range s.Component.Landings.Entities() {
		landing, _ := s.Component.Landings.Get(f)
		if landing.Carrier != e {
			continue
		}

		unit, ok := s.Component.Units.Get(f)
		if !ok || unit.State.Terminal() {
			s.Component.Landings.Remove(f)
			continue
		}

		if landing.Backoff > 0 {
			landing.Backoff -= dt
			if landing.Backoff < 0 {
				landing.Backoff = 0
			}
			s.Component.Landings.Set(f, landing)
			continue
		}

		kin, ok := s.Component.Kinetics.Get(f)
		if !ok {
			continue
		}
		dist := vmath.Dist(kin.X, kin.Y, carrierKin.X, carrierKin.Y)

		switch landing.Stage {
		case constant.LandingRequested:
			s.advanceLanding(e, f, &landing, constant.LandingApproaching)

		case constant.LandingApproaching:
			s.steerLander(f, &carrierKin)
			if dist <= parameter.LandingApproachDistance {
				s.advanceLanding(e, f, &landing, constant.LandingAligning)
				// Inside the envelope the resolver must not shove the
				// lander back out of the hull
				kin.Suspended = true
				s.Component.Kinetics.Set(f, kin)
			}

		case constant.LandingAligning:
			if dist > parameter.LandingAlignDistance {
				s.steerLander(f, &carrierKin)
				break
			}
			// Inside the envelope: drop thrust and rotate in place
			// until the headings agree
			s.holdLander(f)
			kin.Heading = vmath.TurnToward(kin.Heading, carrierKin.Heading, kin.MaxTurnRate*dt)
			if math.Abs(vmath.AngleDiff(kin.Heading, carrierKin.Heading)) <= parameter.LandingAlignHeading {
				s.advanceLanding(e, f, &landing, constant.LandingFinal)
			}
			s.Component.Kinetics.Set(f, kin)

		case constant.LandingFinal:
			s.steerLander(f, &carrierKin)
			if dist <= parameter.LandingSecureDistance {
				s.advanceLanding(e, f, &landing, constant.LandingSecured)
				s.secure(e, carrier, f, unit)
				continue
			}
		}

		s.Component.Landings.Set(f, landing)
	}
}

// steerLander points the fighter's mover at the carrier's current
// position; the movement system does the flying
func (s *CarrierSystem) steerLander(f core.Entity, carrierKin *component.KineticComponent) {
	mover, ok := s.Component.Movers.Get(f)
	if !ok {
		return
	}
	mover.HasPoint = true
	mover.PointX = carrierKin.X
	mover.PointY = carrierKin.Y
	mover.TargetUnit = core.NoEntity
	s.Component.Movers.Set(f, mover)

	if unit, ok := s.Component.Units.Get(f); ok && unit.State != core.StateMoving {
		unit.State = core.StateMoving
		s.Component.Units.Set(f, unit)
	}
}

// holdLander clears the mover so idle drag brings the fighter to rest
// while it rotates into alignment
func (s *CarrierSystem) holdLander(f core.Entity) {
	mover, ok := s.Component.Movers.Get(f)
	if !ok {
		return
	}
	if !mover.Cleared() {
		mover.HasPoint = false
		mover.TargetUnit = core.NoEntity
		s.Component.Movers.Set(f, mover)
	}
}

// secure stows the fighter: components come off, the id goes back into
// the bay, and the slot it was flying against is released
func (s *CarrierSystem) secure(e core.Entity, carrier *component.CarrierComponent, f core.Entity, unit component.UnitComponent) {
	if unit.Home == e && carrier.InFlight > 0 {
		carrier.InFlight--
	}
	carrier.Stored = append(carrier.Stored, f)

	s.Component.Landings.Remove(f)
	s.Component.Units.Remove(f)
	s.Component.Kinetics.Remove(f)
	s.Component.Movers.Remove(f)
	s.Component.Combats.Remove(f)

	s.statSecured.Add(1)
	s.World.PushEvent(event.EventFighterSecured, &event.FighterSecuredPayload{
		Carrier: e,
		Fighter: f,
	})
}

// advanceLaunch enforces the queued -> reserved -> emerging -> done
// ladder. A skipped or backward hop is a sequencing bug: clamped and
// logged in release, fatal in strict mode
func (s *CarrierSystem) advanceLaunch(e core.Entity, req *component.LaunchRequest, to constant.LaunchStage) {
	if to != req.Stage+1 {
		s.stageViolation(e, "launch", req.Stage.String(), to.String())
		if to < req.Stage {
			return
		}
	}
	req.Stage = to
}

// advanceLanding enforces the monotonic landing ladder; the abort edge
// in emergencyMove bypasses it deliberately
func (s *CarrierSystem) advanceLanding(e core.Entity, f core.Entity, landing *component.LandingComponent, to constant.LandingStage) {
	if to != landing.Stage+1 {
		s.stageViolation(e, "landing", landing.Stage.String(), to.String())
		if to < landing.Stage {
			return
		}
	}
	landing.Stage = to
}

func (s *CarrierSystem) stageViolation(e core.Entity, kind, from, to string) {
	if s.strict {
		s.log.Panic().
			Uint64("carrier", uint64(e)).
			Str("kind", kind).
			Str("from", from).
			Str("to", to).
			Msg("stage violation")
	}
	s.log.Error().
		Uint64("carrier", uint64(e)).
		Str("kind", kind).
		Str("from", from).
		Str("to", to).
		Msg("stage violation clamped")
}

// operationsActive reports whether any launch or landing operation pins
// the carrier in place this tick
func (s *CarrierSystem) operationsActive(e core.Entity, carrier *component.CarrierComponent) bool {
	for i := range carrier.Points {
		if carrier.Points[i].Status == constant.PointBusy {
			return true
		}
	}
	for _, f := range s.Component.Landings.Entities() {
		landing, _ := s.Component.Landings.Get(f)
		if landing.Carrier != e {
			continue
		}
		if landing.Stage == constant.LandingAligning || landing.Stage == constant.LandingFinal {
			return true
		}
	}
	return false
}
