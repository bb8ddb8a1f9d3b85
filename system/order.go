package system

import (
	"sync/atomic"

	"github.com/ohade/strategy-game/constant"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/event"
)

// OrderSystem applies move and attack orders at the top of the tick.
// A new order atomically supersedes the unit's previous intent: no part
// of the old intent survives into the same tick
type OrderSystem struct {
	engine.SystemBase

	statMoves   *atomic.Int64
	statAttacks *atomic.Int64
}

// NewOrderSystem creates the order application stage
func NewOrderSystem(world *engine.World) engine.System {
	s := &OrderSystem{
		SystemBase: engine.NewSystemBase(world),
	}
	s.statMoves = world.Resources.Status.Ints.Get("orders.move")
	s.statAttacks = world.Resources.Status.Ints.Get("orders.attack")
	return s
}

func (s *OrderSystem) Name() string {
	return "orders"
}

func (s *OrderSystem) Priority() int {
	return constant.PriorityOrders
}

func (s *OrderSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMoveOrder,
		event.EventAttackOrder,
	}
}

func (s *OrderSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventMoveOrder:
		if payload, ok := ev.Payload.(*event.MoveOrderPayload); ok {
			s.applyMove(payload)
		}
	case event.EventAttackOrder:
		if payload, ok := ev.Payload.(*event.AttackOrderPayload); ok {
			s.applyAttack(payload)
		}
	}
}

// Update implements engine.System; orders are event-driven only
func (s *OrderSystem) Update() {}

func (s *OrderSystem) applyMove(p *event.MoveOrderPayload) {
	for _, e := range p.Units {
		unit, ok := s.Component.Units.Get(e)
		if !ok || unit.State.Terminal() {
			continue
		}

		mover, ok := s.Component.Movers.Get(e)
		if !ok {
			continue
		}

		// Supersede: drop any combat target along with the old intent
		if combat, ok := s.Component.Combats.Get(e); ok {
			combat.Target = core.NoEntity
			s.Component.Combats.Set(e, combat)
		}

		mover.HasPoint = true
		mover.PointX = p.X
		mover.PointY = p.Y
		mover.TargetUnit = core.NoEntity
		s.Component.Movers.Set(e, mover)

		unit.State = core.StateMoving
		s.Component.Units.Set(e, unit)

		s.statMoves.Add(1)
	}
}

func (s *OrderSystem) applyAttack(p *event.AttackOrderPayload) {
	target, ok := s.Component.Units.Get(p.Target)
	if !ok || target.State.Terminal() {
		return // target died between dispatch and tick; order is a no-op
	}

	for _, e := range p.Units {
		if e == p.Target {
			continue
		}
		unit, ok := s.Component.Units.Get(e)
		if !ok || unit.State.Terminal() {
			continue
		}
		if !unit.Faction.Opposes(target.Faction) {
			continue
		}

		combat, ok := s.Component.Combats.Get(e)
		if !ok {
			continue
		}
		combat.Target = p.Target
		s.Component.Combats.Set(e, combat)

		mover, ok := s.Component.Movers.Get(e)
		if ok {
			mover.HasPoint = false
			mover.TargetUnit = p.Target
			s.Component.Movers.Set(e, mover)
		}

		unit.State = core.StateMoving
		s.Component.Units.Set(e, unit)

		s.statAttacks.Add(1)
	}
}
