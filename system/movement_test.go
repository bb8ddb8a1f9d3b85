package system

import (
	"math"
	"testing"

	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/event"
	"github.com/ohade/strategy-game/vmath"
)

// A move order carries the unit to the point; arrival snaps onto it and
// the unit goes idle with no residual velocity
func TestMoveToArrival(t *testing.T) {
	g := newTestGame()
	w := g.World

	fighter := w.SpawnFighter(core.FactionFriendly, 100, 100, 0)
	w.PushEvent(event.EventMoveOrder, &event.MoveOrderPayload{
		Units: []core.Entity{fighter}, X: 600, Y: 100,
	})

	arrived := false
	for tick := 0; tick < 60*15; tick++ {
		step(g, 1)
		unit, _ := w.Components.Units.Get(fighter)
		if unit.State == core.StateIdle {
			arrived = true
			break
		}
	}
	if !arrived {
		t.Fatal("fighter never arrived")
	}

	kin, _ := w.Components.Kinetics.Get(fighter)
	if kin.X != 600 || kin.Y != 100 {
		t.Errorf("arrival did not snap: (%.3f, %.3f)", kin.X, kin.Y)
	}
	if kin.VelX != 0 || kin.VelY != 0 {
		t.Errorf("residual velocity after arrival: (%.3f, %.3f)", kin.VelX, kin.VelY)
	}
	mover, _ := w.Components.Movers.Get(fighter)
	if mover.HasPoint {
		t.Error("mover still carries the finished point")
	}
}

// Headings turn at the bounded rate; a reversal cannot happen in one tick
func TestTurnRateBounded(t *testing.T) {
	g := newTestGame()
	w := g.World

	fighter := w.SpawnFighter(core.FactionFriendly, 0, 0, 0)
	w.PushEvent(event.EventMoveOrder, &event.MoveOrderPayload{
		Units: []core.Entity{fighter}, X: -1000, Y: 0, // directly behind
	})
	step(g, 2) // order tick plus one movement tick

	kin, _ := w.Components.Kinetics.Get(fighter)
	turned := math.Abs(vmath.AngleDiff(0, kin.Heading))
	maxStep := kin.MaxTurnRate * testTick.Seconds() * 2
	if turned > maxStep+vmath.Epsilon {
		t.Errorf("turned %.4f rad in two ticks, max %.4f", turned, maxStep)
	}
}

// A fresh move order supersedes an attack: the lock is dropped in the
// same tick the new point is applied
func TestMoveOrderSupersedesAttack(t *testing.T) {
	g := newTestGame()
	w := g.World

	fighter := w.SpawnFighter(core.FactionFriendly, 0, 0, 0)
	// Outside the lock-on radius: an explicit attack order still engages,
	// but after the supersede targeting cannot re-acquire the same tick
	enemy := w.SpawnFighter(core.FactionEnemy, 400, 0, 0)

	w.PushEvent(event.EventAttackOrder, &event.AttackOrderPayload{
		Units: []core.Entity{fighter}, Target: enemy,
	})
	step(g, 1)

	c, _ := w.Components.Combats.Get(fighter)
	if c.Target != enemy {
		t.Fatal("attack order not applied")
	}

	w.PushEvent(event.EventMoveOrder, &event.MoveOrderPayload{
		Units: []core.Entity{fighter}, X: 3000, Y: 2000,
	})
	step(g, 1)

	c, _ = w.Components.Combats.Get(fighter)
	mover, _ := w.Components.Movers.Get(fighter)
	if !mover.HasPoint || mover.PointX != 3000 {
		t.Error("move point not applied")
	}
	if mover.TargetUnit != core.NoEntity {
		t.Error("unit target survived the supersede")
	}
	if c.Target != core.NoEntity {
		t.Error("combat lock survived the supersede")
	}

	unit, _ := w.Components.Units.Get(fighter)
	if unit.State != core.StateMoving {
		t.Errorf("state = %v, want moving", unit.State)
	}
}

// Speed never exceeds the unit cap regardless of accumulated thrust
func TestSpeedCap(t *testing.T) {
	g := newTestGame()
	w := g.World

	fighter := w.SpawnFighter(core.FactionFriendly, 0, 1000, 0)
	w.PushEvent(event.EventMoveOrder, &event.MoveOrderPayload{
		Units: []core.Entity{fighter}, X: 3800, Y: 1000,
	})

	for tick := 0; tick < 60*5; tick++ {
		step(g, 1)
		kin, _ := w.Components.Kinetics.Get(fighter)
		if speed := vmath.Magnitude(kin.VelX, kin.VelY); speed > kin.MaxSpeed+vmath.Epsilon {
			t.Fatalf("speed %.3f exceeds cap %.3f at tick %d", speed, kin.MaxSpeed, tick)
		}
	}
}
