package engine

import (
	"github.com/ohade/strategy-game/component"
	"github.com/ohade/strategy-game/constant"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/parameter"
)

// SpawnFighter creates a fully equipped fighter at the given position and
// returns its id
func (w *World) SpawnFighter(faction core.Faction, x, y, heading float64) core.Entity {
	e := w.CreateEntity()
	w.EquipFighter(e, faction, x, y, heading, core.NoEntity)
	return e
}

// EquipFighter attaches a full fighter component set to an existing entity
// id. Carriers pre-allocate bay ids at spawn and equip them on launch, so
// a fighter's id is stable across launch, landing, and relaunch
func (w *World) EquipFighter(e core.Entity, faction core.Faction, x, y, heading float64, home core.Entity) {
	w.Components.Units.Set(e, component.UnitComponent{
		Faction:      faction,
		State:        core.StateIdle,
		VisionRadius: parameter.FighterVision,
		Home:         home,
	})
	w.Components.Kinetics.Set(e, component.KineticComponent{
		Kinetic:     core.Kinetic{X: x, Y: y, Heading: heading},
		Mass:        parameter.FighterMass,
		Radius:      parameter.FighterRadius,
		MaxSpeed:    parameter.FighterMaxSpeed,
		MaxAccel:    parameter.FighterAccel,
		MaxTurnRate: parameter.FighterTurnRate,
	})
	w.Components.Movers.Set(e, component.MoverComponent{})
	w.Components.Combats.Set(e, component.CombatComponent{
		HP:             parameter.FighterHP,
		HPMax:          parameter.FighterHP,
		AttackPower:    parameter.FighterAttackPower,
		AttackRange:    parameter.FighterAttackRange,
		AttackCooldown: parameter.FighterCooldown,
	})
}

// SpawnCarrier creates a carrier with bow launch tubes and a full fighter
// bay. The carrier is immovable for collision displacement; its stored
// fighters exist only as reserved ids until launched
func (w *World) SpawnCarrier(faction core.Faction, x, y, heading float64) core.Entity {
	e := w.CreateEntity()

	w.Components.Units.Set(e, component.UnitComponent{
		Faction:      faction,
		State:        core.StateIdle,
		VisionRadius: parameter.CarrierVision,
	})
	w.Components.Kinetics.Set(e, component.KineticComponent{
		Kinetic:     core.Kinetic{X: x, Y: y, Heading: heading},
		Mass:        parameter.CarrierMass,
		Radius:      parameter.CarrierRadius,
		MaxSpeed:    parameter.CarrierMaxSpeed,
		MaxAccel:    parameter.CarrierAccel,
		MaxTurnRate: parameter.CarrierTurnRate,
		Immovable:   true,
	})
	w.Components.Movers.Set(e, component.MoverComponent{})
	w.Components.Combats.Set(e, component.CombatComponent{
		HP:             parameter.CarrierHP,
		HPMax:          parameter.CarrierHP,
		AttackPower:    parameter.CarrierAttackPower,
		AttackRange:    parameter.CarrierAttackRange,
		AttackCooldown: parameter.CarrierCooldown,
	})

	forward := parameter.CarrierRadius * parameter.LaunchPointForward
	lateral := parameter.CarrierRadius * parameter.LaunchPointLateral

	carrier := component.CarrierComponent{
		Capacity: parameter.CarrierCapacity,
		Points: []component.LaunchPoint{
			{OffsetForward: forward, OffsetLateral: 0, Status: constant.PointAvailable},
			{OffsetForward: forward, OffsetLateral: lateral, Status: constant.PointAvailable},
			{OffsetForward: forward, OffsetLateral: -lateral, Status: constant.PointAvailable},
		},
	}

	// Fill the bay with reserved fighter ids; the units themselves are
	// created on launch
	for i := 0; i < carrier.Capacity; i++ {
		carrier.Stored = append(carrier.Stored, w.CreateEntity())
	}
	w.Components.Carriers.Set(e, carrier)

	return e
}
