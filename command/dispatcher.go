package command

import (
	"github.com/rs/zerolog"

	"github.com/ohade/strategy-game/constant"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/event"
)

// Dispatcher is the order entry point for external collaborators. Each
// method validates against a consistent world snapshot, then pushes the
// order onto the event queue, where the next tick applies it atomically.
// Validation and application are deliberately split: the queue keeps
// callers off the simulation hot path, and in-tick handlers re-check
// whatever may have changed between dispatch and tick
type Dispatcher struct {
	world *engine.World
	log   zerolog.Logger
}

func NewDispatcher(world *engine.World, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		world: world,
		log:   log.With().Str("component", "dispatcher").Logger(),
	}
}

// MoveTo orders units toward a world point. Ids that are missing or
// destroyed are dropped; the order is rejected only when nothing valid
// remains
func (d *Dispatcher) MoveTo(units []core.Entity, x, y float64) error {
	valid := d.filterLive(units)
	if len(valid) == 0 {
		return ErrInvalidTarget
	}

	d.world.PushEvent(event.EventMoveOrder, &event.MoveOrderPayload{
		Units: valid,
		X:     x,
		Y:     y,
	})
	return nil
}

// AttackTarget orders units to engage an enemy unit
func (d *Dispatcher) AttackTarget(units []core.Entity, target core.Entity) error {
	var err error
	var valid []core.Entity

	d.world.RunSafe(func() {
		targetUnit, ok := d.world.Components.Units.Get(target)
		if !ok || targetUnit.State.Terminal() {
			err = ErrInvalidTarget
			return
		}

		for _, e := range units {
			if e == target {
				continue
			}
			unit, ok := d.world.Components.Units.Get(e)
			if !ok || unit.State.Terminal() {
				continue
			}
			if !unit.Faction.Opposes(targetUnit.Faction) {
				continue
			}
			valid = append(valid, e)
		}
		if len(valid) == 0 {
			err = ErrInvalidFaction
		}
	})
	if err != nil {
		return err
	}

	d.world.PushEvent(event.EventAttackOrder, &event.AttackOrderPayload{
		Units:  valid,
		Target: target,
	})
	return nil
}

// LaunchFighters queues count stored fighters for launch; count <= 0
// launches everything in the bay
func (d *Dispatcher) LaunchFighters(carrier core.Entity, count int) error {
	var err error

	d.world.RunSafe(func() {
		c, ok := d.world.Components.Carriers.Get(carrier)
		if !ok || !d.live(carrier) {
			err = ErrInvalidTarget
			return
		}
		if c.FreeStored() == 0 {
			err = ErrCapacityExceeded
		}
	})
	if err != nil {
		return err
	}

	d.world.PushEvent(event.EventLaunchOrder, &event.LaunchOrderPayload{
		Carrier: carrier,
		Count:   count,
	})
	return nil
}

// RecallFighters orders fighters back into the carrier's bay. A full bay
// rejects the order outright; placing a fallback order for the stranded
// fighters is the caller's concern
func (d *Dispatcher) RecallFighters(carrier core.Entity, fighters []core.Entity) error {
	var err error
	var valid []core.Entity

	d.world.RunSafe(func() {
		c, ok := d.world.Components.Carriers.Get(carrier)
		if !ok || !d.live(carrier) {
			err = ErrInvalidTarget
			return
		}
		carrierUnit, _ := d.world.Components.Units.Get(carrier)

		for _, f := range fighters {
			unit, ok := d.world.Components.Units.Get(f)
			if !ok || unit.State.Terminal() {
				continue
			}
			if unit.Faction != carrierUnit.Faction {
				err = ErrInvalidFaction
				return
			}
			if d.world.Components.Landings.Has(f) {
				landing, _ := d.world.Components.Landings.Get(f)
				if landing.Stage >= constant.LandingFinal {
					// Too late to redirect a fighter on final
					err = ErrStageViolation
					return
				}
				continue
			}
			valid = append(valid, f)
		}

		if c.AtCapacity() {
			err = ErrCapacityExceeded
			return
		}
		if len(valid) == 0 {
			err = ErrInvalidTarget
		}
	})
	if err != nil {
		return err
	}

	d.world.PushEvent(event.EventRecallOrder, &event.RecallOrderPayload{
		Carrier:  carrier,
		Fighters: valid,
	})
	return nil
}

// EmergencyMove overrides the carrier's movement lock for one tick and
// aborts landings past the approach stage
func (d *Dispatcher) EmergencyMove(carrier core.Entity, x, y float64) error {
	var err error

	d.world.RunSafe(func() {
		if !d.world.Components.Carriers.Has(carrier) || !d.live(carrier) {
			err = ErrInvalidTarget
		}
	})
	if err != nil {
		return err
	}

	d.log.Warn().Uint64("carrier", uint64(carrier)).Msg("emergency move")
	d.world.PushEvent(event.EventEmergencyMove, &event.EmergencyMovePayload{
		Carrier: carrier,
		X:       x,
		Y:       y,
	})
	return nil
}

func (d *Dispatcher) live(e core.Entity) bool {
	unit, ok := d.world.Components.Units.Get(e)
	return ok && !unit.State.Terminal()
}

func (d *Dispatcher) filterLive(units []core.Entity) []core.Entity {
	var valid []core.Entity
	d.world.RunSafe(func() {
		for _, e := range units {
			if d.live(e) {
				valid = append(valid, e)
			}
		}
	})
	return valid
}
