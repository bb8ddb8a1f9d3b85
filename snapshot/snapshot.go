// Package snapshot builds immutable per-tick views of the simulation for
// external collaborators. A frame is plain data: readers never touch live
// component stores, and a frame captured at tick N stays valid while the
// simulation advances
package snapshot

import (
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
)

// UnitView is the read-only projection of one live unit
type UnitView struct {
	ID      core.Entity  `json:"id"`
	Faction core.Faction `json:"faction"`
	State   string       `json:"state"`

	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VelX    float64 `json:"velX"`
	VelY    float64 `json:"velY"`
	Heading float64 `json:"heading"`
	Radius  float64 `json:"radius"`

	HP    float64 `json:"hp"`
	HPMax float64 `json:"hpMax"`

	// Targetable is structural: the unit is live and physically present.
	// Fog-of-war filtering on top of it belongs to the caller
	Targetable bool `json:"targetable"`

	ContactResolved  bool `json:"contactResolved,omitempty"`
	PredictedContact bool `json:"predictedContact,omitempty"`

	Carrier *CarrierView `json:"carrier,omitempty"`
	Landing *LandingView `json:"landing,omitempty"`
}

// CarrierView projects hangar and operation state for carrier units
type CarrierView struct {
	Capacity       int  `json:"capacity"`
	Stored         int  `json:"stored"`
	InFlight       int  `json:"inFlight"`
	QueuedLaunches int  `json:"queuedLaunches"`
	MovementLocked bool `json:"movementLocked"`

	Points []string `json:"points"`
}

// LandingView projects a fighter's landing sequence progress
type LandingView struct {
	Carrier core.Entity `json:"carrier"`
	Stage   string      `json:"stage"`
}

// Frame is one complete tick observation
type Frame struct {
	Tick  int64      `json:"tick"`
	Units []UnitView `json:"units"`
}

// Capture locks the world and projects every live unit into a frame.
// Unit order is ascending id, so two captures of the same tick are
// byte-identical once encoded
func Capture(w *engine.World, tick int64) Frame {
	frame := Frame{Tick: tick}

	w.RunSafe(func() {
		frame.Units = make([]UnitView, 0, w.Components.Units.Count())

		for _, e := range w.Components.Units.Entities() {
			unit, _ := w.Components.Units.Get(e)
			if unit.State.Terminal() {
				continue
			}

			view := UnitView{
				ID:         e,
				Faction:    unit.Faction,
				State:      unit.State.String(),
				Targetable: true,
			}

			if kin, ok := w.Components.Kinetics.Get(e); ok {
				view.X = kin.X
				view.Y = kin.Y
				view.VelX = kin.VelX
				view.VelY = kin.VelY
				view.Heading = kin.Heading
				view.Radius = kin.Radius
				view.ContactResolved = kin.ContactResolved
				view.PredictedContact = kin.PredictedContact
				if kin.Suspended {
					view.Targetable = false
				}
			}
			if combat, ok := w.Components.Combats.Get(e); ok {
				view.HP = combat.HP
				view.HPMax = combat.HPMax
			}
			if carrier, ok := w.Components.Carriers.Get(e); ok {
				points := make([]string, len(carrier.Points))
				for i := range carrier.Points {
					points[i] = carrier.Points[i].Status.String()
				}
				view.Carrier = &CarrierView{
					Capacity:       carrier.Capacity,
					Stored:         len(carrier.Stored),
					InFlight:       carrier.InFlight,
					QueuedLaunches: len(carrier.LaunchQueue),
					MovementLocked: carrier.MovementLocked,
					Points:         points,
				}
			}
			if landing, ok := w.Components.Landings.Get(e); ok {
				view.Landing = &LandingView{
					Carrier: landing.Carrier,
					Stage:   landing.Stage.String(),
				}
			}

			frame.Units = append(frame.Units, view)
		}
	})

	return frame
}
