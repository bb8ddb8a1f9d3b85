package system

import (
	"math"
	"testing"

	"github.com/ohade/strategy-game/component"
	"github.com/ohade/strategy-game/constant"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/event"
	"github.com/ohade/strategy-game/parameter"
	"github.com/ohade/strategy-game/vmath"
)

// twoPointCarrier spawns a carrier trimmed to two launch tubes
func twoPointCarrier(w *engine.World, x, y float64) core.Entity {
	e := w.SpawnCarrier(core.FactionFriendly, x, y, 0)
	c, _ := w.Components.Carriers.Get(e)
	c.Points = c.Points[:2]
	w.Components.Carriers.Set(e, c)
	return e
}

// Four launches through two tubes: the first pair emerges together, the
// second pair one cooldown interval later, in bay FIFO order
func TestLaunchBatchTiming(t *testing.T) {
	g := newTestGame()
	w := g.World

	carrier := twoPointCarrier(w, 1000, 1000)
	c, _ := w.Components.Carriers.Get(carrier)
	wantOrder := append([]core.Entity(nil), c.Stored[:4]...)

	type launch struct {
		fighter core.Entity
		at      float64
	}
	var launches []launch
	g.Observe(func(ev event.GameEvent) {
		if ev.Type == event.EventFighterLaunched {
			p := ev.Payload.(*event.FighterLaunchedPayload)
			launches = append(launches, launch{p.Fighter, simTime(int(g.FrameNumber()))})
		}
	})

	w.PushEvent(event.EventLaunchOrder, &event.LaunchOrderPayload{
		Carrier: carrier,
		Count:   4,
	})
	step(g, 60*3) // 3 sim-seconds covers both waves

	if len(launches) != 4 {
		t.Fatalf("launched %d fighters, want 4", len(launches))
	}
	for i, l := range launches {
		if l.fighter != wantOrder[i] {
			t.Errorf("launch %d = fighter %d, want FIFO order %d", i, l.fighter, wantOrder[i])
		}
	}

	emerge := parameter.LaunchEmergeDuration
	if d := launches[1].at - launches[0].at; d > 0.05 {
		t.Errorf("first pair split by %.3fs, want concurrent", d)
	}
	if at := launches[0].at; at < emerge-0.05 || at > emerge+0.1 {
		t.Errorf("first pair at %.3fs, want ~%.2fs emergence", at, emerge)
	}
	// Cooldown runs from reservation, so wave two completes one
	// cooldown after wave one
	if d := launches[2].at - launches[0].at; d < parameter.LaunchPointCooldown-0.05 || d > parameter.LaunchPointCooldown+0.1 {
		t.Errorf("second wave %.3fs after first, want ~%.2fs", d, parameter.LaunchPointCooldown)
	}

	c, _ = w.Components.Carriers.Get(carrier)
	if c.InFlight != 4 {
		t.Errorf("InFlight = %d, want 4", c.InFlight)
	}
	if got := len(c.Stored); got != parameter.CarrierCapacity-4 {
		t.Errorf("stored = %d, want %d", got, parameter.CarrierCapacity-4)
	}
}

// A launched fighter appears at a bow point with a velocity boost and a
// patrol point ahead of the carrier
func TestLaunchPlacesFighterAtBow(t *testing.T) {
	g := newTestGame()
	w := g.World

	carrier := w.SpawnCarrier(core.FactionFriendly, 1000, 1000, 0)
	w.PushEvent(event.EventLaunchOrder, &event.LaunchOrderPayload{Carrier: carrier, Count: 1})

	var fighter core.Entity
	g.Observe(func(ev event.GameEvent) {
		if ev.Type == event.EventFighterLaunched {
			fighter = ev.Payload.(*event.FighterLaunchedPayload).Fighter
		}
	})
	step(g, 60)

	if fighter == core.NoEntity {
		t.Fatal("no launch completed")
	}

	unit, ok := w.Components.Units.Get(fighter)
	if !ok {
		t.Fatal("launched fighter has no unit component")
	}
	if unit.Home != carrier {
		t.Errorf("fighter home = %d, want %d", unit.Home, carrier)
	}
	if unit.State == core.StateIdle {
		t.Error("launched fighter left idle, want patrol movement")
	}

	kin, _ := w.Components.Kinetics.Get(fighter)
	if kin.X <= 1000 {
		t.Errorf("fighter x = %.1f, want ahead of carrier bow", kin.X)
	}
}

// Launch while the bay is empty degrades to a logged no-op
func TestLaunchEmptyBay(t *testing.T) {
	g := newTestGame()
	w := g.World

	carrier := w.SpawnCarrier(core.FactionFriendly, 1000, 1000, 0)
	c, _ := w.Components.Carriers.Get(carrier)
	c.Stored = nil
	w.Components.Carriers.Set(carrier, c)

	w.PushEvent(event.EventLaunchOrder, &event.LaunchOrderPayload{Carrier: carrier, Count: 1})
	step(g, 60)

	c, _ = w.Components.Carriers.Get(carrier)
	if c.InFlight != 0 || len(c.LaunchQueue) != 0 {
		t.Errorf("empty bay produced inflight=%d queue=%d", c.InFlight, len(c.LaunchQueue))
	}
}

// A recalled fighter walks the landing ladder strictly forward and ends
// secured: components gone, id back in the bay, capacity slot released
func TestLandingSequence(t *testing.T) {
	g := newTestGame()
	w := g.World

	carrier := w.SpawnCarrier(core.FactionFriendly, 1000, 1000, 0)

	// Free a bay slot, then fly the reserved id back in as a launched
	// fighter would be
	c, _ := w.Components.Carriers.Get(carrier)
	fighter := c.Stored[0]
	c.Stored = c.Stored[1:]
	c.InFlight = 1
	w.Components.Carriers.Set(carrier, c)
	w.EquipFighter(fighter, core.FactionFriendly, 1300, 1000, 0, carrier)

	w.PushEvent(event.EventRecallOrder, &event.RecallOrderPayload{
		Carrier:  carrier,
		Fighters: []core.Entity{fighter},
	})

	var secured bool
	g.Observe(func(ev event.GameEvent) {
		if ev.Type == event.EventFighterSecured {
			secured = true
		}
	})

	last := constant.LandingRequested
	var ladder []constant.LandingStage
	for tick := 0; tick < 60*30 && !secured; tick++ {
		step(g, 1)
		landing, ok := w.Components.Landings.Get(fighter)
		if !ok {
			continue
		}
		if landing.Stage != last {
			if landing.Stage < last {
				t.Fatalf("stage went backward: %v -> %v", last, landing.Stage)
			}
			ladder = append(ladder, landing.Stage)
			last = landing.Stage
		}
	}

	if !secured {
		t.Fatalf("fighter never secured; ladder so far %v", ladder)
	}
	want := []constant.LandingStage{
		constant.LandingApproaching,
		constant.LandingAligning,
		constant.LandingFinal,
	}
	if len(ladder) != len(want) {
		t.Fatalf("stage ladder = %v, want %v", ladder, want)
	}
	for i := range want {
		if ladder[i] != want[i] {
			t.Fatalf("stage ladder = %v, want %v", ladder, want)
		}
	}

	if w.Components.Units.Has(fighter) || w.Components.Kinetics.Has(fighter) {
		t.Error("secured fighter still has live components")
	}
	c, _ = w.Components.Carriers.Get(carrier)
	if c.InFlight != 0 {
		t.Errorf("InFlight = %d after securing, want 0", c.InFlight)
	}
	if len(c.Stored) != parameter.CarrierCapacity {
		t.Errorf("stored = %d, want full bay %d", len(c.Stored), parameter.CarrierCapacity)
	}
}

// The movement lock is derived: held while a lander is aligning or on
// final, dropped when operations finish
func TestMovementLockDuringLanding(t *testing.T) {
	g := newTestGame()
	w := g.World

	carrier := w.SpawnCarrier(core.FactionFriendly, 1000, 1000, 0)
	fighter := w.SpawnFighter(core.FactionFriendly, 1040, 1000, 0)
	w.Components.Landings.Set(fighter, component.LandingComponent{
		Carrier: carrier,
		Stage:   constant.LandingAligning,
	})

	step(g, 1)

	c, _ := w.Components.Carriers.Get(carrier)
	if !c.MovementLocked {
		t.Fatal("carrier not locked while a lander aligns")
	}

	kin, _ := w.Components.Kinetics.Get(carrier)
	if kin.VelX != 0 || kin.VelY != 0 {
		t.Error("locked carrier still has velocity")
	}
}

// An emergency move lifts the lock for the tick and kicks aligning or
// final-stage landers back to approach with a retry backoff
func TestEmergencyMoveAbortsLandings(t *testing.T) {
	g := newTestGame()
	w := g.World

	carrier := w.SpawnCarrier(core.FactionFriendly, 1000, 1000, 0)
	fighter := w.SpawnFighter(core.FactionFriendly, 1020, 1000, 0)

	kin, _ := w.Components.Kinetics.Get(fighter)
	kin.Suspended = true
	w.Components.Kinetics.Set(fighter, kin)
	w.Components.Landings.Set(fighter, component.LandingComponent{
		Carrier: carrier,
		Stage:   constant.LandingFinal,
	})

	var aborted bool
	g.Observe(func(ev event.GameEvent) {
		if ev.Type == event.EventLandingAborted {
			aborted = true
		}
	})

	w.PushEvent(event.EventEmergencyMove, &event.EmergencyMovePayload{
		Carrier: carrier, X: 2000, Y: 1000,
	})
	step(g, 1)

	landing, ok := w.Components.Landings.Get(fighter)
	if !ok {
		t.Fatal("landing component vanished on abort")
	}
	if landing.Stage != constant.LandingApproaching {
		t.Errorf("stage = %v after abort, want approaching", landing.Stage)
	}
	if landing.Backoff <= 0 {
		t.Error("no retry backoff after abort")
	}

	kin, _ = w.Components.Kinetics.Get(fighter)
	if kin.Suspended {
		t.Error("aborted lander still suspended from collision")
	}

	c, _ := w.Components.Carriers.Get(carrier)
	if c.MovementLocked {
		t.Error("emergency override did not lift the movement lock")
	}

	step(g, 1)
	if !aborted {
		t.Error("no abort notification")
	}

	// The carrier actually gets moving
	step(g, 30)
	kin, _ = w.Components.Kinetics.Get(carrier)
	if kin.VelX <= 0 {
		t.Errorf("carrier velX = %.2f, want motion toward emergency point", kin.VelX)
	}
}

// A fighter crossing the approach envelope tangentially at full speed must
// still converge: its turn circle is wider than the align envelope, so the
// aligning speed cap is what keeps it from orbiting the carrier forever
func TestTangentialApproachSecures(t *testing.T) {
	g := newTestGame()
	w := g.World

	carrier := w.SpawnCarrier(core.FactionFriendly, 1000, 1000, 0)

	c, _ := w.Components.Carriers.Get(carrier)
	fighter := c.Stored[0]
	c.Stored = c.Stored[1:]
	c.InFlight = 1
	w.Components.Carriers.Set(carrier, c)

	// South of the carrier flying due west: velocity perpendicular to
	// the approach line
	w.EquipFighter(fighter, core.FactionFriendly, 1000, 860, math.Pi, carrier)
	kin, _ := w.Components.Kinetics.Get(fighter)
	kin.VelX = -parameter.FighterMaxSpeed
	w.Components.Kinetics.Set(fighter, kin)

	w.PushEvent(event.EventRecallOrder, &event.RecallOrderPayload{
		Carrier:  carrier,
		Fighters: []core.Entity{fighter},
	})

	for tick := 0; tick < 60*30; tick++ {
		step(g, 1)
		if !w.Components.Landings.Has(fighter) && !w.Components.Units.Has(fighter) {
			break
		}
	}

	if w.Components.Landings.Has(fighter) {
		landing, _ := w.Components.Landings.Get(fighter)
		kin, _ = w.Components.Kinetics.Get(fighter)
		t.Fatalf("lander stuck at stage %v, dist %.1f",
			landing.Stage, vmath.Dist(kin.X, kin.Y, 1000, 1000))
	}

	c, _ = w.Components.Carriers.Get(carrier)
	if len(c.Stored) != parameter.CarrierCapacity {
		t.Errorf("stored = %d, want full bay %d", len(c.Stored), parameter.CarrierCapacity)
	}
	if c.InFlight != 0 {
		t.Errorf("InFlight = %d, want 0", c.InFlight)
	}
	if c.MovementLocked {
		t.Error("movement lock held after the landing completed")
	}
}

// Queued launches hold committed bay slots: a foreign fighter's recall is
// rejected while the whole bay sits in the launch queue
func TestForeignRecallCountsQueuedLaunches(t *testing.T) {
	g := newTestGame()
	w := g.World

	carrier := w.SpawnCarrier(core.FactionFriendly, 1000, 1000, 0)
	stray := w.SpawnFighter(core.FactionFriendly, 1300, 1000, 0)

	w.PushEvent(event.EventLaunchOrder, &event.LaunchOrderPayload{
		Carrier: carrier, Count: 0, // everything in the bay
	})
	step(g, 1)

	c, _ := w.Components.Carriers.Get(carrier)
	if len(c.Stored) != 0 || len(c.LaunchQueue) != parameter.CarrierCapacity {
		t.Fatalf("bay not fully committed: stored=%d queued=%d",
			len(c.Stored), len(c.LaunchQueue))
	}

	w.PushEvent(event.EventRecallOrder, &event.RecallOrderPayload{
		Carrier:  carrier,
		Fighters: []core.Entity{stray},
	})
	step(g, 1)

	if w.Components.Landings.Has(stray) {
		t.Error("foreign recall accepted against a fully committed bay")
	}
}
