package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
)

func TestCaptureProjectsLiveUnits(t *testing.T) {
	w := engine.NewWorld()
	carrier := w.SpawnCarrier(core.FactionFriendly, 500, 400, 0)
	fighter := w.SpawnFighter(core.FactionEnemy, 900, 400, 0)

	frame := Capture(w, 42)

	if frame.Tick != 42 {
		t.Fatalf("tick = %d, want 42", frame.Tick)
	}
	if len(frame.Units) != 2 {
		t.Fatalf("units = %d, want 2", len(frame.Units))
	}

	// Ascending id order
	if frame.Units[0].ID != carrier || frame.Units[1].ID != fighter {
		t.Fatalf("order = [%d %d], want [%d %d]",
			frame.Units[0].ID, frame.Units[1].ID, carrier, fighter)
	}

	cv := frame.Units[0]
	if cv.Carrier == nil {
		t.Fatal("carrier view missing")
	}
	if cv.Carrier.Stored == 0 || cv.Carrier.Capacity == 0 {
		t.Errorf("carrier view = %+v, want populated bay", cv.Carrier)
	}
	if len(cv.Carrier.Points) != 3 {
		t.Errorf("launch points = %d, want 3", len(cv.Carrier.Points))
	}

	fv := frame.Units[1]
	if fv.Carrier != nil {
		t.Error("fighter carries a carrier view")
	}
	if !fv.Targetable {
		t.Error("live fighter not targetable")
	}
	if fv.HP != fv.HPMax || fv.HP == 0 {
		t.Errorf("fighter hp %v/%v", fv.HP, fv.HPMax)
	}
}

func TestCaptureSkipsDestroyed(t *testing.T) {
	w := engine.NewWorld()
	fighter := w.SpawnFighter(core.FactionFriendly, 0, 0, 0)

	unit, _ := w.Components.Units.Get(fighter)
	unit.State = core.StateDestroyed
	w.Components.Units.Set(fighter, unit)

	frame := Capture(w, 1)
	if len(frame.Units) != 0 {
		t.Fatalf("destroyed unit leaked into the frame: %+v", frame.Units)
	}
}

func TestSuspendedLanderNotTargetable(t *testing.T) {
	w := engine.NewWorld()
	fighter := w.SpawnFighter(core.FactionFriendly, 0, 0, 0)

	kin, _ := w.Components.Kinetics.Get(fighter)
	kin.Suspended = true
	w.Components.Kinetics.Set(fighter, kin)

	frame := Capture(w, 1)
	if len(frame.Units) != 1 || frame.Units[0].Targetable {
		t.Fatal("suspended lander still targetable")
	}
}

// Frames are wire data; two captures of an unchanged world encode to the
// same bytes
func TestFrameEncodingDeterministic(t *testing.T) {
	w := engine.NewWorld()
	w.SpawnCarrier(core.FactionFriendly, 500, 400, 0)
	w.SpawnFighter(core.FactionEnemy, 900, 400, 0)

	a, err := json.Marshal(Capture(w, 7))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(Capture(w, 7))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("identical captures encoded differently")
	}
}
