package engine

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ohade/strategy-game/event"
)

type recordingSystem struct {
	name     string
	priority int
	types    []event.EventType

	events  []event.GameEvent
	updates int
	trace   *[]string
}

func (r *recordingSystem) Name() string                  { return r.name }
func (r *recordingSystem) Priority() int                 { return r.priority }
func (r *recordingSystem) EventTypes() []event.EventType { return r.types }
func (r *recordingSystem) HandleEvent(ev event.GameEvent) {
	r.events = append(r.events, ev)
	if r.trace != nil {
		*r.trace = append(*r.trace, r.name+":event")
	}
}
func (r *recordingSystem) Update() {
	r.updates++
	if r.trace != nil {
		*r.trace = append(*r.trace, r.name+":update")
	}
}

// Events queued before a tick reach their subscribers before any system
// updates, and systems update in priority order
func TestStepOrdering(t *testing.T) {
	g := NewGame(zerolog.Nop(), time.Second/60)

	var trace []string
	late := &recordingSystem{name: "late", priority: 50, trace: &trace,
		types: []event.EventType{event.EventMoveOrder}}
	early := &recordingSystem{name: "early", priority: 10, trace: &trace}
	g.AddSystem(late)
	g.AddSystem(early)

	g.World.PushEvent(event.EventMoveOrder, &event.MoveOrderPayload{X: 1})
	g.Step(time.Second / 60)

	want := []string{"late:event", "early:update", "late:update"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}

// Events without a subscribed system fall through to observers, one tick
// after emission
func TestObserverDelivery(t *testing.T) {
	g := NewGame(zerolog.Nop(), time.Second/60)

	var seen []event.EventType
	g.Observe(func(ev event.GameEvent) {
		seen = append(seen, ev.Type)
	})

	g.World.PushEvent(event.EventFighterSecured, &event.FighterSecuredPayload{})
	if len(seen) != 0 {
		t.Fatal("observer ran before the tick")
	}

	g.Step(time.Second / 60)
	if len(seen) != 1 || seen[0] != event.EventFighterSecured {
		t.Fatalf("observed = %v, want the secured notification", seen)
	}
}

// Events pushed during a step are deferred to the next tick, keeping
// order application strictly ahead of every system's update
func TestMidTickEventsDeferred(t *testing.T) {
	g := NewGame(zerolog.Nop(), time.Second/60)

	sub := &recordingSystem{name: "sub", priority: 20,
		types: []event.EventType{event.EventLaunchOrder}}
	g.AddSystem(sub)

	emitter := &emitOnceSystem{world: g.World}
	g.AddSystem(emitter)

	g.Step(time.Second / 60)
	if len(sub.events) != 0 {
		t.Fatal("mid-tick event delivered in the same tick")
	}

	g.Step(time.Second / 60)
	if len(sub.events) != 1 {
		t.Fatalf("deferred event count = %d, want 1", len(sub.events))
	}
}

type emitOnceSystem struct {
	world *World
	done  bool
}

func (s *emitOnceSystem) Name() string                   { return "emitter" }
func (s *emitOnceSystem) Priority() int                  { return 10 }
func (s *emitOnceSystem) EventTypes() []event.EventType  { return nil }
func (s *emitOnceSystem) HandleEvent(ev event.GameEvent) {}
func (s *emitOnceSystem) Update() {
	if !s.done {
		s.done = true
		s.world.PushEvent(event.EventLaunchOrder, &event.LaunchOrderPayload{})
	}
}

func TestFrameNumberAdvances(t *testing.T) {
	tick := time.Second / 60
	g := NewGame(zerolog.Nop(), tick)
	for i := 0; i < 5; i++ {
		g.Step(tick)
	}
	if g.FrameNumber() != 5 {
		t.Fatalf("frame = %d, want 5", g.FrameNumber())
	}
	// GameTime accumulates the truncated tick Duration, not 5s/60
	if got := g.World.Resources.Time.GameTime; got != 5*tick {
		t.Fatalf("game time = %v, want %v", got, 5*tick)
	}
	if secs := g.World.Resources.Status.Floats.Get("engine.stepSeconds").Get(); secs < 0 {
		t.Fatalf("step gauge = %v, want >= 0", secs)
	}
}
