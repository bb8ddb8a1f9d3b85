package engine

import (
	"sync"
	"sync/atomic"

	"github.com/ohade/strategy-game/component"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/event"
)

// AnyStore is implemented by all component stores for uniform cleanup
type AnyStore interface {
	Remove(e core.Entity)
	Has(e core.Entity) bool
	Clear()
}

// ComponentStore groups the typed stores for direct system access.
// Cached once per system to eliminate runtime lookups
type ComponentStore struct {
	Units    *Store[component.UnitComponent]
	Kinetics *Store[component.KineticComponent]
	Movers   *Store[component.MoverComponent]
	Combats  *Store[component.CombatComponent]
	Carriers *Store[component.CarrierComponent]
	Landings *Store[component.LandingComponent]
}

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	Components ComponentStore
	Resources  *Resource

	allStores []AnyStore

	// Direct pointers for the PushEvent hot path
	eventQueue  *event.EventQueue
	frameSource *atomic.Int64

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a new ECS world with all component stores initialized
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		Components: ComponentStore{
			Units:    NewStore[component.UnitComponent](),
			Kinetics: NewStore[component.KineticComponent](),
			Movers:   NewStore[component.MoverComponent](),
			Combats:  NewStore[component.CombatComponent](),
			Carriers: NewStore[component.CarrierComponent](),
			Landings: NewStore[component.LandingComponent](),
		},
		Resources: NewResource(),
		systems:   make([]System, 0),
	}

	w.allStores = []AnyStore{
		w.Components.Units,
		w.Components.Kinetics,
		w.Components.Movers,
		w.Components.Combats,
		w.Components.Carriers,
		w.Components.Landings,
	}

	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	for _, store := range w.allStores {
		store.Remove(e)
	}
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextEntityID = 1
	for _, store := range w.allStores {
		store.Clear()
	}
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems in priority order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock.
// The command dispatcher uses this to validate against a quiescent world
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Update runs all systems sequentially in priority order
func (w *World) Update() {
	w.RunSafe(func() {
		w.UpdateLocked()
	})
}

// UpdateLocked runs all systems assuming the caller already holds the
// update lock
func (w *World) UpdateLocked() {
	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		system.Update()
	}
}

// SetEventMetadata wires the direct pointers for PushEvent
// Called once during Game initialization
func (w *World) SetEventMetadata(q *event.EventQueue, f *atomic.Int64) {
	w.eventQueue = q
	w.frameSource = f
}

// PushEvent emits a game event using the cached queue pointer
func (w *World) PushEvent(eventType event.EventType, payload any) {
	if w.eventQueue == nil || w.frameSource == nil {
		return
	}

	w.eventQueue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.frameSource.Load(),
	})
}
