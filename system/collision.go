package system

import (
	"sort"
	"sync/atomic"

	"github.com/ohade/strategy-game/component"
	"github.com/ohade/strategy-game/constant"
	"github.com/ohade/strategy-game/core"
	"github.com/ohade/strategy-game/engine"
	"github.com/ohade/strategy-game/event"
	"github.com/ohade/strategy-game/parameter"
	"github.com/ohade/strategy-game/physics"
)

// collisionCellSize spans the largest hull so a 3x3 neighborhood always
// covers every possible contact partner
const collisionCellSize = parameter.CarrierRadius * 2

// CollisionSystem restores the non-penetration invariant after
// integration. Broad phase buckets bodies into a uniform grid; narrow
// phase tests circle pairs; resolution displaces both bodies along the
// contact normal split by inverse mass. Pairs resolve in ascending
// (A, B) id order so the same world state always produces the same
// corrected positions
type CollisionSystem struct {
	engine.SystemBase

	grid     *engine.SpatialGrid
	neighbor []core.Entity
	contacts []physics.Contact

	statContacts  *atomic.Int64
	statPredicted *atomic.Int64
}

func NewCollisionSystem(world *engine.World) engine.System {
	s := &CollisionSystem{
		SystemBase: engine.NewSystemBase(world),
		grid:       engine.NewSpatialGrid(parameter.MapWidth, parameter.MapHeight, collisionCellSize),
		neighbor:   make([]core.Entity, 0, 32),
		contacts:   make([]physics.Contact, 0, 32),
	}
	s.statContacts = world.Resources.Status.Ints.Get("collision.contacts")
	s.statPredicted = world.Resources.Status.Ints.Get("collision.predicted")
	return s
}

func (s *CollisionSystem) Name() string {
	return "collision"
}

func (s *CollisionSystem) Priority() int {
	return constant.PriorityCollision
}

func (s *CollisionSystem) EventTypes() []event.EventType {
	return nil
}

func (s *CollisionSystem) HandleEvent(ev event.GameEvent) {}

func (s *CollisionSystem) Update() {
	s.grid.Clear()
	s.contacts = s.contacts[:0]

	bodies := s.Component.Kinetics.Entities()

	for _, e := range bodies {
		kin, _ := s.Component.Kinetics.Get(e)
		changed := kin.ContactResolved || kin.PredictedContact
		kin.ContactResolved = false
		kin.PredictedContact = false
		if changed {
			s.Component.Kinetics.Set(e, kin)
		}

		if !s.participates(e, &kin) {
			continue
		}
		s.grid.Insert(e, kin.X, kin.Y)
	}

	// Narrow phase over grid neighborhoods; each unordered pair is
	// visited twice, keep it once with a < b
	for _, a := range bodies {
		kinA, _ := s.Component.Kinetics.Get(a)
		if !s.participates(a, &kinA) {
			continue
		}

		s.neighbor = s.grid.Neighbors(kinA.X, kinA.Y, s.neighbor[:0])
		for _, b := range s.neighbor {
			if b <= a {
				continue
			}
			kinB, ok := s.Component.Kinetics.Get(b)
			if !ok {
				continue
			}

			if contact, hit := physics.Overlap(&kinA.Kinetic, &kinB.Kinetic, kinA.Radius, kinB.Radius); hit {
				contact.A = a
				contact.B = b
				s.contacts = append(s.contacts, contact)
			}
		}
	}

	sort.Slice(s.contacts, func(i, j int) bool {
		if s.contacts[i].A != s.contacts[j].A {
			return s.contacts[i].A < s.contacts[j].A
		}
		return s.contacts[i].B < s.contacts[j].B
	})

	// Sequential resolution: each displacement lands before the next
	// pair is corrected, so chained penetrations relax in id order
	for _, c := range s.contacts {
		kinA, okA := s.Component.Kinetics.Get(c.A)
		kinB, okB := s.Component.Kinetics.Get(c.B)
		if !okA || !okB {
			continue
		}

		physics.ResolveMassSplit(&kinA.Kinetic, &kinB.Kinetic, c, kinA.Mass, kinB.Mass, kinA.Immovable, kinB.Immovable)
		kinA.ContactResolved = true
		kinB.ContactResolved = true

		s.Component.Kinetics.Set(c.A, kinA)
		s.Component.Kinetics.Set(c.B, kinB)
	}
	s.statContacts.Store(int64(len(s.contacts)))

	s.predictCarrierContacts()
}

// participates filters bodies out of the contact set: destroyed units and
// fighters suspended inside a landing envelope do not collide
func (s *CollisionSystem) participates(e core.Entity, kin *component.KineticComponent) bool {
	if kin.Suspended {
		return false
	}
	unit, ok := s.Component.Units.Get(e)
	return ok && !unit.State.Terminal()
}

// predictCarrierContacts flags carriers whose hull an extrapolated body
// crosses within the prediction window, and the inbound body with it.
// The flag is advisory: collaborators read it off the snapshot to steer
// escorts clear before the resolver has to shove anyone
func (s *CollisionSystem) predictCarrierContacts() {
	predicted := int64(0)
	for _, c := range s.Component.Carriers.Entities() {
		carrierKin, ok := s.Component.Kinetics.Get(c)
		if !ok || !s.participates(c, &carrierKin) {
			continue
		}

		buffer := carrierKin.Radius * parameter.ProximityRadiusFactor
		s.neighbor = s.grid.Neighbors(carrierKin.X, carrierKin.Y, s.neighbor[:0])
		for _, e := range s.neighbor {
			if e == c {
				continue
			}
			kin, ok := s.Component.Kinetics.Get(e)
			if !ok {
				continue
			}
			dx := kin.X - carrierKin.X
			dy := kin.Y - carrierKin.Y
			if dx*dx+dy*dy > buffer*buffer {
				continue
			}

			if physics.PredictContact(&carrierKin.Kinetic, &kin.Kinetic, carrierKin.Radius, kin.Radius, parameter.ContactPredictionTime) {
				carrierKin.PredictedContact = true
				kin.PredictedContact = true
				s.Component.Kinetics.Set(e, kin)
				predicted++
			}
		}
		s.Component.Kinetics.Set(c, carrierKin)
	}
	s.statPredicted.Store(predicted)
}
