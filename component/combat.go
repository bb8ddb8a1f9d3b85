package component

import (
	"github.com/ohade/strategy-game/core"
)

// CombatComponent carries hit points and weapon state.
// Invariant: 0 <= HP <= HPMax. RemainingCooldown decrements by dt every
// tick regardless of state changes; re-acquiring a target does not reset it
type CombatComponent struct {
	HP    float64
	HPMax float64

	AttackPower    float64
	AttackRange    float64
	AttackCooldown float64

	RemainingCooldown float64

	// Target is the unit currently being attacked or pursued for attack
	Target core.Entity
}

// Alive reports whether the unit still participates in combat
func (c CombatComponent) Alive() bool {
	return c.HP > 0
}
