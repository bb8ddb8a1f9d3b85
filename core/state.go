package core

// UnitState is the combat lifecycle state of a unit
// StateDestroyed is terminal: a destroyed unit never integrates,
// targets, or takes further damage
type UnitState uint8

const (
	StateIdle UnitState = iota
	StateMoving
	StateAttacking
	StateDestroyed
)

func (s UnitState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StateAttacking:
		return "attacking"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Terminal reports whether the state admits no further transitions
func (s UnitState) Terminal() bool {
	return s == StateDestroyed
}
