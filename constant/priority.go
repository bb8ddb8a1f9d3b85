package constant

// System execution priorities (lower runs first).
// The tick pipeline order is a hard guarantee: orders are applied before
// carrier sequencing, which precedes targeting, integration, collision
// resolution, damage, and finally the destruction sweep. A unit must never
// move past a now-dead target and still land a hit on it in the same tick.
const (
	PriorityOrders    = 10
	PriorityCarrier   = 20
	PriorityTargeting = 30
	PriorityMovement  = 40
	PriorityCollision = 50
	PriorityAttack    = 60
	PriorityDeath     = 90
)
