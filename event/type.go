package event

// EventType identifies a game event
type EventType int

const (
	// === Order Events (command layer -> simulation) ===

	// EventMoveOrder directs units to a world point
	// Trigger: command.Dispatcher.MoveTo
	// Consumer: OrderSystem | Payload: *MoveOrderPayload
	EventMoveOrder EventType = iota + 1

	// EventAttackOrder sets an explicit attack target
	// Trigger: command.Dispatcher.AttackTarget
	// Consumer: OrderSystem | Payload: *AttackOrderPayload
	EventAttackOrder

	// EventLaunchOrder queues fighter launches on a carrier
	// Trigger: command.Dispatcher.LaunchFighters
	// Consumer: CarrierSystem | Payload: *LaunchOrderPayload
	EventLaunchOrder

	// EventRecallOrder starts landing sequences for fighters
	// Trigger: command.Dispatcher.RecallFighters
	// Consumer: CarrierSystem | Payload: *RecallOrderPayload
	EventRecallOrder

	// EventEmergencyMove overrides a carrier's movement lock for the tick
	// Trigger: command.Dispatcher.EmergencyMove
	// Consumer: CarrierSystem | Payload: *EmergencyMovePayload
	EventEmergencyMove

	// === Simulation Notifications (simulation -> observers) ===

	// EventUnitDestroyed reports a unit reaching zero hit points
	// Trigger: DeathSystem sweep
	// Consumer: game loop, network broadcast | Payload: *UnitDestroyedPayload
	EventUnitDestroyed EventType = iota + 200

	// EventFighterLaunched reports a fighter emerging from a tube
	// Trigger: CarrierSystem launch completion
	// Consumer: game loop, network broadcast | Payload: *FighterLaunchedPayload
	EventFighterLaunched

	// EventFighterSecured reports a fighter stored back into a carrier
	// Trigger: CarrierSystem landing completion
	// Consumer: game loop, network broadcast | Payload: *FighterSecuredPayload
	EventFighterSecured

	// EventLandingAborted reports an emergency abort back to approach
	// Trigger: CarrierSystem emergency override
	// Consumer: game loop | Payload: *LandingAbortedPayload
	EventLandingAborted
)
