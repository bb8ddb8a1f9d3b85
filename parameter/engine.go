package parameter

// Engine-level sizing
const (
	// EventQueueSize is the command/event ring capacity; must be a power
	// of two for the index mask
	EventQueueSize  = 1024
	EventBufferMask = EventQueueSize - 1

	// MapWidth and MapHeight bound the playable world
	MapWidth  = 4000.0
	MapHeight = 3000.0

	// TickRate is the fixed simulation frequency in Hz
	TickRate = 60
)
