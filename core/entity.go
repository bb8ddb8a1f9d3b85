package core

// Entity is a unique identifier for a simulated unit
// External collaborators hold only Entity ids, never references
type Entity uint64

// NoEntity marks the absence of an entity reference (targets, occupants)
const NoEntity Entity = 0
