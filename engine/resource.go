package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ohade/strategy-game/status"
)

// Resource holds singleton simulation resources, initialized during Game
// creation and accessed via World.Resources
type Resource struct {
	Time *TimeResource
	Log  zerolog.Logger

	// Telemetry
	Status *status.Registry
}

// NewResource creates resources with a no-op logger; Game replaces the
// logger during wiring
func NewResource() *Resource {
	return &Resource{
		Time:   &TimeResource{},
		Log:    zerolog.Nop(),
		Status: status.NewRegistry(),
	}
}

// TimeResource wraps time data for systems
// It is updated by the Game at the start of every tick
type TimeResource struct {
	// GameTime is accumulated simulation time
	GameTime time.Duration

	// DeltaTime is the duration covered by the current tick
	DeltaTime time.Duration

	// FrameNumber is the current tick count
	FrameNumber int64
}

// Dt returns the tick delta in seconds, the unit the kinematics work in
func (tr *TimeResource) Dt() float64 {
	return tr.DeltaTime.Seconds()
}

// Update modifies TimeResource fields in-place (zero allocation)
// Must be called under the world update lock
func (tr *TimeResource) Update(deltaTime time.Duration, frameNumber int64) {
	tr.GameTime += deltaTime
	tr.DeltaTime = deltaTime
	tr.FrameNumber = frameNumber
}
