package network

import "github.com/ohade/strategy-game/core"

// Order is the wire form of a command. Kind selects which fields apply
type Order struct {
	Kind string `json:"kind"`

	Units   []core.Entity `json:"units,omitempty"`
	Target  core.Entity   `json:"target,omitempty"`
	Carrier core.Entity   `json:"carrier,omitempty"`
	Count   int           `json:"count,omitempty"`

	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
}

// Order kinds accepted on the wire
const (
	OrderMove          = "move"
	OrderAttack        = "attack"
	OrderLaunch        = "launch"
	OrderRecall        = "recall"
	OrderEmergencyMove = "emergencyMove"
)

// Ack reports per-order acceptance back to the sender
type Ack struct {
	Kind  string `json:"kind"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
