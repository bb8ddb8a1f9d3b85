package core

// Faction identifies which side a unit fights for
type Faction uint8

const (
	FactionFriendly Faction = iota
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionFriendly:
		return "friendly"
	case FactionEnemy:
		return "enemy"
	}
	return "unknown"
}

// Opposes reports whether two factions are valid attack pairings.
// Same-faction units are never valid targets.
func (f Faction) Opposes(other Faction) bool {
	return f != other
}
