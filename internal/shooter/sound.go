package shooter

// SoundID names a sound effect requested by the simulation.
type SoundID int

const (
	SoundBlast SoundID = iota
	SoundPlayerHit
	SoundLaser
	SoundPickup
)

// String returns the sound name.
func (s SoundID) String() string {
	switch s {
	case SoundBlast:
		return "blast"
	case SoundPlayerHit:
		return "player_hit"
	case SoundLaser:
		return "laser"
	case SoundPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// SoundPlayer plays sound effects. Play must not block the frame.
type SoundPlayer interface {
	Play(id SoundID)
}

// NopSounds discards every sound.
type NopSounds struct{}

// Play does nothing.
func (NopSounds) Play(SoundID) {}
