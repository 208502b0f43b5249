// Package game runs a session: setup, the turn scheduler and the main menu.
// It talks to the player only through a Console.
package game

// State is where a session is in its lifecycle.
type State int

const (
	// StateIdle is a session with no usable setup.
	StateIdle State = iota
	// StateConfigured has players and a closed map, ready to play.
	StateConfigured
	// StatePlaying is inside the round loop.
	StatePlaying
	// StateWon ended with the boss defeated.
	StateWon
	// StateLost ended with every player dead.
	StateLost
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfigured:
		return "configured"
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}
