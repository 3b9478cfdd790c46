package playable

import "errors"

// ErrGameFull is returned by AddPlayer when every seat is taken
var ErrGameFull = errors.New("the game is full")

// Playable is a turn-based game that can be hosted at a table.
// All methods must be called from a single goroutine; implementations do
// not lock their state.
type Playable interface {
	// Configure prepares the game for a new hand with the given table size
	// and ante. It moves the game out of its idle state so players can join.
	Configure(maxPlayers, ante int) error

	// AddPlayer seats a newly connected client. Returns ErrGameFull when
	// there is no seat left. Implementations may start the hand once the
	// final seat fills.
	AddPlayer(id int) error

	// StartHand shuffles, deals and opens the first betting round
	StartHand() error

	// HandleMessage processes one inbound text message from the client.
	// Invalid input never mutates state; the sender receives a rejection.
	HandleMessage(id int, text string)

	// RemoveClient handles a peer disconnect mid-game
	RemoveClient(id int)

	// IsRunning returns true while a hand is being played
	IsRunning() bool
}

// Messenger is the output port a game writes its responses through.
// Implementations must not block; a slow receiver is the transport's
// problem, not the game's.
type Messenger interface {
	// SendTo delivers a message to a single player
	SendTo(id int, message string)

	// Broadcast delivers a message to every connected player
	Broadcast(message string)

	// CloseAll disconnects every player and frees their seats
	CloseAll()
}
