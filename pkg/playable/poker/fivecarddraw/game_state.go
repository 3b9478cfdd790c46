package fivecarddraw

// participantState is a participant as seen by the status endpoint.
// Cards are never exposed, only how many the player holds.
type participantState struct {
	PlayerID   int  `json:"playerId"`
	Cards      int  `json:"cards"`
	BetInRound int  `json:"betInRound"`
	Folded     bool `json:"folded"`
}

// State is a point-in-time snapshot of the table
type State struct {
	Name            string             `json:"name"`
	HandUUID        string             `json:"handUuid,omitempty"`
	Phase           string             `json:"phase"`
	Pot             int                `json:"pot"`
	CurrentBet      int                `json:"currentBet"`
	Ante            int                `json:"ante"`
	MaxPlayers      int                `json:"maxPlayers"`
	CurrentPlayerID int                `json:"currentPlayerId"`
	Participants    []participantState `json:"participants"`
}

// Snapshot implements the status endpoint's snapshot hook
// NOTE: must only be called from the run loop
func (g *Game) Snapshot() interface{} {
	return g.State()
}

// State returns a snapshot of the game suitable for the status endpoint.
// Must be called from the table run loop.
func (g *Game) State() *State {
	participants := make([]participantState, len(g.participants))
	for i, p := range g.participants {
		participants[i] = participantState{
			PlayerID:   p.PlayerID,
			Cards:      len(p.hand),
			BetInRound: p.betInRound,
			Folded:     g.folded[p.PlayerID],
		}
	}

	currentPlayerID := -1
	if len(g.participants) > 0 && g.currentPlayerIndex < len(g.participants) {
		currentPlayerID = g.participants[g.currentPlayerIndex].PlayerID
	}

	return &State{
		Name:            g.Name(),
		HandUUID:        g.handUUID,
		Phase:           g.phase.String(),
		Pot:             g.pot,
		CurrentBet:      g.currentBet,
		Ante:            g.options.Ante,
		MaxPlayers:      g.options.MaxPlayers,
		CurrentPlayerID: currentPlayerID,
		Participants:    participants,
	}
}
