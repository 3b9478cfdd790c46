package fivecarddraw

import (
	"strings"

	"github.com/JanBanasik/PokerGame/pkg/deck"
)

// Participant is a player seated in the game
type Participant struct {
	// PlayerID is assigned in join order, starting at 0
	PlayerID int

	hand       deck.Hand
	betInRound int
}

func newParticipant(id int) *Participant {
	return &Participant{
		PlayerID: id,
		hand:     make(deck.Hand, 0, 5),
	}
}

// Hand returns the participant's current hand
func (p *Participant) Hand() deck.Hand {
	return p.hand
}

// BetInRound returns the amount the participant has bet this round
func (p *Participant) BetInRound() int {
	return p.betInRound
}

// handString renders the hand the way players see it, e.g. [A♠, 10♡]
func (p *Participant) handString() string {
	cards := make([]string, len(p.hand))
	for i, card := range p.hand {
		cards[i] = card.String()
	}

	return "[" + strings.Join(cards, ", ") + "]"
}
