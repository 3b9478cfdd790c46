package poker

import (
	"fmt"
	"sort"

	"github.com/JanBanasik/PokerGame/pkg/deck"
)

// HandAnalyzer classifies a five-card hand and computes its tie-break key.
// The tie-break key is an ordered sequence of ranks; two hands of the same
// classification are compared key-element by key-element.
type HandAnalyzer struct {
	cards    []*deck.Card
	hand     Hand
	tieBreak []int
}

// NewHandAnalyzer will return a new HandAnalyzer instance
// Exactly five cards are required.
func NewHandAnalyzer(cards []*deck.Card) (*HandAnalyzer, error) {
	if len(cards) != 5 {
		return nil, fmt.Errorf("a hand must have exactly 5 cards, got %d", len(cards))
	}

	newCards := make([]*deck.Card, len(cards))
	copy(newCards, cards)

	sort.Sort(sortByRank(newCards))

	h := &HandAnalyzer{
		cards: newCards,
	}

	h.analyze()
	return h, nil
}

// GetHand will return the best possible hand the cards can make
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetTieBreak returns the tie-break key for the hand
func (h *HandAnalyzer) GetTieBreak() []int {
	return h.tieBreak
}

// analyze tests each classification from strongest to weakest and keeps the
// first match along with its tie-break key
func (h *HandAnalyzer) analyze() {
	checks := []struct {
		hand  Hand
		check func() ([]int, bool)
	}{
		{RoyalFlush, h.checkRoyalFlush},
		{StraightFlush, h.checkStraightFlush},
		{FourOfAKind, h.checkFourOfAKind},
		{FullHouse, h.checkFullHouse},
		{Flush, h.checkFlush},
		{Straight, h.checkStraight},
		{ThreeOfAKind, h.checkThreeOfAKind},
		{TwoPair, h.checkTwoPair},
		{OnePair, h.checkPair},
	}

	for _, c := range checks {
		if key, ok := c.check(); ok {
			h.hand = c.hand
			h.tieBreak = key
			return
		}
	}

	h.hand = HighCard
	h.tieBreak = h.highCardKey()
}

func (h *HandAnalyzer) checkRoyalFlush() ([]int, bool) {
	if _, ok := h.checkStraightFlush(); ok && h.cards[4].Rank == deck.Ace {
		return []int{deck.Ace}, true
	}

	return nil, false
}

func (h *HandAnalyzer) checkStraightFlush() ([]int, bool) {
	key, isStraight := h.checkStraight()
	if _, isFlush := h.checkFlush(); isStraight && isFlush {
		return key, true
	}

	return nil, false
}

func (h *HandAnalyzer) checkFourOfAKind() ([]int, bool) {
	for rank, count := range h.rankCounts() {
		if count == 4 {
			kicker := 0
			for _, card := range h.cards {
				if card.Rank != rank {
					kicker = card.Rank
					break
				}
			}

			return []int{rank, kicker}, true
		}
	}

	return nil, false
}

func (h *HandAnalyzer) checkFullHouse() ([]int, bool) {
	trips, pair := 0, 0
	for rank, count := range h.rankCounts() {
		switch count {
		case 3:
			trips = rank
		case 2:
			pair = rank
		}
	}

	if trips > 0 && pair > 0 {
		return []int{trips, pair}, true
	}

	return nil, false
}

func (h *HandAnalyzer) checkFlush() ([]int, bool) {
	suit := h.cards[0].Suit
	for _, card := range h.cards[1:] {
		if card.Suit != suit {
			return nil, false
		}
	}

	// cards are sorted ascending, so the high card is last
	return []int{h.cards[4].Rank}, true
}

func (h *HandAnalyzer) checkStraight() ([]int, bool) {
	// the wheel: ace plays low
	if h.cards[0].Rank == 2 &&
		h.cards[1].Rank == 3 &&
		h.cards[2].Rank == 4 &&
		h.cards[3].Rank == 5 &&
		h.cards[4].Rank == deck.Ace {
		return []int{5}, true
	}

	for i := 0; i < 4; i++ {
		if h.cards[i].Rank != h.cards[i+1].Rank-1 {
			return nil, false
		}
	}

	return []int{h.cards[4].Rank}, true
}

func (h *HandAnalyzer) checkThreeOfAKind() ([]int, bool) {
	for rank, count := range h.rankCounts() {
		if count == 3 {
			return []int{rank}, true
		}
	}

	return nil, false
}

func (h *HandAnalyzer) checkTwoPair() ([]int, bool) {
	pairs := make([]int, 0, 2)
	for rank, count := range h.rankCounts() {
		if count == 2 {
			pairs = append(pairs, rank)
		}
	}

	if len(pairs) != 2 {
		return nil, false
	}

	sort.Sort(sort.Reverse(sort.IntSlice(pairs)))
	return pairs, true
}

func (h *HandAnalyzer) checkPair() ([]int, bool) {
	for rank, count := range h.rankCounts() {
		if count == 2 {
			return []int{rank}, true
		}
	}

	return nil, false
}

func (h *HandAnalyzer) highCardKey() []int {
	key := make([]int, 5)
	for i, card := range h.cards {
		key[4-i] = card.Rank
	}

	return key
}

func (h *HandAnalyzer) rankCounts() map[int]int {
	counts := make(map[int]int)
	for _, card := range h.cards {
		counts[card.Rank]++
	}

	return counts
}
