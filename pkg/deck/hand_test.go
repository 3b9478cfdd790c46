package deck

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_AddCard(t *testing.T) {
	hand := Hand{}
	hand.AddCard(CardFromString("5s"))
	hand.AddCard(CardFromString("6s"))

	assert.Equal(t, 2, len(hand))
	assert.True(t, hand.HasCard(CardFromString("5s")))
	assert.False(t, hand.HasCard(CardFromString("7s")))
}

func TestHand_RemoveAt(t *testing.T) {
	a := assert.New(t)
	hand := Hand(CardsFromString("2c,3d,4h,5s,6c"))

	card, ok := hand.RemoveAt(2)
	a.True(ok)
	a.Equal("4h", CardToString(card))
	a.Equal("2c,3d,5s,6c", CardsToString(hand))

	card, ok = hand.RemoveAt(3)
	a.True(ok)
	a.Equal("6c", CardToString(card))

	card, ok = hand.RemoveAt(3)
	a.False(ok)
	a.Nil(card)

	card, ok = hand.RemoveAt(-1)
	a.False(ok)
	a.Nil(card)
}

func TestHand_FirstCard_LastCard(t *testing.T) {
	a := assert.New(t)

	hand := Hand{}
	a.Nil(hand.FirstCard())
	a.Nil(hand.LastCard())

	hand = Hand(CardsFromString("2c,3d,4h"))
	a.Equal("2c", CardToString(hand.FirstCard()))
	a.Equal("4h", CardToString(hand.LastCard()))
}

func TestHand_sort(t *testing.T) {
	hand := Hand(CardsFromString("14s,2c,11h,3c,5d"))
	sort.Sort(hand)

	assert.Equal(t, "2c,3c,5d,11h,14s", CardsToString(hand))
}

func TestHand_Clone(t *testing.T) {
	hand := Hand(CardsFromString("2c,3d"))
	clone := hand.Clone()

	clone[0] = CardFromString("14s")
	assert.Equal(t, "2c,3d", CardsToString(hand))
	assert.Equal(t, "14s,3d", CardsToString(clone))
}
