package game

import (
	"github.com/uno-arena/server/uno/card"
)

// MaxHandCards caps a hand; draws beyond it are silently truncated.
const MaxHandCards = 25

// Hand keeps cards in insertion order.
type Hand struct {
	cards []card.Card
}

func NewHand() *Hand {
	return &Hand{cards: make([]card.Card, 0, 7)}
}

func (h *Hand) AddCards(cards []card.Card) {
	h.cards = append(h.cards, cards...)
}

func (h *Hand) Cards() []card.Card {
	cards := make([]card.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

func (h *Hand) Contains(searchedCard card.Card) bool {
	for _, cardInHand := range h.cards {
		if cardInHand.Equal(searchedCard) {
			return true
		}
	}
	return false
}

func (h *Hand) Empty() bool {
	return len(h.cards) == 0
}

// RemoveCard removes a single copy, keeping the remaining order intact.
func (h *Hand) RemoveCard(removedCard card.Card) bool {
	for index, cardInHand := range h.cards {
		if cardInHand.Equal(removedCard) {
			h.cards = append(h.cards[:index], h.cards[index+1:]...)
			return true
		}
	}
	return false
}

func (h *Hand) Size() int {
	return len(h.cards)
}
