package game

import (
	"github.com/uno-arena/server/uno/card"
)

// Pile is the discard pile; the top card is the last one added.
type Pile struct {
	cards []card.Card
}

func NewPile() *Pile {
	return &Pile{cards: make([]card.Card, 0, 54)}
}

func (p *Pile) Add(playedCard card.Card) {
	p.cards = append(p.cards, playedCard)
}

func (p *Pile) Cards() []card.Card {
	cards := make([]card.Card, len(p.cards))
	copy(cards, p.cards)
	return cards
}

func (p *Pile) Size() int {
	return len(p.cards)
}

// Top peeks at the last discarded card. The pile is never empty once a
// match has started.
func (p *Pile) Top() card.Card {
	return p.cards[len(p.cards)-1]
}
