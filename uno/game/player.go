package game

import (
	"fmt"

	"github.com/uno-arena/server/uno/card"
)

// Player is one seat in a match: a hand plus per-match counters. DrawnCount
// moves on every card added regardless of source, PlayedCount only on
// successful removal.
type Player struct {
	ID   int64
	Name string

	DrawnCount   int
	PlayedCount  int
	SkippedCount int

	// Declared tracks the declare-last-card obligation for the next
	// turn's pre-check.
	Declared bool

	hand *Hand
}

func NewPlayer(id int64, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
		hand: NewHand(),
	}
}

func (p *Player) AddCards(cards []card.Card) {
	p.hand.AddCards(cards)
	p.DrawnCount += len(cards)
}

func (p *Player) RemoveCard(removedCard card.Card) bool {
	if p.hand.RemoveCard(removedCard) {
		p.PlayedCount++
		return true
	}
	return false
}

func (p *Player) Hand() []card.Card {
	return p.hand.Cards()
}

func (p *Player) HandSize() int {
	return p.hand.Size()
}

func (p *Player) HasCard(searchedCard card.Card) bool {
	return p.hand.Contains(searchedCard)
}

func (p *Player) NoCards() bool {
	return p.hand.Empty()
}

func (p *Player) OneCardLeft() bool {
	return p.hand.Size() == 1
}

func (p *Player) String() string {
	return fmt.Sprintf("%s[%d]", p.Name, p.ID)
}
