package game

import (
	"github.com/uno-arena/server/uno/card"
)

// Eligible is the sole legality gate for both chosen and auto-drawn plays.
// A wild-colored card matches anything, and anything matches a wild-colored
// top card.
func Eligible(candidateCard card.Card, topCard card.Card) bool {
	return candidateCard.Color.Wild() ||
		topCard.Color.Wild() ||
		candidateCard.Color == topCard.Color ||
		candidateCard.Value == topCard.Value
}

// HasEligibleCard reports whether the player can play without drawing.
// A lone wildcard is never auto-playable: the fast path that plays a last
// card directly has no room for the extra color pick.
func HasEligibleCard(player *Player, topCard card.Card) bool {
	cards := player.Hand()
	if len(cards) == 0 {
		return false
	}
	if len(cards) > 1 {
		for _, candidateCard := range cards {
			if Eligible(candidateCard, topCard) {
				return true
			}
		}
		return false
	}
	lastCard := cards[len(cards)-1]
	return Eligible(lastCard, topCard) && !lastCard.IsWildcard()
}

// EligibleCards filters the hand against the top of the discard pile.
func EligibleCards(player *Player, topCard card.Card) []card.Card {
	var eligibleCards []card.Card
	for _, candidateCard := range player.Hand() {
		if Eligible(candidateCard, topCard) {
			eligibleCards = append(eligibleCards, candidateCard)
		}
	}
	return eligibleCards
}
