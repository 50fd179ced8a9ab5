package game

import (
	"math/rand"

	"github.com/uno-arena/server/uno/card"
	"github.com/uno-arena/server/uno/card/color"
)

// refillThreshold is checked once per completed turn, never mid-draw.
const refillThreshold = 5

type Deck struct {
	rng   *rand.Rand
	cards []card.Card
}

// NewDeck builds a shuffled deck from the injected random source so
// generation (including the 1% swap-hands card) is reproducible in tests.
func NewDeck(rng *rand.Rand) *Deck {
	deck := &Deck{rng: rng}
	deck.Refill()
	return deck
}

// DrawOne pops the top card. The caller guarantees the deck is not empty;
// the coordinator refills below refillThreshold after every turn.
func (d *Deck) DrawOne() card.Card {
	topCard := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return topCard
}

func (d *Deck) Size() int {
	return len(d.cards)
}

func (d *Deck) NeedsRefill() bool {
	return len(d.cards) < refillThreshold
}

// Refill shuffles a fresh generation on top of whatever remains.
func (d *Deck) Refill() {
	d.cards = append(d.cards, generate(d.rng)...)
}

func generate(rng *rand.Rand) []card.Card {
	cards := make([]card.Card, 0, 113)
	for _, cardColor := range color.Playable {
		for value := card.Zero; value <= card.Reverse; value++ {
			cards = append(cards,
				card.New(value, cardColor),
				card.New(value, cardColor),
			)
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards,
			card.New(card.DrawFour, color.Black),
			card.New(card.Rainbow, color.Black),
		)
	}
	if rng.Intn(100) == 49 {
		cards = append(cards, card.New(card.SwapHands, color.White))
	}
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return cards
}
