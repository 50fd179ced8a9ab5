package game_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uno-arena/server/uno/card"
	"github.com/uno-arena/server/uno/card/color"
	"github.com/uno-arena/server/uno/game"
)

func TestHandKeepsInsertionOrder(t *testing.T) {
	hand := game.NewHand()
	hand.AddCards([]card.Card{
		card.New(card.Seven, color.Blue),
		card.New(card.Block, color.Red),
	})
	hand.AddCards([]card.Card{card.New(card.Two, color.Green)})

	require.Equal(t, []card.Card{
		card.New(card.Seven, color.Blue),
		card.New(card.Block, color.Red),
		card.New(card.Two, color.Green),
	}, hand.Cards())
}

func TestHandRemoveCard(t *testing.T) {
	hand := game.NewHand()
	hand.AddCards([]card.Card{
		card.New(card.Seven, color.Blue),
		card.New(card.Seven, color.Blue),
		card.New(card.Two, color.Green),
	})

	require.True(t, hand.RemoveCard(card.New(card.Seven, color.Blue)))
	require.Equal(t, 2, hand.Size())
	require.True(t, hand.Contains(card.New(card.Seven, color.Blue)))

	require.False(t, hand.RemoveCard(card.New(card.Nine, color.Red)))
	require.Equal(t, 2, hand.Size())
}

func TestHandEmpty(t *testing.T) {
	hand := game.NewHand()
	require.True(t, hand.Empty())
	hand.AddCards([]card.Card{card.New(card.Two, color.Green)})
	require.False(t, hand.Empty())
	hand.RemoveCard(card.New(card.Two, color.Green))
	require.True(t, hand.Empty())
}

func TestHandCardsReturnsCopy(t *testing.T) {
	hand := game.NewHand()
	hand.AddCards([]card.Card{card.New(card.Two, color.Green)})
	cards := hand.Cards()
	cards[0] = card.New(card.Nine, color.Red)
	require.True(t, hand.Contains(card.New(card.Two, color.Green)))
}
