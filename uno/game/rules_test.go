package game_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uno-arena/server/uno/card"
	"github.com/uno-arena/server/uno/card/color"
	"github.com/uno-arena/server/uno/game"
)

func TestEligible(t *testing.T) {
	scenarios := []struct {
		description    string
		candidateCard  card.Card
		topCard        card.Card
		expectedResult bool
	}{
		{
			description:    "rainbow_is_always_playable",
			candidateCard:  card.New(card.Rainbow, color.Black),
			topCard:        card.New(card.Seven, color.Blue),
			expectedResult: true,
		},
		{
			description:    "draw_four_is_always_playable",
			candidateCard:  card.New(card.DrawFour, color.Black),
			topCard:        card.New(card.Seven, color.Blue),
			expectedResult: true,
		},
		{
			description:    "swap_hands_is_always_playable",
			candidateCard:  card.New(card.SwapHands, color.White),
			topCard:        card.New(card.Seven, color.Blue),
			expectedResult: true,
		},
		{
			description:    "anything_on_wild_colored_top",
			candidateCard:  card.New(card.Five, color.Red),
			topCard:        card.New(card.Rainbow, color.Black),
			expectedResult: true,
		},
		{
			description:    "number_cards_with_same_color",
			candidateCard:  card.New(card.Five, color.Blue),
			topCard:        card.New(card.Seven, color.Blue),
			expectedResult: true,
		},
		{
			description:    "number_cards_with_same_number",
			candidateCard:  card.New(card.Seven, color.Red),
			topCard:        card.New(card.Seven, color.Blue),
			expectedResult: true,
		},
		{
			description:    "number_cards_with_different_color_and_number",
			candidateCard:  card.New(card.Five, color.Red),
			topCard:        card.New(card.Seven, color.Blue),
			expectedResult: false,
		},
		{
			description:    "action_cards_with_same_value",
			candidateCard:  card.New(card.DrawTwo, color.Red),
			topCard:        card.New(card.DrawTwo, color.Blue),
			expectedResult: true,
		},
		{
			description:    "action_cards_with_different_color_and_value",
			candidateCard:  card.New(card.Reverse, color.Red),
			topCard:        card.New(card.DrawTwo, color.Blue),
			expectedResult: false,
		},
		{
			description:    "recolored_wildcard_matches_its_new_color",
			candidateCard:  card.New(card.Seven, color.Blue),
			topCard:        card.New(card.Rainbow, color.Black).WithColor(color.Blue),
			expectedResult: true,
		},
		{
			description:    "recolored_wildcard_rejects_other_colors",
			candidateCard:  card.New(card.Seven, color.Red),
			topCard:        card.New(card.Rainbow, color.Black).WithColor(color.Blue),
			expectedResult: false,
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.description, func(t *testing.T) {
			result := game.Eligible(scenario.candidateCard, scenario.topCard)
			require.Equal(t, scenario.expectedResult, result)
		})
	}
}

func TestHasEligibleCard(t *testing.T) {
	topCard := card.New(card.Seven, color.Blue)

	t.Run("empty_hand", func(t *testing.T) {
		player := game.NewPlayer(1, "a")
		require.False(t, game.HasEligibleCard(player, topCard))
	})
	t.Run("any_eligible_card_counts", func(t *testing.T) {
		player := game.NewPlayer(1, "a")
		player.AddCards([]card.Card{
			card.New(card.Two, color.Red),
			card.New(card.Seven, color.Green),
		})
		require.True(t, game.HasEligibleCard(player, topCard))
	})
	t.Run("wildcard_counts_alongside_other_cards", func(t *testing.T) {
		player := game.NewPlayer(1, "a")
		player.AddCards([]card.Card{
			card.New(card.Two, color.Red),
			card.New(card.Rainbow, color.Black),
		})
		require.True(t, game.HasEligibleCard(player, topCard))
	})
	t.Run("lone_wildcard_is_not_auto_playable", func(t *testing.T) {
		player := game.NewPlayer(1, "a")
		player.AddCards([]card.Card{card.New(card.DrawFour, color.Black)})
		require.False(t, game.HasEligibleCard(player, topCard))
	})
	t.Run("lone_matching_card_is_playable", func(t *testing.T) {
		player := game.NewPlayer(1, "a")
		player.AddCards([]card.Card{card.New(card.Seven, color.Red)})
		require.True(t, game.HasEligibleCard(player, topCard))
	})
	t.Run("no_eligible_cards", func(t *testing.T) {
		player := game.NewPlayer(1, "a")
		player.AddCards([]card.Card{
			card.New(card.Two, color.Red),
			card.New(card.Three, color.Green),
		})
		require.False(t, game.HasEligibleCard(player, topCard))
	})
}

func TestEligibleCards(t *testing.T) {
	topCard := card.New(card.Seven, color.Blue)
	player := game.NewPlayer(1, "a")
	player.AddCards([]card.Card{
		card.New(card.Two, color.Red),
		card.New(card.Seven, color.Green),
		card.New(card.Block, color.Blue),
		card.New(card.Rainbow, color.Black),
	})

	require.Equal(t, []card.Card{
		card.New(card.Seven, color.Green),
		card.New(card.Block, color.Blue),
		card.New(card.Rainbow, color.Black),
	}, game.EligibleCards(player, topCard))
}
