package render

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"

	"github.com/uno-arena/server/uno/card"
	"github.com/uno-arena/server/uno/game"
	"github.com/uno-arena/server/uno/turn"
)

// Renderer turns structured turn outcomes into the text players see. The
// random source only picks taunt phrases.
type Renderer struct {
	rng     *rand.Rand
	phrases []string
}

func NewRenderer(rng *rand.Rand) *Renderer {
	return &Renderer{
		rng:     rng,
		phrases: []string{"dunked on", "trolled", "owned", "rekt"},
	}
}

func (r *Renderer) TurnSummary(match *game.Match, resolution turn.Resolution) string {
	actor := playerName(match, resolution.ActorID)
	var line string
	switch resolution.Kind {
	case turn.ResolutionLeft:
		line = fmt.Sprintf("%s left the game.", actor)
	case turn.ResolutionTimedOut:
		line = fmt.Sprintf("%s randomly drew %d for taking too long to move.", actor, resolution.TimeoutDraw)
	case turn.ResolutionDrew:
		line = fmt.Sprintf("%s drew a card.", actor)
	case turn.ResolutionHandFull:
		line = fmt.Sprintf("%s reached the card limit.", actor)
	case turn.ResolutionPlayed, turn.ResolutionDrewAndPlayed:
		drew := ""
		if resolution.Kind == turn.ResolutionDrewAndPlayed {
			drew = "drew and "
		}
		switch {
		case resolution.Card.IsPunishing():
			line = fmt.Sprintf("%s %s%s %s with %s.",
				actor, drew, r.phrase(), playerName(match, resolution.SkippedID), resolution.Card)
		case resolution.Card.IsSwapHands() && resolution.SwappedID != 0:
			line = fmt.Sprintf("%s %sswapped hands with %s using %s.",
				actor, drew, playerName(match, resolution.SwappedID), resolution.Card)
		default:
			line = fmt.Sprintf("%s %splayed %s.", actor, drew, resolution.Card)
		}
	}
	if resolution.PenaltyID != 0 {
		line = fmt.Sprintf("%s forgot to declare their last card and drew 2.\n%s",
			playerName(match, resolution.PenaltyID), line)
	}
	return line
}

func (r *Renderer) MatchEnd(match *game.Match, result turn.Result) string {
	switch result.Reason {
	case turn.EndReasonWon:
		var drawn, played, skipped int
		for _, player := range match.Players() {
			drawn += player.DrawnCount
			played += player.PlayedCount
			skipped += player.SkippedCount
		}
		buf := bytes.Buffer{}
		buf.WriteString(fmt.Sprintf("%s wins!\n", playerName(match, result.WinnerID)))
		buf.WriteString(fmt.Sprintf("Played cards: %d\n", played))
		buf.WriteString(fmt.Sprintf("Cards drawn: %d\n", drawn))
		buf.WriteString(fmt.Sprintf("Turns skipped: %d\n", skipped))
		return buf.String()
	case turn.EndReasonHost:
		return "The game was ended by the host.\n"
	case turn.EndReasonTooFewPlayers:
		return "The game was ended as there were not enough players remaining.\n"
	case turn.EndReasonInactivity:
		return "Game is inactive, ending the game.\n"
	}
	return "Game over.\n"
}

// TableStatus is the between-turn board: turn order with hand counts, the
// top of the discard pile and who is up.
func TableStatus(match *game.Match) string {
	buf := bytes.Buffer{}
	buf.WriteString("Turn order:\n")
	for index, playerID := range match.Order() {
		player := match.Player(playerID)
		buf.WriteString(fmt.Sprintf("%d. %s (%d)\n", index+1, player.Name, player.HandSize()))
	}
	buf.WriteString(fmt.Sprintf("Current card: %s\n", match.TopCard()))
	buf.WriteString(fmt.Sprintf("Current turn: %s\n", playerName(match, match.CurrentID)))
	buf.WriteString(fmt.Sprintf("Next turn: %s\n", playerName(match, match.NextID)))
	return buf.String()
}

// HandString lists a hand on one line.
func HandString(cards []card.Card) string {
	parts := make([]string, 0, len(cards))
	for _, handCard := range cards {
		parts = append(parts, handCard.String())
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) phrase() string {
	return r.phrases[r.rng.Intn(len(r.phrases))]
}

func playerName(match *game.Match, playerID int64) string {
	if player := match.Player(playerID); player != nil {
		return player.Name
	}
	return fmt.Sprintf("player %d", playerID)
}
