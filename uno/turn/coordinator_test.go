package turn_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uno-arena/server/consts"
	"github.com/uno-arena/server/render"
	"github.com/uno-arena/server/uno/card"
	"github.com/uno-arena/server/uno/card/color"
	"github.com/uno-arena/server/uno/event"
	"github.com/uno-arena/server/uno/game"
	"github.com/uno-arena/server/uno/stats"
	"github.com/uno-arena/server/uno/turn"
)

// step is one scripted Offer exchange. A zero expect skips the kind check;
// an exhausted script times out every remaining offer, so every match ends
// through the inactivity abort at the latest.
type step struct {
	expect   turn.Kind
	response turn.Response
	err      error
}

type scriptedChannel struct {
	t          *testing.T
	steps      []step
	notices    map[int64][]string
	broadcasts []string
}

func newScriptedChannel(t *testing.T, steps ...step) *scriptedChannel {
	return &scriptedChannel{t: t, steps: steps, notices: map[int64][]string{}}
}

func (ch *scriptedChannel) Offer(req turn.Request) (turn.Response, error) {
	require.False(ch.t, req.Deadline.IsZero())
	if len(ch.steps) == 0 {
		return turn.Response{}, consts.ErrorsTimeout
	}
	next := ch.steps[0]
	ch.steps = ch.steps[1:]
	if next.expect != 0 {
		require.Equal(ch.t, next.expect, req.Kind)
	}
	if next.err != nil {
		return turn.Response{}, next.err
	}
	return next.response, nil
}

func (ch *scriptedChannel) Notify(playerID int64, text string) {
	ch.notices[playerID] = append(ch.notices[playerID], text)
}

func (ch *scriptedChannel) Broadcast(text string) {
	ch.broadcasts = append(ch.broadcasts, text)
}

func (ch *scriptedChannel) noticed(playerID int64, fragment string) bool {
	for _, notice := range ch.notices[playerID] {
		if strings.Contains(notice, fragment) {
			return true
		}
	}
	return false
}

func (ch *scriptedChannel) broadcasted(fragment string) bool {
	for _, broadcast := range ch.broadcasts {
		if strings.Contains(broadcast, fragment) {
			return true
		}
	}
	return false
}

var matchIDs int64 = 100

func testMatch(playerCount int) *game.Match {
	matchIDs++
	match := game.NewMatch(matchIDs, 1, 7, rand.New(rand.NewSource(11)))
	for i := 1; i <= playerCount; i++ {
		match.AddPlayer(game.NewPlayer(int64(i), fmt.Sprintf("player%d", i)))
	}
	match.Start()
	return match
}

func testCoordinator(match *game.Match, channel turn.Channel, store stats.Store) *turn.Coordinator {
	rng := rand.New(rand.NewSource(11))
	now := time.Unix(1700000000, 0)
	return turn.NewCoordinator(match, channel, render.NewRenderer(rng), store, turn.DefaultConfig(), rng).
		WithClock(func() time.Time { return now })
}

func setHand(player *game.Player, cards ...card.Card) {
	for _, handCard := range player.Hand() {
		player.RemoveCard(handCard)
	}
	player.AddCards(cards)
}

// eligibleCard picks a color-matching non-special card for the current top.
func eligibleCard(match *game.Match) card.Card {
	return card.New(card.Five, match.TopCard().Color)
}

// ineligibleCard picks a card that matches the top in neither color nor value.
func ineligibleCard(match *game.Match) card.Card {
	for _, candidateColor := range color.Playable {
		if candidateColor != match.TopCard().Color {
			if match.TopCard().Value != card.Two {
				return card.New(card.Two, candidateColor)
			}
			return card.New(card.Three, candidateColor)
		}
	}
	panic("unreachable")
}

func summaries(listener *event.DummyListener, matchID int64) []string {
	var collected []string
	for _, payload := range listener.ReceivedPayloads() {
		if resolved, ok := payload.(event.TurnResolvedPayload); ok && resolved.MatchID == matchID {
			collected = append(collected, resolved.Summary)
		}
	}
	return collected
}

func containsFragment(lines []string, fragment string) bool {
	for _, line := range lines {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

func action(playerID int64, kind turn.ActionKind) turn.Response {
	return turn.Response{Kind: turn.KindAction, PlayerID: playerID, Action: kind}
}

func TestHostEndsMatch(t *testing.T) {
	match := testMatch(3)
	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(match.HostID, turn.ActionEndGame)},
		step{expect: turn.KindConfirm, response: turn.Response{Kind: turn.KindConfirm, PlayerID: match.HostID, Confirmed: true}},
	)
	store := stats.NewMemoryStore()

	result := testCoordinator(match, channel, store).Run()

	require.Equal(t, turn.EndReasonHost, result.Reason)
	require.Zero(t, result.WinnerID)
	for _, player := range match.Players() {
		record, found := store.Get(player.ID)
		require.True(t, found)
		require.Equal(t, 1, record.Played)
		require.Zero(t, record.Wins)
	}
}

func TestHostEndDeclined(t *testing.T) {
	match := testMatch(3)
	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(match.HostID, turn.ActionEndGame)},
		step{expect: turn.KindConfirm, response: turn.Response{Kind: turn.KindConfirm, PlayerID: match.HostID, Confirmed: false}},
	)

	result := testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.Equal(t, turn.EndReasonInactivity, result.Reason)
	require.Equal(t, 3, match.PlayerCount())
}

func TestNonHostCannotEndMatch(t *testing.T) {
	match := testMatch(3)
	var nonHost int64
	for _, player := range match.Players() {
		if player.ID != match.HostID {
			nonHost = player.ID
			break
		}
	}
	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(nonHost, turn.ActionEndGame)},
	)

	result := testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.Equal(t, turn.EndReasonInactivity, result.Reason)
	require.True(t, channel.noticed(nonHost, "Only the host can end the game."))
}

func TestWinByPlayingLastCard(t *testing.T) {
	match := testMatch(3)
	current := match.Player(match.CurrentID)
	winningCard := eligibleCard(match)
	setHand(current, winningCard)

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionPlay)},
		step{expect: turn.KindCard, response: turn.Response{Kind: turn.KindCard, PlayerID: current.ID, Card: winningCard}},
	)
	store := stats.NewMemoryStore()

	result := testCoordinator(match, channel, store).Run()

	require.Equal(t, turn.EndReasonWon, result.Reason)
	require.Equal(t, current.ID, result.WinnerID)
	record, _ := store.Get(current.ID)
	require.Equal(t, 1, record.Wins)
}

func TestTurnTimeoutsEndInInactivityAbort(t *testing.T) {
	listener := event.NewDummyListener()
	event.TurnResolved.AddListener(listener)
	match := testMatch(3)
	channel := newScriptedChannel(t)

	result := testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.Equal(t, turn.EndReasonInactivity, result.Reason)
	// The abort fires on the turn after playerCount+1 consecutive timeouts.
	require.Len(t, summaries(listener, match.ID), 4)
	require.True(t, containsFragment(summaries(listener, match.ID), "for taking too long to move"))

	totalDrawn := 0
	for _, player := range match.Players() {
		totalDrawn += player.DrawnCount
	}
	// Every timed-out turn force-drew 2 to 4 cards on top of the deal.
	require.GreaterOrEqual(t, totalDrawn, 3*7+2*5)
	require.LessOrEqual(t, totalDrawn, 3*7+4*5)
}

func TestSubChoiceTimeoutReturnsToActionOffer(t *testing.T) {
	match := testMatch(3)
	current := match.Player(match.CurrentID)
	setHand(current, eligibleCard(match), eligibleCard(match))

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionPlay)},
		step{expect: turn.KindCard, err: consts.ErrorsTimeout},
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionDraw)},
	)

	result := testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.Equal(t, turn.EndReasonInactivity, result.Reason)
	require.True(t, channel.noticed(current.ID, "You took too long. Press play again."))
	require.True(t, channel.noticed(current.ID, "You drew"))
}

func TestStrayDuringChoiceGetsBusyNotice(t *testing.T) {
	match := testMatch(3)
	current := match.Player(match.CurrentID)
	other := match.NextID
	chosenCard := eligibleCard(match)
	setHand(current, chosenCard, ineligibleCard(match))

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionPlay)},
		step{expect: turn.KindCard, response: action(other, turn.ActionDraw)},
		step{expect: turn.KindCard, response: turn.Response{Kind: turn.KindCard, PlayerID: current.ID, Card: chosenCard}},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.True(t, channel.noticed(other, "Play in progress. Try again in a moment."))
	require.Equal(t, chosenCard, match.TopCard())
}

func TestOutOfTurnDrawRejected(t *testing.T) {
	match := testMatch(3)
	other := match.NextID

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(other, turn.ActionDraw)},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.True(t, channel.noticed(other, "Please wait for your turn."))
}

func TestIneligibleCardChoiceRejected(t *testing.T) {
	match := testMatch(3)
	current := match.Player(match.CurrentID)
	badCard := ineligibleCard(match)
	setHand(current, eligibleCard(match), badCard)

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionPlay)},
		step{expect: turn.KindCard, response: turn.Response{Kind: turn.KindCard, PlayerID: current.ID, Card: badCard}},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.True(t, channel.noticed(current.ID, "cannot be played."))
}

func TestDeclarePenalty(t *testing.T) {
	listener := event.NewDummyListener()
	event.TurnResolved.AddListener(listener)
	match := testMatch(4)
	current := match.Player(match.CurrentID)
	playedCard := eligibleCard(match)
	setHand(current, playedCard, ineligibleCard(match))

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionPlay)},
		step{expect: turn.KindCard, response: turn.Response{Kind: turn.KindCard, PlayerID: current.ID, Card: playedCard}},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.True(t, containsFragment(summaries(listener, match.ID), "forgot to declare their last card and drew 2"))
}

func TestDeclareAvoidsPenalty(t *testing.T) {
	listener := event.NewDummyListener()
	event.TurnResolved.AddListener(listener)
	match := testMatch(4)
	current := match.Player(match.CurrentID)
	playedCard := eligibleCard(match)
	setHand(current, playedCard, ineligibleCard(match))

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionPlay)},
		step{expect: turn.KindCard, response: turn.Response{Kind: turn.KindCard, PlayerID: current.ID, Card: playedCard}},
		// Declared off-turn while the next player's offer is pending.
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionDeclare)},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.True(t, channel.broadcasted("declared their last card!"))
	require.False(t, containsFragment(summaries(listener, match.ID), "forgot to declare"))
}

func TestDeclarePenaltyWaivedInTwoPlayerMatch(t *testing.T) {
	listener := event.NewDummyListener()
	event.TurnResolved.AddListener(listener)
	match := testMatch(2)
	current := match.Player(match.CurrentID)
	playedCard := eligibleCard(match)
	setHand(current, playedCard, ineligibleCard(match))

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionPlay)},
		step{expect: turn.KindCard, response: turn.Response{Kind: turn.KindCard, PlayerID: current.ID, Card: playedCard}},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.False(t, containsFragment(summaries(listener, match.ID), "forgot to declare"))
}

func TestDeclareRejectedWhenNotDownToOneCard(t *testing.T) {
	match := testMatch(3)
	other := match.NextID

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(other, turn.ActionDeclare)},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.True(t, channel.noticed(other, "You are not down to one card."))
}

func TestLeaveNonCurrentPlayerRemovedImmediately(t *testing.T) {
	match := testMatch(4)
	leaver := match.Order()[2]

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(leaver, turn.ActionLeave)},
		step{expect: turn.KindConfirm, response: turn.Response{Kind: turn.KindConfirm, PlayerID: leaver, Confirmed: true}},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.Equal(t, 3, match.PlayerCount())
	require.Nil(t, match.Player(leaver))
	require.True(t, channel.broadcasted("left the game."))
}

func TestLeaveAsCurrentIsDeferred(t *testing.T) {
	listener := event.NewDummyListener()
	event.TurnResolved.AddListener(listener)
	match := testMatch(4)
	leaver := match.CurrentID

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(leaver, turn.ActionLeave)},
		step{expect: turn.KindConfirm, response: turn.Response{Kind: turn.KindConfirm, PlayerID: leaver, Confirmed: true}},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.Equal(t, 3, match.PlayerCount())
	require.Nil(t, match.Player(leaver))
	require.True(t, containsFragment(summaries(listener, match.ID), "left the game."))
}

func TestLeaveDeclinedKeepsPlayer(t *testing.T) {
	match := testMatch(4)
	leaver := match.Order()[2]

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(leaver, turn.ActionLeave)},
		step{expect: turn.KindConfirm, response: turn.Response{Kind: turn.KindConfirm, PlayerID: leaver, Confirmed: false}},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.Equal(t, 4, match.PlayerCount())
	require.NotNil(t, match.Player(leaver))
}

func TestLeaveWithTwoPlayersEndsMatch(t *testing.T) {
	match := testMatch(2)
	leaver := match.CurrentID

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(leaver, turn.ActionLeave)},
		step{expect: turn.KindConfirm, response: turn.Response{Kind: turn.KindConfirm, PlayerID: leaver, Confirmed: true}},
	)

	result := testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.Equal(t, turn.EndReasonTooFewPlayers, result.Reason)
}

func TestDrawWithFullHandAndNoPlayableCards(t *testing.T) {
	listener := event.NewDummyListener()
	event.TurnResolved.AddListener(listener)
	match := testMatch(3)
	current := match.Player(match.CurrentID)
	fullHand := make([]card.Card, 0, game.MaxHandCards)
	for i := 0; i < game.MaxHandCards; i++ {
		fullHand = append(fullHand, ineligibleCard(match))
	}
	setHand(current, fullHand...)

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionDraw)},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.True(t, channel.noticed(current.ID, "You have the maximum amount of cards and no playable cards"))
	require.True(t, containsFragment(summaries(listener, match.ID), "reached the card limit."))
}

func TestDrawWithFullHandButPlayableCardRejected(t *testing.T) {
	match := testMatch(3)
	current := match.Player(match.CurrentID)
	fullHand := make([]card.Card, 0, game.MaxHandCards)
	fullHand = append(fullHand, eligibleCard(match))
	for i := 1; i < game.MaxHandCards; i++ {
		fullHand = append(fullHand, ineligibleCard(match))
	}
	setHand(current, fullHand...)

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionDraw)},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.True(t, channel.noticed(current.ID, "You have the maximum amount of cards. Play one."))
}

func TestPlayWithNoEligibleCardsAutoDraws(t *testing.T) {
	match := testMatch(3)
	current := match.Player(match.CurrentID)
	setHand(current, ineligibleCard(match), ineligibleCard(match))

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(current.ID, turn.ActionPlay)},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.True(t, channel.noticed(current.ID, "You do not have any eligible cards. Drawing a card..."))
}

func TestShowHandServedInline(t *testing.T) {
	match := testMatch(3)
	other := match.NextID

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(other, turn.ActionShowHand)},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.True(t, channel.noticed(other, "Your hand:"))
}

func TestUnknownSubmitterRejected(t *testing.T) {
	match := testMatch(3)

	channel := newScriptedChannel(t,
		step{expect: turn.KindAction, response: action(999, turn.ActionPlay)},
	)

	testCoordinator(match, channel, stats.NewMemoryStore()).Run()

	require.True(t, channel.noticed(999, "You are not in the game."))
}
