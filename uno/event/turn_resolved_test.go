package event_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uno-arena/server/uno/event"
)

func TestTurnResolved(t *testing.T) {
	listenerOne := event.NewDummyListener()
	listenerTwo := event.NewDummyListener()

	event.TurnResolved.AddListener(listenerOne)
	event.TurnResolved.AddListener(listenerTwo)

	payloads := []event.TurnResolvedPayload{
		{MatchID: 1, Turn: 1, ActorID: 10, Summary: "someone played a card"},
		{MatchID: 1, Turn: 2, ActorID: 11, Summary: "somebody drew a card"},
	}

	for _, payload := range payloads {
		event.TurnResolved.Emit(payload)
	}

	require.ElementsMatch(t, payloads, listenerOne.ReceivedPayloads())
	require.ElementsMatch(t, payloads, listenerTwo.ReceivedPayloads())
}

func TestMatchEnded(t *testing.T) {
	listener := event.NewDummyListener()
	event.MatchEnded.AddListener(listener)

	payload := event.MatchEndedPayload{MatchID: 2, WinnerID: 10, Reason: "won", Summary: "someone wins"}
	event.MatchEnded.Emit(payload)

	require.ElementsMatch(t, []event.MatchEndedPayload{payload}, listener.ReceivedPayloads())
}

func TestLastCardDeclared(t *testing.T) {
	listener := event.NewDummyListener()
	event.LastCardDeclared.AddListener(listener)

	payload := event.LastCardDeclaredPayload{MatchID: 3, PlayerID: 10, PlayerName: "someone"}
	event.LastCardDeclared.Emit(payload)

	require.ElementsMatch(t, []event.LastCardDeclaredPayload{payload}, listener.ReceivedPayloads())
}
