package turn

import (
	"github.com/uno-arena/server/uno/card"
	"github.com/uno-arena/server/uno/game"
)

type ResolutionKind int

const (
	// ResolutionPlayed: the current player picked and played a card.
	ResolutionPlayed ResolutionKind = iota + 1
	// ResolutionDrew: a drawn card ended the turn unplayed.
	ResolutionDrew
	// ResolutionDrewAndPlayed: the auto-draw fast path chained into a play.
	ResolutionDrewAndPlayed
	// ResolutionHandFull: nothing drawable and nothing playable.
	ResolutionHandFull
	// ResolutionLeft: the current player confirmed leaving mid-turn.
	ResolutionLeft
	// ResolutionTimedOut: nobody acted before the turn deadline.
	ResolutionTimedOut
	// ResolutionHostEnded and ResolutionTooFewPlayers end the whole match.
	ResolutionHostEnded
	ResolutionTooFewPlayers
)

// Resolution is the structured outcome of one turn, handed to the
// presenter; rendering is opaque to the coordinator.
type Resolution struct {
	Kind        ResolutionKind
	ActorID     int64
	Card        card.Card
	SkippedID   int64
	SwappedID   int64
	TimeoutDraw int
	// PenaltyID is set when the declare pre-check forced two cards onto
	// a player before this resolution was announced.
	PenaltyID int64
}

type EndReason int

const (
	EndReasonWon EndReason = iota + 1
	EndReasonHost
	EndReasonTooFewPlayers
	EndReasonInactivity
)

var endReasonNames = map[EndReason]string{
	EndReasonWon:           "won",
	EndReasonHost:          "ended by host",
	EndReasonTooFewPlayers: "not enough players",
	EndReasonInactivity:    "inactive",
}

func (r EndReason) String() string {
	return endReasonNames[r]
}

type Result struct {
	Reason   EndReason
	WinnerID int64
}

// Presenter renders structured outcomes into player-readable text.
type Presenter interface {
	TurnSummary(match *game.Match, resolution Resolution) string
	MatchEnd(match *game.Match, result Result) string
}
