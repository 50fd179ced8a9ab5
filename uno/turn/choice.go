package turn

import (
	"time"

	"github.com/uno-arena/server/uno/card"
	"github.com/uno-arena/server/uno/card/color"
)

// Kind tags a choice request or response. The coordinator switches on the
// response kind instead of dispatching across per-choice widget types: a
// channel may legally answer a card request with a stray action submission
// from another player, and the coordinator decides what to do with it.
type Kind int

const (
	KindAction Kind = iota + 1
	KindCard
	KindColor
	KindSwapTarget
	KindConfirm
)

type ActionKind int

const (
	ActionPlay ActionKind = iota + 1
	ActionDraw
	ActionShowHand
	ActionDeclare
	ActionLeave
	ActionEndGame
)

var actionNames = map[ActionKind]string{
	ActionPlay:     "play",
	ActionDraw:     "draw",
	ActionShowHand: "hand",
	ActionDeclare:  "declare",
	ActionLeave:    "leave",
	ActionEndGame:  "end",
}

func (k ActionKind) String() string {
	return actionNames[k]
}

// CardOption is one selectable card; ineligible cards are shown disabled.
type CardOption struct {
	Card    card.Card
	Enabled bool
}

type TargetOption struct {
	ID   int64
	Name string
}

// Request describes one choice to offer. PlayerID is the addressee; action
// requests are table-wide and leave it zero. The deadline is absolute so
// channels resolve on first-of(submission, deadline) without owning any
// timeout policy.
type Request struct {
	Kind     Kind
	PlayerID int64
	Prompt   string
	Cards    []CardOption
	Colors   []*color.Color
	Targets  []TargetOption
	Deadline time.Time
}

// Response is a single submission. Kind says which field is meaningful.
type Response struct {
	Kind      Kind
	PlayerID  int64
	Action    ActionKind
	Card      card.Card
	Color     *color.Color
	TargetID  int64
	Confirmed bool
}

// Channel is the interaction surface to the seated players. Offer blocks
// until a submission arrives or the request deadline passes, in which case
// it returns consts.ErrorsTimeout. A returned response may be of a
// different kind than requested when a player submits something else while
// the offer is pending; the coordinator handles the stray and re-offers
// against the same deadline.
type Channel interface {
	Offer(req Request) (Response, error)
	Notify(playerID int64, text string)
	Broadcast(text string)
}
