package turn

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ratel-online/core/log"
	"github.com/uno-arena/server/consts"
	"github.com/uno-arena/server/uno/card"
	"github.com/uno-arena/server/uno/card/color"
	"github.com/uno-arena/server/uno/event"
	"github.com/uno-arena/server/uno/game"
	"github.com/uno-arena/server/uno/stats"
)

type Config struct {
	TurnTimeout    time.Duration
	ChoiceTimeout  time.Duration
	ConfirmTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		TurnTimeout:    consts.TurnTimeout,
		ChoiceTimeout:  consts.ChoiceTimeout,
		ConfirmTimeout: consts.ConfirmTimeout,
	}
}

// Clock supplies deadlines; tests inject a fixed one so no wait in the
// coordinator depends on the wall clock.
type Clock func() time.Time

// Coordinator drives one match to completion. It owns the match state for
// its whole lifetime and never computes two turns concurrently, so the only
// lock it needs is the in-progress flag that serializes player submissions.
type Coordinator struct {
	match     *game.Match
	channel   Channel
	presenter Presenter
	store     stats.Store
	cfg       Config
	now       Clock
	rng       *rand.Rand

	turn       int
	inProgress bool
}

func NewCoordinator(match *game.Match, channel Channel, presenter Presenter, store stats.Store, cfg Config, rng *rand.Rand) *Coordinator {
	return &Coordinator{
		match:     match,
		channel:   channel,
		presenter: presenter,
		store:     store,
		cfg:       cfg,
		now:       time.Now,
		rng:       rng,
		turn:      1,
	}
}

func (c *Coordinator) WithClock(now Clock) *Coordinator {
	c.now = now
	return c
}

// Run plays turns until a terminal condition, publishes the stats deltas
// and reports how the match ended. Stats failures are logged and swallowed;
// they never roll back a resolution.
func (c *Coordinator) Run() Result {
	consecutiveTimeouts := 0
	for {
		resolution := c.playTurn()
		switch resolution.Kind {
		case ResolutionHostEnded:
			return c.finish(Result{Reason: EndReasonHost})
		case ResolutionTooFewPlayers:
			return c.finish(Result{Reason: EndReasonTooFewPlayers})
		}
		if winnerID, won := c.match.Winner(); won {
			return c.finish(Result{Reason: EndReasonWon, WinnerID: winnerID})
		}
		if resolution.Kind == ResolutionTimedOut {
			consecutiveTimeouts++
			if consecutiveTimeouts > c.match.PlayerCount()+1 {
				return c.finish(Result{Reason: EndReasonInactivity})
			}
		} else {
			consecutiveTimeouts = 0
		}

		var leaverID int64
		if resolution.Kind == ResolutionLeft {
			leaverID = resolution.ActorID
		}
		if leaverID != 0 && c.match.PendingDeclarerID == leaverID {
			c.match.PendingDeclarerID = 0
		}
		if pendingID := c.match.PendingDeclarerID; pendingID != 0 {
			pending := c.match.Player(pendingID)
			if !pending.Declared && c.match.PlayerCount() > 2 {
				c.match.ForceDraw(pending, 2)
				resolution.PenaltyID = pendingID
			}
			pending.Declared = false
			c.match.PendingDeclarerID = 0
		}
		if current := c.match.Player(c.match.CurrentID); current != nil && current.OneCardLeft() {
			c.match.PendingDeclarerID = current.ID
		}

		event.TurnResolved.Emit(event.TurnResolvedPayload{
			MatchID: c.match.ID,
			Turn:    c.turn,
			ActorID: resolution.ActorID,
			Summary: c.presenter.TurnSummary(c.match, resolution),
		})
		c.turn++
		c.match.AdvanceTurn()
		if leaverID != 0 {
			// Deferred removal: rotating past the leaver first keeps
			// the rotation intact.
			c.match.RemovePlayer(leaverID)
		}
	}
}

func (c *Coordinator) finish(result Result) Result {
	stats.Publish(c.store, c.match.Players(), result.WinnerID)
	event.MatchEnded.Emit(event.MatchEndedPayload{
		MatchID:  c.match.ID,
		WinnerID: result.WinnerID,
		Reason:   result.Reason.String(),
		Summary:  c.presenter.MatchEnd(c.match, result),
	})
	return result
}

// playTurn resolves a single turn. The turn deadline is fixed once; failed
// play attempts return to the action offer against the same deadline.
func (c *Coordinator) playTurn() Resolution {
	current := c.match.Player(c.match.CurrentID)
	deadline := c.now().Add(c.cfg.TurnTimeout)
	c.inProgress = false
	for {
		response, err := c.channel.Offer(Request{
			Kind:     KindAction,
			Prompt:   fmt.Sprintf("%s's turn.", current.Name),
			Deadline: deadline,
		})
		if err != nil {
			if err != consts.ErrorsTimeout {
				// A broken channel behaves like an unanswered turn;
				// the inactivity counter ends the match soon after.
				log.Error(err)
			}
			amount := c.rng.Intn(3) + 2
			c.match.ForceDraw(current, amount)
			return Resolution{Kind: ResolutionTimedOut, ActorID: current.ID, TimeoutDraw: amount}
		}
		if response.Kind != KindAction {
			continue
		}
		if resolution, done := c.handleAction(current, response); done {
			return resolution
		}
	}
}

func (c *Coordinator) handleAction(current *game.Player, response Response) (Resolution, bool) {
	player := c.match.Player(response.PlayerID)
	if player == nil {
		c.channel.Notify(response.PlayerID, "You are not in the game.")
		return Resolution{}, false
	}
	switch response.Action {
	case ActionShowHand:
		c.showHand(player)
		return Resolution{}, false
	case ActionDeclare:
		c.handleDeclare(player)
		return Resolution{}, false
	case ActionLeave:
		return c.handleLeave(player)
	case ActionEndGame:
		return c.handleEndGame(player)
	case ActionPlay:
		if player.ID != current.ID {
			c.channel.Notify(player.ID, "Please wait for your turn.")
			return Resolution{}, false
		}
		return c.chained(func() (Resolution, bool) { return c.handlePlay(current) })
	case ActionDraw:
		if player.ID != current.ID {
			c.channel.Notify(player.ID, "Please wait for your turn.")
			return Resolution{}, false
		}
		return c.handleDraw(current)
	}
	c.channel.Notify(player.ID, consts.ErrorsInputInvalid.Msg)
	return Resolution{}, false
}

// chained runs a multi-step choice with the in-progress lock held, so a
// duplicate submission gets a busy notice instead of racing two
// resolutions.
func (c *Coordinator) chained(step func() (Resolution, bool)) (Resolution, bool) {
	c.inProgress = true
	defer func() { c.inProgress = false }()
	return step()
}

func (c *Coordinator) handlePlay(current *game.Player) (Resolution, bool) {
	topCard := c.match.TopCard()
	if !game.HasEligibleCard(current, topCard) {
		c.channel.Notify(current.ID, "You do not have any eligible cards. Drawing a card...")
		return c.drawAndPlay(current)
	}
	chosenCard, ok := c.chooseCard(current, cardOptions(current.Hand(), topCard))
	if !ok {
		c.channel.Notify(current.ID, "You took too long. Press play again.")
		return Resolution{}, false
	}
	var swapTargetID int64
	if chosenCard.IsSwapHands() {
		targetID, picked := c.chooseSwapTarget(current)
		if !picked {
			c.channel.Notify(current.ID, "You took too long. Press play again.")
			return Resolution{}, false
		}
		swapTargetID = targetID
	}
	if chosenCard.IsWildcard() {
		chosenColor, picked := c.chooseColor(current)
		if !picked {
			c.channel.Notify(current.ID, "You took too long. Press play again.")
			return Resolution{}, false
		}
		chosenCard = chosenCard.WithColor(chosenColor)
	}
	skippedID := c.match.PlayCard(current, chosenCard, swapTargetID)
	return Resolution{
		Kind:      ResolutionPlayed,
		ActorID:   current.ID,
		Card:      chosenCard,
		SkippedID: skippedID,
		SwappedID: swapTargetID,
	}, true
}

// drawAndPlay is the fast path for a player with no eligible card: draw
// one and either end the turn on it or chain straight into playing it.
// Sub-choice timeouts abandon the play but the drawn card stays in hand.
func (c *Coordinator) drawAndPlay(current *game.Player) (Resolution, bool) {
	drawnCard, drew := c.match.DrawCard(current)
	if !drew {
		c.channel.Notify(current.ID, "You have the maximum amount of cards.")
		return Resolution{Kind: ResolutionHandFull, ActorID: current.ID}, true
	}
	if !game.Eligible(drawnCard, c.match.TopCard()) {
		c.channel.Notify(current.ID, fmt.Sprintf("You drew %s. Skipping your turn.", drawnCard))
		return Resolution{Kind: ResolutionDrew, ActorID: current.ID, Card: drawnCard}, true
	}
	playedCard := drawnCard
	var swapTargetID int64
	if playedCard.IsSwapHands() {
		targetID, picked := c.chooseSwapTarget(current)
		if !picked {
			c.channel.Notify(current.ID, "You took too long. Press play again.")
			return Resolution{}, false
		}
		swapTargetID = targetID
	}
	if playedCard.IsWildcard() {
		chosenColor, picked := c.chooseColor(current)
		if !picked {
			c.channel.Notify(current.ID, "You took too long. Press play again.")
			return Resolution{}, false
		}
		playedCard = playedCard.WithColor(chosenColor)
	}
	skippedID := c.match.PlayCard(current, playedCard, swapTargetID)
	c.channel.Notify(current.ID, fmt.Sprintf("You drew and played %s.", playedCard))
	return Resolution{
		Kind:      ResolutionDrewAndPlayed,
		ActorID:   current.ID,
		Card:      playedCard,
		SkippedID: skippedID,
		SwappedID: swapTargetID,
	}, true
}

func (c *Coordinator) handleDraw(current *game.Player) (Resolution, bool) {
	drawnCard, drew := c.match.DrawCard(current)
	if !drew {
		if game.HasEligibleCard(current, c.match.TopCard()) {
			c.channel.Notify(current.ID, "You have the maximum amount of cards. Play one.")
			return Resolution{}, false
		}
		c.channel.Notify(current.ID, "You have the maximum amount of cards and no playable cards, skipping your turn.")
		return Resolution{Kind: ResolutionHandFull, ActorID: current.ID}, true
	}
	c.channel.Notify(current.ID, fmt.Sprintf("You drew %s. Skipping your turn.", drawnCard))
	return Resolution{Kind: ResolutionDrew, ActorID: current.ID, Card: drawnCard}, true
}

func (c *Coordinator) handleDeclare(player *game.Player) {
	if player.ID == c.match.CurrentID && c.match.PlayerCount() > 2 {
		c.channel.Notify(player.ID, "You cannot declare on your own turn.")
		return
	}
	if !player.OneCardLeft() {
		c.channel.Notify(player.ID, "You are not down to one card.")
		return
	}
	if player.Declared {
		c.channel.Notify(player.ID, "You have already declared.")
		return
	}
	player.Declared = true
	event.LastCardDeclared.Emit(event.LastCardDeclaredPayload{
		MatchID:    c.match.ID,
		PlayerID:   player.ID,
		PlayerName: player.Name,
	})
	c.channel.Broadcast(fmt.Sprintf("%s declared their last card!", player.Name))
}

func (c *Coordinator) handleLeave(player *game.Player) (Resolution, bool) {
	return c.chained(func() (Resolution, bool) {
		prompt := "Are you sure you want to leave the game?"
		if c.match.PlayerCount() <= 2 {
			prompt = "The game will end if you leave. Are you sure?"
		}
		if !c.confirm(player.ID, prompt) {
			return Resolution{}, false
		}
		if c.match.PlayerCount() <= 2 {
			return Resolution{Kind: ResolutionTooFewPlayers, ActorID: player.ID}, true
		}
		if player.ID == c.match.CurrentID {
			// The turn resolves as "left"; removal happens after the
			// rotation has moved past them.
			return Resolution{Kind: ResolutionLeft, ActorID: player.ID}, true
		}
		c.match.RemovePlayer(player.ID)
		c.channel.Broadcast(fmt.Sprintf("%s left the game.", player.Name))
		return Resolution{}, false
	})
}

func (c *Coordinator) handleEndGame(player *game.Player) (Resolution, bool) {
	if player.ID != c.match.HostID {
		c.channel.Notify(player.ID, "Only the host can end the game.")
		return Resolution{}, false
	}
	return c.chained(func() (Resolution, bool) {
		if !c.confirm(player.ID, "Are you sure you want to end the game?") {
			return Resolution{}, false
		}
		return Resolution{Kind: ResolutionHostEnded, ActorID: player.ID}, true
	})
}

func (c *Coordinator) chooseCard(current *game.Player, options []CardOption) (card.Card, bool) {
	request := Request{
		Kind:     KindCard,
		PlayerID: current.ID,
		Prompt:   "Select a card to play.",
		Cards:    options,
		Deadline: c.now().Add(c.cfg.ChoiceTimeout),
	}
	for {
		response, err := c.channel.Offer(request)
		if err != nil {
			return card.Card{}, false
		}
		if response.Kind != KindCard || response.PlayerID != current.ID {
			c.rejectStray(response)
			continue
		}
		enabled := false
		for _, option := range options {
			if option.Enabled && option.Card.Equal(response.Card) {
				enabled = true
				break
			}
		}
		if !enabled {
			c.channel.Notify(current.ID, fmt.Sprintf("%s cannot be played.", response.Card))
			continue
		}
		return response.Card, true
	}
}

func (c *Coordinator) chooseColor(current *game.Player) (*color.Color, bool) {
	request := Request{
		Kind:     KindColor,
		PlayerID: current.ID,
		Prompt:   "Pick a new color.",
		Colors:   color.Playable,
		Deadline: c.now().Add(c.cfg.ChoiceTimeout),
	}
	for {
		response, err := c.channel.Offer(request)
		if err != nil {
			return nil, false
		}
		if response.Kind != KindColor || response.PlayerID != current.ID {
			c.rejectStray(response)
			continue
		}
		if response.Color == nil || response.Color.Wild() {
			c.channel.Notify(current.ID, consts.ErrorsInputInvalid.Msg)
			continue
		}
		c.channel.Notify(current.ID, fmt.Sprintf("Picked %s.", response.Color))
		return response.Color, true
	}
}

func (c *Coordinator) chooseSwapTarget(current *game.Player) (int64, bool) {
	targets := make([]TargetOption, 0, c.match.PlayerCount()-1)
	for _, player := range c.match.Players() {
		if player.ID != current.ID {
			targets = append(targets, TargetOption{ID: player.ID, Name: player.Name})
		}
	}
	request := Request{
		Kind:     KindSwapTarget,
		PlayerID: current.ID,
		Prompt:   "Pick a player to swap hands with.",
		Targets:  targets,
		Deadline: c.now().Add(c.cfg.ChoiceTimeout),
	}
	for {
		response, err := c.channel.Offer(request)
		if err != nil {
			return 0, false
		}
		if response.Kind != KindSwapTarget || response.PlayerID != current.ID {
			c.rejectStray(response)
			continue
		}
		for _, target := range targets {
			if target.ID == response.TargetID {
				c.channel.Notify(current.ID, fmt.Sprintf("Picked %s.", target.Name))
				return target.ID, true
			}
		}
		c.channel.Notify(current.ID, consts.ErrorsInputInvalid.Msg)
	}
}

func (c *Coordinator) confirm(playerID int64, prompt string) bool {
	request := Request{
		Kind:     KindConfirm,
		PlayerID: playerID,
		Prompt:   prompt,
		Deadline: c.now().Add(c.cfg.ConfirmTimeout),
	}
	for {
		response, err := c.channel.Offer(request)
		if err != nil {
			return false
		}
		if response.Kind != KindConfirm || response.PlayerID != playerID {
			c.rejectStray(response)
			continue
		}
		return response.Confirmed
	}
}

// rejectStray answers submissions that arrive while another choice is
// pending. Turn-consuming actions get a non-fatal busy notice; read-only
// actions are served inline.
func (c *Coordinator) rejectStray(response Response) {
	if response.Kind != KindAction {
		return
	}
	player := c.match.Player(response.PlayerID)
	if player == nil {
		return
	}
	switch response.Action {
	case ActionShowHand:
		c.showHand(player)
	case ActionDeclare:
		c.handleDeclare(player)
	default:
		if c.inProgress {
			c.channel.Notify(player.ID, "Play in progress. Try again in a moment.")
		} else {
			c.channel.Notify(player.ID, "Please wait for your turn.")
		}
	}
}

func (c *Coordinator) showHand(player *game.Player) {
	handCards := player.Hand()
	parts := make([]string, 0, len(handCards))
	for _, handCard := range handCards {
		parts = append(parts, handCard.String())
	}
	c.channel.Notify(player.ID, "Your hand: "+strings.Join(parts, " "))
}

func cardOptions(hand []card.Card, topCard card.Card) []CardOption {
	options := make([]CardOption, 0, len(hand))
	for _, handCard := range hand {
		options = append(options, CardOption{
			Card:    handCard,
			Enabled: game.Eligible(handCard, topCard),
		})
	}
	return options
}
