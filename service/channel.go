package service

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/uno-arena/server/consts"
	"github.com/uno-arena/server/uno/card/color"
	"github.com/uno-arena/server/uno/turn"
)

// submission is one raw line typed by a seated player. Parsing happens in
// the channel because the meaning of a line depends on what is being asked.
type submission struct {
	playerID int64
	text     string
}

const initialRune = 'A'

type runeSequence struct {
	currentRune rune
}

func (s *runeSequence) next() rune {
	if s.currentRune == 0 {
		s.currentRune = initialRune
	}
	currentRune := s.currentRune
	s.currentRune++
	return currentRune
}

var actionAliases = map[string]turn.ActionKind{
	"play":    turn.ActionPlay,
	"p":       turn.ActionPlay,
	"draw":    turn.ActionDraw,
	"d":       turn.ActionDraw,
	"hand":    turn.ActionShowHand,
	"h":       turn.ActionShowHand,
	"uno":     turn.ActionDeclare,
	"u":       turn.ActionDeclare,
	"declare": turn.ActionDeclare,
	"leave":   turn.ActionLeave,
	"l":       turn.ActionLeave,
	"end":     turn.ActionEndGame,
	"e":       turn.ActionEndGame,
}

var colorAliases = map[string]*color.Color{
	"red":    color.Red,
	"r":      color.Red,
	"blue":   color.Blue,
	"b":      color.Blue,
	"green":  color.Green,
	"g":      color.Green,
	"yellow": color.Yellow,
	"y":      color.Yellow,
}

// tableChannel adapts the table's wire to the coordinator's choice
// protocol. Offer resolves on first-of(parsed submission, deadline); a line
// that parses as an action while some other choice is pending still comes
// back as an action response, which is how submissions from the rest of the
// table reach the coordinator mid-choice.
type tableChannel struct {
	table *Table
}

func newTableChannel(table *Table) *tableChannel {
	return &tableChannel{table: table}
}

func (ch *tableChannel) Offer(req turn.Request) (turn.Response, error) {
	ch.prompt(req)
	for {
		select {
		case sub := <-ch.table.subs:
			if response, ok := ch.parse(req, sub); ok {
				return response, nil
			}
		case <-time.After(time.Until(req.Deadline)):
			return turn.Response{}, consts.ErrorsTimeout
		}
	}
}

func (ch *tableChannel) Notify(playerID int64, text string) {
	if player := getPlayer(playerID); player != nil {
		_ = player.WriteString(text + "\n")
	}
}

func (ch *tableChannel) Broadcast(text string) {
	Broadcast(ch.table.ID, text+"\n")
}

func (ch *tableChannel) prompt(req turn.Request) {
	switch req.Kind {
	case turn.KindAction:
		buf := bytes.Buffer{}
		buf.WriteString(req.Prompt + "\n")
		buf.WriteString("Options: (p)lay, (d)raw, (h)and, (u)no, (l)eave, (e)nd\n")
		Broadcast(ch.table.ID, buf.String())
	case turn.KindCard:
		buf := bytes.Buffer{}
		buf.WriteString(req.Prompt + "\n")
		sequence := runeSequence{}
		for _, option := range req.Cards {
			label := string(sequence.next())
			if option.Enabled {
				buf.WriteString(fmt.Sprintf("%s (enter %s)\n", option.Card, label))
			} else {
				buf.WriteString(fmt.Sprintf("%s (not playable)\n", option.Card))
			}
		}
		ch.Notify(req.PlayerID, strings.TrimRight(buf.String(), "\n"))
	case turn.KindColor:
		parts := make([]string, 0, len(req.Colors))
		for _, chosenColor := range req.Colors {
			parts = append(parts, chosenColor.String())
		}
		ch.Notify(req.PlayerID, fmt.Sprintf("%s %s", req.Prompt, strings.Join(parts, " ")))
	case turn.KindSwapTarget:
		buf := bytes.Buffer{}
		buf.WriteString(req.Prompt + "\n")
		for index, target := range req.Targets {
			buf.WriteString(fmt.Sprintf("%d. %s\n", index+1, target.Name))
		}
		ch.Notify(req.PlayerID, strings.TrimRight(buf.String(), "\n"))
	case turn.KindConfirm:
		ch.Notify(req.PlayerID, req.Prompt+" (y/n)")
	}
}

func (ch *tableChannel) parse(req turn.Request, sub submission) (turn.Response, bool) {
	text := strings.ToLower(strings.TrimSpace(sub.text))
	if text == "" {
		return turn.Response{}, false
	}
	// The addressee's line answers the pending choice first; everything
	// else falls through to the action grammar.
	if sub.playerID == req.PlayerID {
		if response, ok := ch.parseChoice(req, sub.playerID, text); ok {
			return response, true
		}
	}
	if action, ok := actionAliases[text]; ok {
		return turn.Response{Kind: turn.KindAction, PlayerID: sub.playerID, Action: action}, true
	}
	ch.Notify(sub.playerID, "Unknown command. Options: (p)lay, (d)raw, (h)and, (u)no, (l)eave, (e)nd")
	return turn.Response{}, false
}

func (ch *tableChannel) parseChoice(req turn.Request, playerID int64, text string) (turn.Response, bool) {
	switch req.Kind {
	case turn.KindCard:
		if len(text) != 1 {
			return turn.Response{}, false
		}
		index := int(text[0] - 'a')
		if index < 0 || index >= len(req.Cards) {
			return turn.Response{}, false
		}
		return turn.Response{Kind: turn.KindCard, PlayerID: playerID, Card: req.Cards[index].Card}, true
	case turn.KindColor:
		if chosenColor, ok := colorAliases[text]; ok {
			return turn.Response{Kind: turn.KindColor, PlayerID: playerID, Color: chosenColor}, true
		}
	case turn.KindSwapTarget:
		if index, err := strconv.Atoi(text); err == nil && index >= 1 && index <= len(req.Targets) {
			return turn.Response{Kind: turn.KindSwapTarget, PlayerID: playerID, TargetID: req.Targets[index-1].ID}, true
		}
	case turn.KindConfirm:
		switch text {
		case "y", "yes":
			return turn.Response{Kind: turn.KindConfirm, PlayerID: playerID, Confirmed: true}, true
		case "n", "no":
			return turn.Response{Kind: turn.KindConfirm, PlayerID: playerID, Confirmed: false}, true
		}
	}
	return turn.Response{}, false
}
