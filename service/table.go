package service

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
	"github.com/uno-arena/server/consts"
	"github.com/uno-arena/server/render"
	"github.com/uno-arena/server/uno/card/color"
	"github.com/uno-arena/server/uno/event"
	"github.com/uno-arena/server/uno/game"
	"github.com/uno-arena/server/uno/turn"
)

// Table is one room of players. Between matches it sits in the waiting
// state; starting it builds a fresh match and hands it to a coordinator
// running on its own goroutine.
type Table struct {
	sync.Mutex

	ID       int64 `json:"id"`
	HostID   int64 `json:"hostId"`
	State    int   `json:"state"`
	HandSize int   `json:"handSize"`

	seats  []int64
	active map[int64]bool
	match  *game.Match
	subs   chan submission
	done   chan struct{}
}

func init() {
	event.TurnResolved.AddListener(tableListener{})
	event.MatchEnded.AddListener(tableListener{})
	event.LastCardDeclared.AddListener(tableListener{})
}

func (t *Table) addPlayer(player *Player) {
	for _, playerID := range t.seats {
		if playerID == player.ID {
			return
		}
	}
	t.seats = append(t.seats, player.ID)
	player.TableID = t.ID
}

func (t *Table) removePlayer(player *Player) {
	if player == nil {
		return
	}
	for index, playerID := range t.seats {
		if playerID == player.ID {
			t.seats = append(t.seats[:index], t.seats[index+1:]...)
			player.TableID = 0
			break
		}
	}
	if len(t.seats) == 0 {
		deleteTable(t)
		return
	}
	if t.HostID == player.ID {
		t.HostID = t.seats[0]
	}
}

func (t *Table) Seats() []int64 {
	seats := make([]int64, len(t.seats))
	copy(seats, t.seats)
	return seats
}

// waitingForStart parks a seated player until the host starts the match or
// the player walks away. Polling keeps the loop responsive to a start
// triggered by another session.
func (t *Table) waitingForStart(player *Player) (bool, error) {
	access := false
	player.StartTransaction()
	defer player.StopTransaction()
	for {
		signal, err := player.AskForString(time.Second)
		if err != nil && err != consts.ErrorsTimeout {
			return access, err
		}
		if t.State == consts.TableStateRunning {
			access = true
			break
		}
		signal = strings.ToLower(strings.TrimSpace(signal))
		if signal == "ls" || signal == "v" {
			t.viewPlayers(player)
		} else if (signal == "start" || signal == "s") && t.HostID == player.ID {
			t.Lock()
			err = t.start()
			t.Unlock()
			if err != nil {
				_ = player.WriteError(err)
				continue
			}
			access = true
			break
		} else if signal == "leave" || signal == "exit" || signal == "e" {
			wasHost := t.HostID == player.ID
			t.Lock()
			t.removePlayer(player)
			t.Unlock()
			Broadcast(t.ID, fmt.Sprintf("%s exited the table! table now has %d players\n", player.Name, len(t.seats)))
			if wasHost && len(t.seats) > 0 {
				if host := getPlayer(t.HostID); host != nil {
					Broadcast(t.ID, fmt.Sprintf("%s becomes the new host\n", host.Name))
				}
			}
			return false, nil
		} else if len(signal) > 0 {
			Broadcast(t.ID, fmt.Sprintf("%s say: %s\n", player.Name, signal), player.ID)
		}
	}
	return access, nil
}

// start is called with the table lock held.
func (t *Table) start() error {
	if t.State == consts.TableStateRunning {
		return nil
	}
	if len(t.seats) < consts.MinPlayers {
		return consts.ErrorsNotEnoughPlayers
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	match := game.NewMatch(t.ID, t.HostID, t.HandSize, rng)
	for _, playerID := range t.seats {
		seat := getPlayer(playerID)
		match.AddPlayer(game.NewPlayer(seat.ID, seat.Name))
	}
	match.Start()
	for len(t.subs) > 0 {
		<-t.subs
	}
	t.match = match
	t.active = map[int64]bool{}
	for _, playerID := range t.seats {
		t.active[playerID] = true
	}
	t.done = make(chan struct{})
	t.State = consts.TableStateRunning

	banner := fmt.Sprintf(
		"WELCOME TO %s%s%s!!!\n",
		color.Red.Paint("U"),
		color.Yellow.Paint("N"),
		color.Blue.Paint("O"),
	)
	Broadcast(t.ID, banner+render.TableStatus(match))
	for _, playerID := range t.seats {
		if seat := getPlayer(playerID); seat != nil {
			_ = seat.WriteString(fmt.Sprintf("Your cards: %s\n", render.HandString(match.Player(playerID).Hand())))
		}
	}
	async.Async(func() {
		t.run(rng)
	})
	return nil
}

func (t *Table) run(rng *rand.Rand) {
	coordinator := turn.NewCoordinator(
		t.match,
		newTableChannel(t),
		render.NewRenderer(rng),
		statsStore,
		turn.DefaultConfig(),
		rng,
	)
	result := coordinator.Run()
	log.Infof("table %d match finished, reason: %s\n", t.ID, result.Reason)
	t.Lock()
	t.State = consts.TableStateWaiting
	t.match = nil
	close(t.done)
	t.Unlock()
}

// play pumps the player's raw input into the running match. It returns
// stay=false when the player is no longer part of the match.
func (t *Table) play(player *Player) (bool, error) {
	player.StartTransaction()
	defer player.StopTransaction()
	for {
		line, err := player.AskForString(time.Second)
		if err != nil && err != consts.ErrorsTimeout {
			return false, err
		}
		if !t.activeSeat(player.ID) {
			t.Lock()
			t.removePlayer(player)
			t.Unlock()
			return false, nil
		}
		select {
		case <-t.done:
			return true, nil
		default:
		}
		if err == consts.ErrorsTimeout {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		select {
		case t.subs <- submission{playerID: player.ID, text: line}:
		default:
			// A full queue means the match is flooded; drop the line.
		}
	}
}

func (t *Table) activeSeat(playerID int64) bool {
	t.Lock()
	defer t.Unlock()
	return t.active[playerID]
}

func (t *Table) refreshActive() {
	t.Lock()
	defer t.Unlock()
	if t.match == nil {
		return
	}
	active := map[int64]bool{}
	for _, player := range t.match.Players() {
		active[player.ID] = true
	}
	t.active = active
}

func (t *Table) viewPlayers(currPlayer *Player) {
	buf := bytes.Buffer{}
	buf.WriteString(fmt.Sprintf("Table ID: %d, hand size: %d\n", t.ID, t.HandSize))
	buf.WriteString(fmt.Sprintf("%-20s%-10s\n", "Name", "Title"))
	for _, playerID := range t.seats {
		title := "player"
		if playerID == t.HostID {
			title = "host"
		}
		player := getPlayer(playerID)
		buf.WriteString(fmt.Sprintf("%-20s%-10s\n", player.Name, title))
	}
	_ = currPlayer.WriteString(buf.String())
}

// tableListener bridges match events back onto the table's wire.
type tableListener struct{}

func (tableListener) OnTurnResolved(payload event.TurnResolvedPayload) {
	table := getTable(payload.MatchID)
	if table == nil || table.match == nil {
		return
	}
	table.refreshActive()
	Broadcast(table.ID, payload.Summary+"\n"+render.TableStatus(table.match))
}

func (tableListener) OnMatchEnded(payload event.MatchEndedPayload) {
	table := getTable(payload.MatchID)
	if table == nil {
		return
	}
	Broadcast(table.ID, payload.Summary)
}

func (tableListener) OnLastCardDeclared(payload event.LastCardDeclaredPayload) {
	log.Infof("table %d: %s declared their last card\n", payload.MatchID, payload.PlayerName)
}
