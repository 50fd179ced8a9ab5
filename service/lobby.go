package service

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
	"github.com/uno-arena/server/consts"
	"github.com/uno-arena/server/uno/card/color"
	"github.com/uno-arena/server/uno/stats"
)

var welcome = fmt.Sprintf(
	"WELCOME TO %s%s%s ARENA!!!\n"+
		"Commands: new [hand size], join <table id>, tables, stats, top wins, top rate\n",
	color.Red.Paint("U"),
	color.Yellow.Paint("N"),
	color.Blue.Paint("O"),
)

// Run drives one session from welcome to disconnect.
func Run(player *Player) {
	defer func() {
		if err := recover(); err != nil {
			log.Error(err)
			async.PrintStackTrace(err)
		}
	}()
	_ = player.WriteString(welcome)
	for {
		if err := home(player); err != nil {
			return
		}
	}
}

func home(player *Player) error {
	signal, err := player.AskForString()
	if err != nil {
		return err
	}
	signal = strings.ToLower(strings.TrimSpace(signal))
	fields := strings.Fields(signal)
	if len(fields) == 0 {
		return player.WriteString(welcome)
	}
	switch fields[0] {
	case "new", "n":
		handSize := consts.DefaultHandSize
		if len(fields) > 1 {
			handSize, err = strconv.Atoi(fields[1])
			if err != nil {
				return player.WriteError(consts.ErrorsHandSizeInvalid)
			}
		}
		table, err := CreateTable(player, handSize)
		if err != nil {
			return player.WriteError(err)
		}
		_ = player.WriteString(fmt.Sprintf("Table %d created. Waiting for players, enter start to begin.\n", table.ID))
		return atTable(player, table)
	case "join", "j":
		if len(fields) < 2 {
			return player.WriteError(consts.ErrorsTableInvalid)
		}
		tableID, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return player.WriteError(consts.ErrorsTableInvalid)
		}
		table, err := JoinTable(tableID, player)
		if err != nil {
			return player.WriteError(err)
		}
		Broadcast(table.ID, fmt.Sprintf("%s joined the table! table now has %d players\n", player.Name, len(table.seats)), player.ID)
		_ = player.WriteString(fmt.Sprintf("Joined table %d.\n", table.ID))
		return atTable(player, table)
	case "tables", "ls":
		return viewTables(player)
	case "stats":
		return viewStats(player)
	case "top":
		if len(fields) > 1 && fields[1] == "rate" {
			return viewLeaderboard(player, stats.SortByWinRate(statsStore.Records()))
		}
		return viewLeaderboard(player, stats.SortByWins(statsStore.Records()))
	}
	return player.WriteString(welcome)
}

// atTable alternates between waiting and playing until the player walks
// away from the table or the connection drops.
func atTable(player *Player, table *Table) error {
	for {
		access, err := table.waitingForStart(player)
		if err != nil {
			return err
		}
		if !access {
			return nil
		}
		stay, err := table.play(player)
		if err != nil {
			return err
		}
		if !stay {
			return nil
		}
	}
}

func viewTables(player *Player) error {
	buf := bytes.Buffer{}
	buf.WriteString(fmt.Sprintf("%-10s%-10s%-10s%-10s\n", "ID", "Players", "State", "Hand"))
	for _, table := range GetTables() {
		state := "waiting"
		if table.State == consts.TableStateRunning {
			state = "running"
		}
		buf.WriteString(fmt.Sprintf("%-10d%-10d%-10s%-10d\n", table.ID, len(table.seats), state, table.HandSize))
	}
	return player.WriteString(buf.String())
}

func viewStats(player *Player) error {
	record, found := statsStore.Get(player.ID)
	if !found {
		return player.WriteString("No games on record yet.\n")
	}
	buf := bytes.Buffer{}
	buf.WriteString(fmt.Sprintf("Games played: %d\n", record.Played))
	buf.WriteString(fmt.Sprintf("Wins: %d (%.0f%%)\n", record.Wins, record.WinRate()*100))
	buf.WriteString(fmt.Sprintf("Cards played: %d\n", record.CardsPlayed))
	buf.WriteString(fmt.Sprintf("Cards drawn: %d\n", record.CardsDrawn))
	buf.WriteString(fmt.Sprintf("Turns skipped: %d\n", record.TurnsSkipped))
	return player.WriteString(buf.String())
}

func viewLeaderboard(player *Player, records []stats.Record) error {
	if len(records) == 0 {
		return player.WriteString("No games on record yet.\n")
	}
	buf := bytes.Buffer{}
	buf.WriteString(fmt.Sprintf("%-5s%-20s%-10s%-10s%-10s\n", "#", "Name", "Wins", "Played", "Rate"))
	for index, record := range records {
		if index >= 10 {
			break
		}
		buf.WriteString(fmt.Sprintf("%-5d%-20s%-10d%-10d%-10.0f\n",
			index+1, record.Name, record.Wins, record.Played, record.WinRate()*100))
	}
	return player.WriteString(buf.String())
}
